package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrNoSourceFiles      = errors.New("no se encontraron archivos de entrada")
	ErrMalformedDocument  = errors.New("documento mal formado")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
)
