// Package coerce convierte representaciones escalares heterogéneas (string, json.Number,
// números nativos, nil) en fechas, texto no vacío y valores numéricos.
//
// Ninguna función de este paquete retorna error ni entra en pánico: ante una entrada
// ausente o inválida se devuelve el valor por defecto.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DefaultText es el marcador usado cuando un campo de texto llega vacío.
const DefaultText = "-"

// dateLayouts en orden de prioridad: YYYY-MM-DD, DD-MM-YYYY, YYYY/MM/DD, YYYY-MM.
// Mes y día aceptan uno o dos dígitos.
var dateLayouts = []string{
	"2006-1-2",
	"2-1-2006",
	"2006/1/2",
	"2006-1",
}

// ParseDate intenta interpretar value como fecha con los formatos soportados.
// Devuelve nil si value no es un string o ningún formato coincide.
func ParseDate(value any) *time.Time {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// Text es ToText con el marcador por defecto "-".
func Text(value any) string {
	return ToText(value, DefaultText)
}

// ToText devuelve la representación textual recortada de value, o def si value es nil,
// no convertible o queda vacío tras el recorte.
func ToText(value any, def string) string {
	if value == nil {
		return def
	}
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case json.Number:
		s = v.String()
	case bool:
		s = "False"
		if v {
			s = "True"
		}
	default:
		var err error
		if s, err = cast.ToStringE(v); err != nil {
			return def
		}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

// Numeric es ToNumeric con valor por defecto 0.
func Numeric(value any) float64 {
	return ToNumeric(value, 0)
}

// ToNumeric convierte value a float64. Los strings se recortan y, si usan coma sin punto,
// la coma se interpreta como separador decimal ("1,5" → 1.5). Cualquier fallo o resultado
// no finito devuelve def.
func ToNumeric(value any, def float64) float64 {
	var (
		f   float64
		err error
	)
	switch v := value.(type) {
	case nil:
		return def
	case string:
		f, err = parseNumber(v)
	case json.Number:
		f, err = parseNumber(v.String())
	default:
		f, err = cast.ToFloat64E(v)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}
