package document_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoice-etl/internal/domain/document"
)

func TestGet_Sobre(t *testing.T) {
	o := document.Object{
		"name":   map[string]any{"value": "Acme"},
		"nulo":   map[string]any{"value": nil},
		"sinVal": map[string]any{"confidence": json.Number("0.9")},
		"doble":  map[string]any{"value": map[string]any{"value": "x"}},
	}

	v := o.Get("name")
	assert.False(t, v.IsMissing())
	assert.Equal(t, "Acme", v.Payload())

	v = o.Get("nulo")
	assert.False(t, v.IsMissing(), "un sobre con value null está presente")
	assert.Nil(t, v.Payload())

	assert.True(t, o.Get("sinVal").IsMissing(), "un sobre sin value es ausente")
	assert.True(t, o.Get("noExiste").IsMissing())

	inner, ok := o.Get("doble").Object()
	assert.True(t, ok, "el payload puede ser otro sobre")
	assert.Equal(t, "x", inner.Get("value").Payload())
}

func TestGet_EntradaCruda(t *testing.T) {
	o := document.Object{
		"texto":  "hola",
		"numero": json.Number("12.5"),
		"cero":   json.Number("0"),
		"vacio":  "",
		"falso":  false,
		"lista":  []any{},
		"nulo":   nil,
	}

	assert.Equal(t, "hola", o.Get("texto").Payload())
	assert.Equal(t, json.Number("12.5"), o.Get("numero").Payload())

	for _, key := range []string{"cero", "vacio", "falso", "lista", "nulo"} {
		assert.True(t, o.Get(key).IsMissing(), "valor crudo falsy %q debe ser ausente", key)
	}
}

func TestGet_ContenedorVacio(t *testing.T) {
	assert.True(t, document.Object{}.Get("x").IsMissing())
	assert.True(t, document.Object(nil).Get("x").IsMissing())
}

func TestValueOr(t *testing.T) {
	assert.Equal(t, "€", document.Missing().Or("€"))
	assert.Nil(t, document.Present(nil).Or("€"), "un payload nulo presente no usa el valor por defecto")
	assert.Equal(t, "$", document.Present("$").Or("€"))
}
