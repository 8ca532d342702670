// Package document modela los documentos JSON producidos por la extracción (LLM) de facturas.
//
// Casi todos los campos llegan envueltos en un sobre {"value": <payload>}; a veces el sobre
// falta, a veces el payload es otro sobre. Value distingue presente de ausente.
package document

import "encoding/json"

// Value es el resultado de extraer un campo: o bien Present(payload) o bien Missing().
// Un payload presente puede ser nil cuando el sobre trae {"value": null}.
type Value struct {
	payload any
	present bool
}

// Present envuelve un payload encontrado en el documento.
func Present(payload any) Value {
	return Value{payload: payload, present: true}
}

// Missing representa un campo ausente.
func Missing() Value {
	return Value{}
}

// IsMissing indica si el campo no estaba en el documento.
func (v Value) IsMissing() bool {
	return !v.present
}

// Payload devuelve el contenido del campo (nil si falta).
func (v Value) Payload() any {
	return v.payload
}

// Or devuelve el payload o def si el campo falta.
func (v Value) Or(def any) any {
	if !v.present {
		return def
	}
	return v.payload
}

// Object interpreta el payload como objeto JSON.
func (v Value) Object() (Object, bool) {
	if !v.present {
		return nil, false
	}
	return asObject(v.payload)
}

// Object es un objeto JSON decodificado.
type Object map[string]any

// Get implementa la extracción de un campo envuelto:
//   - contenedor vacío → Missing
//   - la entrada es un sobre (objeto) → su miembro "value", o Missing si no lo tiene
//   - cualquier otra entrada → la entrada tal cual, o Missing si es "falsy"
//     (nil, "", false, 0, lista vacía)
func (o Object) Get(key string) Value {
	if len(o) == 0 {
		return Missing()
	}
	entry, ok := o[key]
	if !ok {
		return Missing()
	}
	if env, isObj := asObject(entry); isObj {
		payload, has := env["value"]
		if !has {
			return Missing()
		}
		return Present(payload)
	}
	if falsy(entry) {
		return Missing()
	}
	return Present(entry)
}

// IsEmpty indica si el objeto no tiene miembros.
func (o Object) IsEmpty() bool {
	return len(o) == 0
}

func asObject(v any) (Object, bool) {
	switch t := v.(type) {
	case map[string]any:
		return Object(t), true
	case Object:
		return t, true
	}
	return nil, false
}

func falsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case float64:
		return t == 0
	case int:
		return t == 0
	case []any:
		return len(t) == 0
	}
	return false
}
