package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jhoicas/invoice-etl/internal/domain"
)

// Secciones de extractedData.llmData.
const (
	SectionVendor    = "vendor"
	SectionCustomer  = "customer"
	SectionSummary   = "summary"
	SectionInvoice   = "invoice"
	SectionPayment   = "payment"
	SectionLineItems = "lineItems"
)

// Record es un documento de entrada. Si el elemento del lote no era un objeto JSON,
// el Record conserva el error y cualquier navegación lo devuelve.
type Record struct {
	root Object
	err  error
}

// NewRecord construye un Record a partir de un objeto ya decodificado.
func NewRecord(root map[string]any) Record {
	return Record{root: Object(root)}
}

// ID devuelve el identificador del documento de origen (_id) si existe.
func (r Record) ID() string {
	if r.root == nil {
		return ""
	}
	if s, ok := r.root["_id"].(string); ok {
		return s
	}
	return ""
}

// LLMData navega extractedData.llmData. La ausencia de cualquiera de los dos niveles
// produce un objeto vacío; un nivel presente que no sea objeto es un documento mal formado.
func (r Record) LLMData() (Object, error) {
	if r.err != nil {
		return nil, r.err
	}
	extracted, err := child(r.root, "extractedData")
	if err != nil {
		return nil, err
	}
	return child(extracted, "llmData")
}

// Section desenvuelve {key: {"value": {...}}}. Nodo ausente, nodo que no es sobre, o
// payload nulo → objeto vacío. Un payload presente que no es objeto es un error.
func (o Object) Section(key string) (Object, error) {
	node, ok := asObject(o[key])
	if !ok {
		return Object{}, nil
	}
	payload, has := node["value"]
	if !has || payload == nil {
		return Object{}, nil
	}
	sec, ok := asObject(payload)
	if !ok {
		return nil, fmt.Errorf("%w: %s.value no es un objeto", domain.ErrMalformedDocument, key)
	}
	return sec, nil
}

// OptionalSection es Section para secciones opcionales: un payload que no es objeto
// (lista, texto, número) se trata como sección vacía en lugar de error.
func (o Object) OptionalSection(key string) Object {
	sec, err := o.Section(key)
	if err != nil {
		return Object{}
	}
	return sec
}

// Items navega la lista doblemente envuelta {key: {"value": {"items": {"value": [...]}}}}.
// Niveles ausentes → ninguna línea. Cada elemento de la lista debe ser un objeto.
func (o Object) Items(key string) ([]Object, error) {
	outer, err := o.Section(key)
	if err != nil {
		return nil, err
	}
	node, ok := asObject(outer["items"])
	if !ok {
		return nil, nil
	}
	payload, has := node["value"]
	if !has || payload == nil {
		return nil, nil
	}
	list, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s.value.items.value no es una lista", domain.ErrMalformedDocument, key)
	}
	items := make([]Object, 0, len(list))
	for i, el := range list {
		item, ok := asObject(el)
		if !ok {
			return nil, fmt.Errorf("%w: %s item %d no es un objeto", domain.ErrMalformedDocument, key, i)
		}
		items = append(items, item)
	}
	return items, nil
}

func child(o Object, key string) (Object, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return Object{}, nil
	}
	obj, ok := asObject(v)
	if !ok {
		return nil, fmt.Errorf("%w: %s no es un objeto", domain.ErrMalformedDocument, key)
	}
	return obj, nil
}

// Decode lee un archivo con un objeto JSON o un arreglo de objetos. Los números se
// conservan como json.Number para no perder su representación textual.
func Decode(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json: datos adicionales tras el documento")
	}
	switch v := raw.(type) {
	case map[string]any:
		return []Record{NewRecord(v)}, nil
	case []any:
		records := make([]Record, 0, len(v))
		for i, el := range v {
			obj, ok := el.(map[string]any)
			if !ok {
				records = append(records, Record{err: fmt.Errorf("%w: elemento %d no es un objeto", domain.ErrMalformedDocument, i)})
				continue
			}
			records = append(records, NewRecord(obj))
		}
		return records, nil
	}
	return nil, fmt.Errorf("%w: se esperaba un objeto o un arreglo", domain.ErrMalformedDocument)
}

// DecodeBytes es Decode sobre un buffer en memoria.
func DecodeBytes(b []byte) ([]Record, error) {
	return Decode(bytes.NewReader(b))
}
