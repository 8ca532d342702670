package document_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-etl/internal/domain"
	"github.com/jhoicas/invoice-etl/internal/domain/document"
)

const sampleDoc = `{
  "_id": "abc123",
  "extractedData": {
    "llmData": {
      "vendor": {"value": {"vendorName": {"value": "Acme Corp"}, "vendorTaxId": {"value": "DE123"}}},
      "customer": {"value": null},
      "summary": "no es sobre",
      "lineItems": {"value": {"items": {"value": [
        {"srNo": {"value": 1}, "quantity": {"value": 2}},
        {"srNo": {"value": 2}, "quantity": {"value": 3}}
      ]}}}
    }
  }
}`

func decodeOne(t *testing.T, raw string) document.Record {
	t.Helper()
	records, err := document.DecodeBytes([]byte(raw))
	require.NoError(t, err)
	require.Len(t, records, 1)
	return records[0]
}

// ──────────────────────────────────────────────────────────────────────────────
// Decode
// ──────────────────────────────────────────────────────────────────────────────

func TestDecode_ObjetoUnico(t *testing.T) {
	rec := decodeOne(t, sampleDoc)
	assert.Equal(t, "abc123", rec.ID())
}

func TestDecode_Arreglo(t *testing.T) {
	records, err := document.DecodeBytes([]byte(`[{"_id":"a"}, 5, {"_id":"b"}]`))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "a", records[0].ID())
	assert.Equal(t, "b", records[2].ID())

	_, err = records[1].LLMData()
	assert.ErrorIs(t, err, domain.ErrMalformedDocument, "un elemento que no es objeto falla solo ese registro")
}

func TestDecode_Errores(t *testing.T) {
	cases := map[string]string{
		"json inválido":     `{"a":`,
		"escalar":           `42`,
		"datos adicionales": `{} {}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := document.Decode(strings.NewReader(raw))
			assert.Error(t, err)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Navegación
// ──────────────────────────────────────────────────────────────────────────────

func TestSection(t *testing.T) {
	llm, err := decodeOne(t, sampleDoc).LLMData()
	require.NoError(t, err)

	vendor, err := llm.Section(document.SectionVendor)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", vendor.Get("vendorName").Payload())

	customer, err := llm.Section(document.SectionCustomer)
	require.NoError(t, err)
	assert.True(t, customer.IsEmpty(), "payload nulo → sección vacía")

	summary, err := llm.Section(document.SectionSummary)
	require.NoError(t, err)
	assert.True(t, summary.IsEmpty(), "nodo que no es sobre → sección vacía")

	payment, err := llm.Section(document.SectionPayment)
	require.NoError(t, err)
	assert.True(t, payment.IsEmpty(), "sección ausente → vacía")
}

func TestSection_PayloadNoObjeto(t *testing.T) {
	llm := document.Object{"vendor": map[string]any{"value": "texto"}}
	_, err := llm.Section(document.SectionVendor)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestOptionalSection(t *testing.T) {
	llm := document.Object{
		"payment": map[string]any{"value": []any{}},
		"summary": map[string]any{"value": "n/a"},
		"vendor":  map[string]any{"value": map[string]any{"vendorName": "Acme"}},
	}
	assert.True(t, llm.OptionalSection("payment").IsEmpty(), "lista → sección vacía")
	assert.True(t, llm.OptionalSection("summary").IsEmpty(), "texto → sección vacía")
	assert.True(t, llm.OptionalSection("missing").IsEmpty())
	assert.Equal(t, "Acme", llm.OptionalSection("vendor").Get("vendorName").Payload())
}

func TestItems(t *testing.T) {
	llm, err := decodeOne(t, sampleDoc).LLMData()
	require.NoError(t, err)

	items, err := llm.Items(document.SectionLineItems)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, json.Number("1"), items[0].Get("srNo").Payload())
}

func TestItems_NivelesAusentes(t *testing.T) {
	cases := []document.Object{
		{},
		{"lineItems": map[string]any{"value": nil}},
		{"lineItems": map[string]any{"value": map[string]any{}}},
		{"lineItems": map[string]any{"value": map[string]any{"items": map[string]any{"value": nil}}}},
	}
	for _, llm := range cases {
		items, err := llm.Items(document.SectionLineItems)
		require.NoError(t, err)
		assert.Empty(t, items)
	}
}

func TestItems_Malformados(t *testing.T) {
	noLista := document.Object{"lineItems": map[string]any{"value": map[string]any{
		"items": map[string]any{"value": "x"},
	}}}
	_, err := noLista.Items(document.SectionLineItems)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)

	elemento := document.Object{"lineItems": map[string]any{"value": map[string]any{
		"items": map[string]any{"value": []any{"x"}},
	}}}
	_, err = elemento.Items(document.SectionLineItems)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestLLMData_Ausente(t *testing.T) {
	llm, err := decodeOne(t, `{"_id":"x"}`).LLMData()
	require.NoError(t, err)
	assert.True(t, llm.IsEmpty())

	_, err = decodeOne(t, `{"extractedData": {"llmData": []}}`).LLMData()
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}
