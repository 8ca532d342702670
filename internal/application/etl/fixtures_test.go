package etl_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// env envuelve un valor en el sobre {"value": v}.
func env(v any) map[string]any {
	return map[string]any{"value": v}
}

func lineItem(srNo int, desc string, qty, unit float64) map[string]any {
	return map[string]any{
		"srNo":        env(srNo),
		"description": env(desc),
		"quantity":    env(qty),
		"unitPrice":   env(unit),
		"totalPrice":  env(qty * unit),
		"Sachkonto":   env("4400"),
		"vatRate":     env(19),
	}
}

// invoiceDoc arma un documento completo para Acme Corp / DE123 con las líneas dadas.
func invoiceDoc(number string, items ...map[string]any) map[string]any {
	list := make([]any, 0, len(items))
	for _, it := range items {
		list = append(list, it)
	}
	return map[string]any{
		"_id": "doc-" + number,
		"extractedData": map[string]any{
			"llmData": map[string]any{
				"vendor": env(map[string]any{
					"vendorName":    env("Acme Corp"),
					"vendorAddress": env("Main St 1"),
					"vendorTaxId":   env("DE123"),
				}),
				"customer": env(map[string]any{
					"customerName":    env("Globex"),
					"customerAddress": env("Elm St 2"),
				}),
				"invoice": env(map[string]any{
					"invoiceId":   env(number),
					"invoiceDate": env("2024-03-15"),
				}),
				"summary": env(map[string]any{
					"documentType": env("invoice"),
					"subTotal":     env(20),
					"totalTax":     env(3.8),
					"invoiceTotal": env(23.8),
				}),
				"payment": env(map[string]any{
					"dueDate":      env("2024-04-15"),
					"paymentTerms": env("30 días netos"),
					"netDays":      env(30),
				}),
				"lineItems": env(map[string]any{"items": env(list)}),
			},
		},
	}
}

// llmData devuelve el mapa llmData de un documento para modificarlo en un test.
func llmData(doc map[string]any) map[string]any {
	return doc["extractedData"].(map[string]any)["llmData"].(map[string]any)
}

// section devuelve el payload de una sección de llmData.
func section(doc map[string]any, key string) map[string]any {
	return llmData(doc)[key].(map[string]any)["value"].(map[string]any)
}

// writeJSON escribe v como JSON en dir/name.
func writeJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return writeRaw(t, dir, name, b)
}

func writeRaw(t *testing.T, dir, name string, b []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}
