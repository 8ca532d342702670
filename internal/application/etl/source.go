package etl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/invoice-etl/internal/domain/document"
)

// DefaultExtension extensión de los archivos de entrada.
const DefaultExtension = ".json"

// ListSourceFiles lista, ordenados por nombre, los archivos regulares de dir cuya extensión
// coincide con ext (sin distinguir mayúsculas). No recorre subdirectorios.
func ListSourceFiles(dir, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// ReadRecords decodifica un archivo de entrada. Acepta UTF-8 con o sin BOM (y UTF-16 con BOM).
func ReadRecords(path string) ([]document.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	records, err := document.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return records, nil
}
