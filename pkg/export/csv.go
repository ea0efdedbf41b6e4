package export

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Columns is the fixed CSV column order.
var Columns = []string{"company", "address", "city", "state", "phone", "email", "website"}

// FieldMapper is the one conversion method the exporter needs. Any record
// that can render itself as a column→value mapping can be exported without
// an adapter type at the call site.
type FieldMapper interface {
	FieldMap() map[string]string
}

// MapRecord adapts loosely-typed rows (tool arguments arrive as
// map[string]any) to FieldMapper. Non-string values are formatted with %v.
type MapRecord map[string]any

func (m MapRecord) FieldMap() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v == nil {
			out[k] = ""
			continue
		}
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}

// WriteCSV writes a header row plus one row per record to path, overwriting
// any existing file. Returns the path written.
func WriteCSV(path string, rows []FieldMapper) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(Columns))
	for _, row := range rows {
		fields := row.FieldMap()
		for i, col := range Columns {
			record[i] = fields[col]
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close csv file: %w", err)
	}
	return path, nil
}
