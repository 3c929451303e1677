package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Table is a rendered listing: a header row followed by value rows.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Rows flattens records into cell values, one per column. Columns may use
// dotted paths into included records; a missing link yields an empty cell.
func Rows[T any](columns []Column, records []*T) ([][]any, error) {
	rows := make([][]any, 0, len(records))
	for i, rec := range records {
		doc, err := toDocument(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		row := make([]any, len(columns))
		for j, col := range columns {
			row[j] = cellValue(lookup(doc, col.Field))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func toDocument(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return doc, nil
}

func lookup(doc map[string]any, path string) any {
	var cur any = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

func cellValue(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case string, bool:
		return val
	default:
		data, _ := json.Marshal(val)
		return string(data)
	}
}
