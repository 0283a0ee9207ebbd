package render

import (
	"encoding/json"
	"io"

	"github.com/worktrunk/wt/internal/listagg"
)

const schemaVersion = 1

type jsonDocument struct {
	SchemaVersion int             `json:"schema_version"`
	Rows          []DisplayFields `json:"rows"`
}

// JSON writes the schema-versioned, pretty-printed JSON representation of
// rows to w.
func JSON(w io.Writer, rows []*listagg.Row) error {
	doc := jsonDocument{SchemaVersion: schemaVersion, Rows: make([]DisplayFields, 0, len(rows))}
	for _, row := range rows {
		doc.Rows = append(doc.Rows, Fields(row))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
