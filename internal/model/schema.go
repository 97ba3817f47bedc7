// Package model implements the car price regression model: the feature
// schema, categorical encoders, the random forest itself, and the artifact
// format produced by training and loaded by the server.
package model

// SchemaVersion identifies the feature schema this binary understands.
// Artifacts trained under a different version are rejected at load time.
const SchemaVersion = 1

// Target is the name of the predicted column.
const Target = "price"

// Field kinds.
const (
	KindNumber   = "number"
	KindCategory = "category"
)

// Field describes one input column of the prediction schema.
type Field struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Required bool   `json:"required,omitempty"`
}

// Columns returns the ordered feature schema. The order is the order of the
// feature vector consumed by the forest.
func Columns() []Field {
	return []Field{
		{Name: "make", Kind: KindCategory, Required: true},
		{Name: "body", Kind: KindCategory},
		{Name: "fuel", Kind: KindCategory},
		{Name: "transmission", Kind: KindCategory},
		{Name: "year", Kind: KindNumber, Required: true},
		{Name: "mileage", Kind: KindNumber, Required: true},
	}
}

// ColumnNames returns the schema column names in vector order.
func ColumnNames() []string {
	cols := Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
