// Package schema extracts table metadata from struct tags.
package schema

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// StructTagKey is the key used in struct tags (e.g. `db:"..."`).
const StructTagKey = "db"

// TableNamer lets a model override the derived table name.
type TableNamer interface {
	TableName() string
}

// Column describes a single mapped column.
type Column struct {
	Name    string
	GoField string
	// Auto marks database-generated columns (serial keys, default
	// timestamps); they are skipped when building INSERT values.
	Auto       bool
	PrimaryKey bool
}

// Table describes a mapped struct.
type Table struct {
	Name    string
	GoType  reflect.Type
	Columns []Column
}

// Column returns the metadata for a column name, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// Parser parses struct definitions to extract table metadata.
type Parser struct {
	cache map[reflect.Type]*Table
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{cache: make(map[reflect.Type]*Table)}
}

// Parse extracts Table metadata from a Go struct type.
func (p *Parser) Parse(modelType reflect.Type) (*Table, error) {
	for modelType.Kind() == reflect.Pointer {
		modelType = modelType.Elem()
	}
	if modelType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", modelType.Kind())
	}
	if cached, ok := p.cache[modelType]; ok {
		return cached, nil
	}

	table := &Table{
		Name:    extractTableName(modelType),
		GoType:  modelType,
		Columns: make([]Column, 0, modelType.NumField()),
	}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		if !field.IsExported() {
			continue
		}
		tagValue := field.Tag.Get(StructTagKey)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		parts := strings.Split(tagValue, ",")
		column := Column{
			Name:    parts[0],
			GoField: field.Name,
		}
		if column.Name == "" {
			column.Name = toSnakeCase(field.Name)
		}
		for _, opt := range parts[1:] {
			switch strings.TrimSpace(opt) {
			case "auto":
				column.Auto = true
			case "primaryKey":
				column.PrimaryKey = true
			case "":
			default:
				return nil, fmt.Errorf("unknown tag option %q on field %s", opt, field.Name)
			}
		}
		table.Columns = append(table.Columns, column)
	}

	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("struct %s has no %s-tagged fields", modelType.Name(), StructTagKey)
	}

	p.cache[modelType] = table
	return table, nil
}

// extractTableName derives the table name from the model, preferring a
// TableName method over snake_case conversion of the struct name.
func extractTableName(modelType reflect.Type) string {
	if modelType.Implements(tableNamerType) {
		return reflect.New(modelType).Elem().Interface().(TableNamer).TableName()
	}
	if reflect.PointerTo(modelType).Implements(tableNamerType) {
		return reflect.New(modelType).Interface().(TableNamer).TableName()
	}
	return toSnakeCase(modelType.Name())
}

var tableNamerType = reflect.TypeOf((*TableNamer)(nil)).Elem()

// toSnakeCase converts CamelCase to snake_case.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
