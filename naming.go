package verge

import (
	"strings"
	"unicode"
)

// TableName derives the table name for a model: the snake_case form of
// the model name. Post -> post, OrderLine -> order_line. The mapping is
// deterministic; two models whose names collapse to the same table name
// cannot be synchronized in one run.
func TableName(m Model) string {
	return toSnakeCase(m.ModelName())
}

// IndexName derives the secondary index name for a field: the field name
// with an _index suffix. title -> title_index.
func IndexName(f Field) string {
	return f.Name + "_index"
}

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
