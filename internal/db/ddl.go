package db

import (
	"fmt"
	"strings"

	"github.com/vergeframework/verge"
)

// buildCreateTable renders the CREATE TABLE statement shared by all
// engines: an id primary key, then one column per declared field. The
// id column type varies per engine (mysql cannot key a TEXT column).
func buildCreateTable(d Dialect, m verge.Model, idType string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", d.QuoteIdent(verge.TableName(m)))
	fmt.Fprintf(&b, "  id %s PRIMARY KEY", idType)

	for _, f := range m.ModelFields() {
		fmt.Fprintf(&b, ",\n  %s %s", d.QuoteIdent(f.Name), d.ColumnType(f))
	}

	b.WriteString("\n)")
	return b.String()
}

// buildCreateIndex renders the CREATE INDEX statement shared by all
// engines. Unique fields get a UNIQUE index.
func buildCreateIndex(d Dialect, m verge.Model, f verge.Field) string {
	unique := ""
	if f.Unique {
		unique = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX %s ON %s (%s)",
		unique,
		d.QuoteIdent(verge.IndexName(f)),
		d.QuoteIdent(verge.TableName(m)),
		d.QuoteIdent(f.Name))
}
