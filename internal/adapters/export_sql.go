package adapters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"lmtk/internal/core"
	"lmtk/internal/types"
)

type SQLDialect string

const (
	SQLDialectSQLite     SQLDialect = "sqlite"
	SQLDialectPostgreSQL SQLDialect = "postgresql"
	SQLDialectMySQL      SQLDialect = "mysql"
	SQLDialectDuckDB     SQLDialect = "duckdb"
)

var SQLDialects = []SQLDialect{SQLDialectSQLite, SQLDialectPostgreSQL, SQLDialectMySQL, SQLDialectDuckDB}

// ParseSQLDialect accepts a dialect name case-insensitively.  An empty name
// selects PostgreSQL.
func ParseSQLDialect(value string) (SQLDialect, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return SQLDialectPostgreSQL, nil
	}
	for _, dialect := range SQLDialects {
		if string(dialect) == value {
			return dialect, nil
		}
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("unsupported SQL dialect: " + value + " (expected sqlite, postgresql, mysql or duckdb)")
}

type sqlTypeMap struct {
	sqlite, postgresql, mysql, duckdb string
}

func (m sqlTypeMap) forDialect(dialect SQLDialect) string {
	switch dialect {
	case SQLDialectSQLite:
		return m.sqlite
	case SQLDialectMySQL:
		return m.mysql
	case SQLDialectDuckDB:
		return m.duckdb
	default:
		return m.postgresql
	}
}

var sqlTypeMappings = map[string]sqlTypeMap{
	"string":   {sqlite: "TEXT", postgresql: "TEXT", mysql: "TEXT", duckdb: "VARCHAR"},
	"integer":  {sqlite: "INTEGER", postgresql: "INTEGER", mysql: "INT", duckdb: "INTEGER"},
	"boolean":  {sqlite: "INTEGER", postgresql: "BOOLEAN", mysql: "BOOLEAN", duckdb: "BOOLEAN"},
	"float":    {sqlite: "REAL", postgresql: "DOUBLE PRECISION", mysql: "DOUBLE", duckdb: "DOUBLE"},
	"decimal":  {sqlite: "REAL", postgresql: "DECIMAL", mysql: "DECIMAL", duckdb: "DECIMAL"},
	"datetime": {sqlite: "TEXT", postgresql: "TIMESTAMP", mysql: "DATETIME", duckdb: "TIMESTAMP"},
	"date":     {sqlite: "TEXT", postgresql: "DATE", mysql: "DATE", duckdb: "DATE"},
	"time":     {sqlite: "TEXT", postgresql: "TIME", mysql: "TIME", duckdb: "TIME"},
	"uri":      {sqlite: "TEXT", postgresql: "TEXT", mysql: "TEXT", duckdb: "VARCHAR"},
}

// SQLType maps a built-in type name to its column type.  Unmapped names
// use the string mapping.
func SQLType(builtin string, dialect SQLDialect) string {
	mapping, ok := sqlTypeMappings[builtin]
	if !ok {
		mapping = sqlTypeMappings["string"]
	}
	return mapping.forDialect(dialect)
}

// SQLExporter renders one table per class.  Foreign keys point at the
// identifier column of the referenced class; SQLite declares them inline,
// the other dialects add them with ALTER TABLE once every table exists.
type SQLExporter struct {
	dialect SQLDialect
}

func NewSQLExporter(dialect SQLDialect) SQLExporter {
	return SQLExporter{dialect: dialect}
}

func (e SQLExporter) Format() string { return FormatSQL }

func (e SQLExporter) Dialect() SQLDialect { return e.dialect }

func (e SQLExporter) Export(doc types.Document) ([]byte, error) {
	resolver := core.NewReferenceResolver(doc)
	var b strings.Builder
	fmt.Fprintf(&b, "-- Generated SQL schema for %s\n", schemaTitle(doc))
	fmt.Fprintf(&b, "-- SQL Dialect: %s\n\n", e.dialect)

	if e.dialect == SQLDialectPostgreSQL {
		wrote := false
		doc.Enums().Range(func(name string, element *types.Element) bool {
			values := element.Enum.PermissibleValues.Keys()
			if len(values) == 0 {
				return true
			}
			quoted := make([]string, len(values))
			for i, value := range values {
				quoted[i] = sqlString(value)
			}
			fmt.Fprintf(&b, "CREATE TYPE %s_enum AS ENUM (%s);\n", name, strings.Join(quoted, ", "))
			wrote = true
			return true
		})
		if wrote {
			b.WriteString("\n")
		}
	}

	var foreignKeys []string
	var err error
	doc.Classes().Range(func(name string, _ *types.Element) bool {
		var slots []core.InducedSlot
		if slots, err = resolver.InducedSlots(name); err != nil {
			return false
		}
		if len(slots) == 0 {
			log.Debug().Str("class", name).Msg("class has no slots, skipping table")
			return true
		}
		var columns []string
		var inline []string
		primaryKey := ""
		for _, slot := range slots {
			columns = append(columns, "    "+e.column(resolver, doc, slot))
			if slot.Identifier && primaryKey == "" {
				primaryKey = slot.Name
			}
			if resolver.ResolveRange(slot.Range) != types.RangeClass {
				continue
			}
			target, ok := resolver.IdentifierSlot(slot.Range)
			if !ok {
				log.Debug().Str("class", name).Str("slot", slot.Name).Msg("referenced class has no identifier, skipping foreign key")
				continue
			}
			if e.dialect == SQLDialectSQLite {
				inline = append(inline, fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s (%s)", slot.Name, slot.Range, target.Name))
				continue
			}
			foreignKeys = append(foreignKeys, fmt.Sprintf(
				"ALTER TABLE %s ADD CONSTRAINT fk_%s_%s FOREIGN KEY (%s) REFERENCES %s (%s);",
				name, name, slot.Name, slot.Name, slot.Range, target.Name))
		}
		if primaryKey != "" {
			columns = append(columns, fmt.Sprintf("    PRIMARY KEY (%s)", primaryKey))
		}
		columns = append(columns, inline...)
		fmt.Fprintf(&b, "CREATE TABLE %s (\n%s\n);\n\n", name, strings.Join(columns, ",\n"))
		return true
	})
	if err != nil {
		return nil, err
	}

	if len(foreignKeys) > 0 {
		b.WriteString("-- Foreign Key Constraints\n")
		for _, statement := range foreignKeys {
			b.WriteString(statement + "\n")
		}
	}
	return []byte(b.String()), nil
}

func (e SQLExporter) column(resolver core.ReferenceResolver, doc types.Document, slot core.InducedSlot) string {
	parts := []string{slot.Name, e.columnType(resolver, doc, slot.Range)}
	if slot.Required {
		parts = append(parts, "NOT NULL")
	}
	if slot.Pattern != "" {
		switch e.dialect {
		case SQLDialectPostgreSQL:
			parts = append(parts, fmt.Sprintf("CHECK (%s ~ %s)", slot.Name, sqlString(slot.Pattern)))
		case SQLDialectMySQL:
			parts = append(parts, fmt.Sprintf("CHECK (%s REGEXP %s)", slot.Name, sqlString(slot.Pattern)))
		}
	}
	if slot.MinimumValue != nil {
		parts = append(parts, fmt.Sprintf("CHECK (%s >= %s)", slot.Name, sqlNumber(*slot.MinimumValue)))
	}
	if slot.MaximumValue != nil {
		parts = append(parts, fmt.Sprintf("CHECK (%s <= %s)", slot.Name, sqlNumber(*slot.MaximumValue)))
	}
	return strings.Join(parts, " ")
}

func (e SQLExporter) columnType(resolver core.ReferenceResolver, doc types.Document, rangeName string) string {
	switch resolver.ResolveRange(rangeName) {
	case types.RangeEnum:
		if e.dialect == SQLDialectPostgreSQL {
			if element, ok := doc.Enums().Get(rangeName); ok && element.Enum.PermissibleValues.Len() > 0 {
				return rangeName + "_enum"
			}
		}
		return SQLType("string", e.dialect)
	case types.RangeClass:
		if target, ok := resolver.IdentifierSlot(rangeName); ok && resolver.ResolveRange(target.Range) != types.RangeClass {
			return e.columnType(resolver, doc, target.Range)
		}
		return SQLType("string", e.dialect)
	default:
		return SQLType(resolver.BuiltinBase(rangeName), e.dialect)
	}
}

func sqlString(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func sqlNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
