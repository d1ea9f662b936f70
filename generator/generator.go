// Package generator renders planned migrations as SQL DDL.
package generator

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/plan"
	"github.com/ridoystarlord/modelgen/schema"
)

type sqlWriter struct {
	d database.SQLDialect
}

func (w sqlWriter) q(name string) string {
	return database.QuoteIdentifier(w.d, name)
}

// GenerateSQL converts migrations into SQL statements, in order.
func GenerateSQL(migrations []plan.Migration, d database.SQLDialect) ([]string, error) {
	w := sqlWriter{d: d}
	var sqlStatements []string

	// SQLite cannot add constraints to an existing table but accepts
	// references to tables that do not exist yet, so deferred foreign keys
	// are folded back into CREATE TABLE.
	deferred := map[string][]plan.ForeignKey{}
	if d == database.SQLite {
		for _, m := range migrations {
			if m.Kind == plan.AddForeignKeys {
				deferred[m.Table.Name] = append(deferred[m.Table.Name], m.ForeignKeys...)
			}
		}
	}

	for _, m := range migrations {
		switch m.Kind {
		case plan.CreateTable:
			stmts := w.createTable(m.Table, deferred[m.Table.Name])
			sqlStatements = append(sqlStatements, stmts...)

		case plan.AddForeignKeys:
			if d == database.SQLite {
				continue
			}
			for _, fk := range m.ForeignKeys {
				stmt := fmt.Sprintf(`ALTER TABLE %s ADD %s;`, w.q(fk.Table), w.constraint(fk))
				sqlStatements = append(sqlStatements, stmt)
			}

		default:
			return nil, fmt.Errorf("unsupported migration: %s", m.Kind)
		}
	}

	return sqlStatements, nil
}

// GenerateRollbackSQL converts migrations into the statements undoing them.
func GenerateRollbackSQL(migrations []plan.Migration, d database.SQLDialect) ([]string, error) {
	w := sqlWriter{d: d}
	var sqlStatements []string

	// Process operations in reverse order for rollback
	for i := len(migrations) - 1; i >= 0; i-- {
		m := migrations[i]
		switch m.Kind {
		case plan.CreateTable:
			sqlStatements = append(sqlStatements, fmt.Sprintf(`DROP TABLE IF EXISTS %s;`, w.q(m.Table.Name)))

		case plan.AddForeignKeys:
			if d == database.SQLite {
				continue
			}
			for j := len(m.ForeignKeys) - 1; j >= 0; j-- {
				fk := m.ForeignKeys[j]
				drop := "CONSTRAINT"
				if d == database.MySQL || d == database.MariaDB {
					drop = "FOREIGN KEY"
				}
				sqlStatements = append(sqlStatements,
					fmt.Sprintf(`ALTER TABLE %s DROP %s %s;`, w.q(fk.Table), drop, w.q(fk.Name)))
			}

		default:
			return nil, fmt.Errorf("unsupported rollback migration: %s", m.Kind)
		}
	}

	return sqlStatements, nil
}

func (w sqlWriter) createTable(t plan.Table, extra []plan.ForeignKey) []string {
	var pks []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pks = append(pks, c.Name)
		}
	}

	var defs []string
	for _, c := range t.Columns {
		defs = append(defs, w.columnDef(c, len(pks) == 1))
	}
	if len(pks) > 1 {
		quoted := make([]string, len(pks))
		for i, pk := range pks {
			quoted[i] = w.q(pk)
		}
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(quoted, ", ")))
	}
	for _, fk := range t.ForeignKeys() {
		defs = append(defs, w.constraint(fk))
	}
	for _, fk := range extra {
		defs = append(defs, w.constraint(fk))
	}

	stmt := fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", w.q(t.Name), strings.Join(defs, ",\n  "))
	stmts := []string{stmt}

	if w.d == database.Postgres {
		if t.Comment != "" {
			stmts = append(stmts, fmt.Sprintf(`COMMENT ON TABLE %s IS %s;`, w.q(t.Name), database.QuoteString(t.Comment)))
		}
		for _, c := range t.Columns {
			if c.Comment != "" {
				stmts = append(stmts, fmt.Sprintf(`COMMENT ON COLUMN %s.%s IS %s;`,
					w.q(t.Name), w.q(c.Name), database.QuoteString(c.Comment)))
			}
		}
	}
	for _, idx := range t.Indexes {
		stmts = append(stmts, w.createIndex(t.Name, idx))
	}
	return stmts
}

func (w sqlWriter) columnDef(c plan.Column, inlinePK bool) string {
	typ := ColumnType(c.Type, w.d)
	if w.d == database.SQLite && c.Type.AutoIncrement && c.PrimaryKey && inlinePK {
		return fmt.Sprintf("%s INTEGER PRIMARY KEY AUTOINCREMENT", w.q(c.Name))
	}

	stmt := fmt.Sprintf("%s %s", w.q(c.Name), typ)
	if c.PrimaryKey && inlinePK {
		stmt += " PRIMARY KEY"
	}
	if !c.AllowNull && !(c.PrimaryKey && inlinePK) {
		stmt += " NOT NULL"
	}
	if c.Unique && !c.PrimaryKey {
		stmt += " UNIQUE"
	}
	if def := defaultValue(c.Type, w.d); def != "" {
		stmt += " DEFAULT " + def
	}
	if c.Type.Type == schema.TypeEnum && w.d != database.MySQL && w.d != database.MariaDB {
		stmt += fmt.Sprintf(" CHECK (%s IN (%s))", w.q(c.Name), quoteValues(c.Type.Values))
	}
	if c.Comment != "" && (w.d == database.MySQL || w.d == database.MariaDB) {
		stmt += " COMMENT " + database.QuoteString(c.Comment)
	}
	return stmt
}

func (w sqlWriter) constraint(fk plan.ForeignKey) string {
	stmt := fmt.Sprintf(`CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)`,
		w.q(fk.Name),
		w.q(fk.Column),
		w.q(fk.References.Table),
		w.q(fk.References.Column),
	)
	if fk.References.OnDelete != "" {
		stmt += fmt.Sprintf(" ON DELETE %s", fk.References.OnDelete)
	}
	if fk.References.OnUpdate != "" {
		stmt += fmt.Sprintf(" ON UPDATE %s", fk.References.OnUpdate)
	}
	return stmt
}

func (w sqlWriter) createIndex(table string, idx plan.Index) string {
	stmt := "CREATE"
	if idx.Unique {
		stmt += " UNIQUE"
	}
	stmt += " INDEX " + w.q(idx.Name)

	hash := idx.Using == schema.Hash
	if hash && (w.d == database.MySQL || w.d == database.MariaDB) {
		stmt += " USING HASH"
	}
	stmt += " ON " + w.q(table)
	if hash && w.d == database.Postgres {
		stmt += " USING HASH"
	}

	cols := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		col := w.q(c.Name)
		if c.Length != nil && (w.d == database.MySQL || w.d == database.MariaDB) {
			col += fmt.Sprintf("(%d)", *c.Length)
		}
		if c.Collate != "" {
			col += " COLLATE " + c.Collate
		}
		if c.Operator != "" && w.d == database.Postgres {
			col += " " + c.Operator
		}
		if c.Order != "" {
			col += " " + string(c.Order)
		}
		cols[i] = col
	}
	return stmt + " (" + strings.Join(cols, ", ") + ");"
}

// Script renders a plan as one SQL file with up and down sections.
func Script(p plan.Plan, d database.SQLDialect) (string, error) {
	up, err := GenerateSQL(p.Migrations, d)
	if err != nil {
		return "", fmt.Errorf("generate SQL: %w", err)
	}
	down, err := GenerateRollbackSQL(p.Migrations, d)
	if err != nil {
		return "", fmt.Errorf("generate rollback SQL: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- Schema: %s\n", p.SchemaName)
	fmt.Fprintf(&b, "-- Dialect: %s\n\n", d.DisplayName())

	b.WriteString("-- Up Migration\n")
	b.WriteString("-- ============\n")
	for _, stmt := range up {
		b.WriteString(stmt + "\n")
	}

	b.WriteString("\n-- Down Migration (Rollback)\n")
	b.WriteString("-- =======================\n")
	for _, stmt := range down {
		b.WriteString(stmt + "\n")
	}
	return b.String(), nil
}
