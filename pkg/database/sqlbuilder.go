package database

import (
	"fmt"

	"github.com/huandu/go-sqlbuilder"
)

// Table builds Postgres statements for one table from the db tags of its row
// struct.
type Table struct {
	name string
	rows *sqlbuilder.Struct
}

// Assignment sets a column to a fixed value in an upsert.
type Assignment struct {
	Column string
	Value  any
}

func NewTable(name string, row any) *Table {
	return &Table{
		name: name,
		rows: sqlbuilder.NewStruct(row).For(sqlbuilder.PostgreSQL),
	}
}

func (t *Table) Name() string {
	return t.name
}

// Upsert inserts row. On a conflict on key the listed columns take the
// proposed values and assignments are applied on top.
func (t *Table) Upsert(row any, key string, overwrite []string, assignments ...Assignment) (string, []any) {
	ib := t.rows.InsertInto(t.name, row)

	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	set := make([]string, 0, len(overwrite)+len(assignments))
	for _, column := range overwrite {
		set = append(set, ub.Assign(column, sqlbuilder.Raw("EXCLUDED."+column)))
	}
	for _, a := range assignments {
		set = append(set, ub.Assign(a.Column, a.Value))
	}
	ub.Set(set...)

	ib.SQL(fmt.Sprintf("ON CONFLICT (%s) DO UPDATE %s", key, ib.Var(ub)))
	return ib.Build()
}

// SelectOne selects the single row whose key column equals value.
func (t *Table) SelectOne(key string, value any) (string, []any) {
	sb := t.rows.SelectFrom(t.name)
	sb.Where(sb.Equal(key, value))
	sb.Limit(1)
	return sb.Build()
}

func (t *Table) DeleteWhere(key string, value any) (string, []any) {
	db := t.rows.DeleteFrom(t.name)
	db.Where(db.Equal(key, value))
	return db.Build()
}
