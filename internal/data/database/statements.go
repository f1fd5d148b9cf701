// Package database builds the SQL statements used by the data repositories.
// All identifiers pass through pgx.Identifier sanitization.
package database

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNoTable   = errors.New("table is required")
	ErrNoColumns = errors.New("at least one column is required")
)

// UpsertSpec describes an INSERT ... ON CONFLICT DO UPDATE statement.
type UpsertSpec struct {
	Table   string
	Columns []string
	// Conflict is the conflict target; defaults to "id".
	Conflict []string
	// Update lists the columns overwritten on conflict. When empty every
	// column outside Conflict is overwritten.
	Update []string
	// Returning is appended verbatim after RETURNING when set.
	Returning string
}

func sanitizeIdentifier(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

func sanitizeAll(idents []string) []string {
	out := make([]string, len(idents))
	for i, id := range idents {
		out[i] = sanitizeIdentifier(id)
	}
	return out
}

// BuildUpsert renders spec as a single-row parameterized upsert.
//
// Example:
//
//	BuildUpsert(UpsertSpec{Table: "queue_items", Columns: []string{"id", "status"}, Update: []string{"status"}})
//	// INSERT INTO "queue_items" ("id", "status") VALUES ($1, $2)
//	// ON CONFLICT ("id") DO UPDATE SET "status" = EXCLUDED."status"
func BuildUpsert(spec UpsertSpec) (string, error) {
	if spec.Table == "" {
		return "", ErrNoTable
	}
	if len(spec.Columns) == 0 {
		return "", ErrNoColumns
	}

	conflict := spec.Conflict
	if len(conflict) == 0 {
		conflict = []string{"id"}
	}
	for _, c := range conflict {
		if !slices.Contains(spec.Columns, c) {
			return "", fmt.Errorf("conflict column %q is not inserted", c)
		}
	}

	update := spec.Update
	if len(update) == 0 {
		for _, c := range spec.Columns {
			if !slices.Contains(conflict, c) {
				update = append(update, c)
			}
		}
	}

	placeholders := make([]string, len(spec.Columns))
	for i := range spec.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	var q strings.Builder
	q.WriteString("INSERT INTO ")
	q.WriteString(sanitizeIdentifier(spec.Table))
	q.WriteString(" (")
	q.WriteString(strings.Join(sanitizeAll(spec.Columns), ", "))
	q.WriteString(") VALUES (")
	q.WriteString(strings.Join(placeholders, ", "))
	q.WriteString(") ON CONFLICT (")
	q.WriteString(strings.Join(sanitizeAll(conflict), ", "))
	q.WriteString(")")

	if len(update) == 0 {
		q.WriteString(" DO NOTHING")
	} else {
		sets := make([]string, len(update))
		for i, c := range update {
			if !slices.Contains(spec.Columns, c) {
				return "", fmt.Errorf("update column %q is not inserted", c)
			}
			col := sanitizeIdentifier(c)
			sets[i] = col + " = EXCLUDED." + col
		}
		q.WriteString(" DO UPDATE SET ")
		q.WriteString(strings.Join(sets, ", "))
	}

	if spec.Returning != "" {
		q.WriteString(" RETURNING ")
		q.WriteString(spec.Returning)
	}
	return q.String(), nil
}

// BuildCount returns a row-count query for table.
func BuildCount(table string) string {
	return "SELECT COUNT(*) FROM " + sanitizeIdentifier(table)
}

// BuildLatest selects columns from the row with the greatest orderBy value.
func BuildLatest(table, orderBy string, columns ...string) string {
	cols := "*"
	if len(columns) > 0 {
		cols = strings.Join(sanitizeAll(columns), ", ")
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s DESC LIMIT 1",
		cols, sanitizeIdentifier(table), sanitizeIdentifier(orderBy))
}
