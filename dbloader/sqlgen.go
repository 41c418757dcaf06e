package dbloader

import (
	"fmt"
	"strings"
)

// UpsertSQL builds an insert statement with bind variables for one row that
// updates every non-key column when the key columns conflict. Re-loading the
// same key therefore always reflects the most recently computed values.
func UpsertSQL(table string, columns []string, keyColumns []string) string {
	binds := make([]string, len(columns))
	for idx := range columns {
		binds[idx] = fmt.Sprintf("$%d", idx+1)
	}

	keys := make(map[string]bool, len(keyColumns))
	for _, key := range keyColumns {
		keys[key] = true
	}

	var updates []string
	for _, col := range columns {
		if keys[col] {
			continue
		}
		updates = append(updates, col+" = EXCLUDED."+col)
	}

	return "INSERT INTO " + table +
		" (" + strings.Join(columns, ", ") + ")" +
		" VALUES (" + strings.Join(binds, ", ") + ")" +
		" ON CONFLICT (" + strings.Join(keyColumns, ", ") + ")" +
		" DO UPDATE SET " + strings.Join(updates, ", ")
}
