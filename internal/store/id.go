package store

import (
	"database/sql"
	"fmt"
)

// nextID allocates the next per-family sequence number for a content table.
// Must run inside the transaction doing the insert so concurrent writers
// cannot claim the same id. Ids start at 1 and are never reused.
func nextID(tx *sql.Tx, table, familyCode string) (int64, error) {
	var id int64
	err := tx.QueryRow(
		`SELECT COALESCE(MAX(id), 0) + 1 FROM `+table+` WHERE family_code = ?`,
		familyCode,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", table, err)
	}
	return id, nil
}
