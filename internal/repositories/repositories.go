package repositories

import (
	"database/sql"
	"fmt"
)

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// NextSequence advances and returns the counter stored in table's "<table>_sequence" row.
//
// Passing a *sql.Tx ties the increment to the caller's commit, so a rolled back insert gives its number back.
func NextSequence(q queryRower, table string) (int, error) {
	var sequence int
	query := fmt.Sprintf("UPDATE %s_sequence SET value = value + 1 WHERE id = 1 RETURNING value", table)
	if err := q.QueryRow(query).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to advance %s sequence: %w", table, err)
	}
	return sequence, nil
}
