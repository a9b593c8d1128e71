package store

import (
	"database/sql"
)

const setsSchema = `
CREATE TABLE IF NOT EXISTS embedding_sets (
    set_name  TEXT NOT NULL,
    row_idx   INTEGER NOT NULL,
    dim       INTEGER NOT NULL,
    embedding BLOB NOT NULL,
    PRIMARY KEY(set_name, row_idx)
);
`

// EnsureSchema creates the embedding_sets table in the provided database if
// it does not already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(setsSchema)
	return err
}
