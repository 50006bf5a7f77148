package docstore

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// OpenDB opens a SQLite database at the given path and verifies the
// connection.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the chunk mapping table. Idempotent.
// vector_id is the row position in the backing vector index; the mapping is
// append-only and rebuilt wholesale, never edited in place.
func Migrate(db *sql.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS chunks (
		vector_id INTEGER PRIMARY KEY,
		chunk_id TEXT NOT NULL,
		document_name TEXT NOT NULL,
		page INTEGER,
		text TEXT NOT NULL
	);`

	_, err := db.Exec(schema)
	return err
}
