package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	// _ "github.com/mattn/go-sqlite3" // better performance but requires gcc
	_ "modernc.org/sqlite"
)

// timeLayout es de ancho fijo para que el orden de TEXT sea el cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Open abre la base y deja una sola conexión de escritura: SQLite no admite
// escritores concurrentes y ":memory:" crea una base distinta por conexión.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// FormatTime serializa un instante en UTC. El instante cero se guarda como NULL.
func FormatTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timeLayout), Valid: true}
}

// ScanTime adapta dst para leer columnas escritas con FormatTime. NULL deja el instante cero.
func ScanTime(dst *time.Time) sql.Scanner {
	return timeScanner{dst: dst}
}

type timeScanner struct {
	dst *time.Time
}

func (s timeScanner) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s.dst = time.Time{}
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	case time.Time:
		*s.dst = v.UTC()
	default:
		return fmt.Errorf("unsupported time value %T", src)
	}
	return nil
}

func (s timeScanner) parse(v string) error {
	if v == "" {
		*s.dst = time.Time{}
		return nil
	}
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return err
	}
	*s.dst = t.UTC()
	return nil
}
