package sqlstore

import (
	"context"
	"fmt"
	"strings"
)

// En postgres los identificadores sin comillas se pliegan a minúsculas;
// el mismo SQL sirve para ambos dialectos.
func (s *Store) schema() []string {
	floatType := "REAL"
	if s.dialect == DialectPostgres {
		floatType = "DOUBLE PRECISION"
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS animals (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			species TEXT NOT NULL,
			breed TEXT,
			color TEXT,
			sex TEXT,
			dateOfBirth TEXT NOT NULL,
			status TEXT NOT NULL,
			notes TEXT,
			image TEXT,
			createdAt TEXT NOT NULL,
			updatedAt TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS breedings (
			id TEXT PRIMARY KEY,
			maleId TEXT NOT NULL,
			femaleId TEXT NOT NULL,
			breedingDate TEXT NOT NULL,
			expectedDate TEXT,
			actualDate TEXT,
			status TEXT DEFAULT 'pending',
			notes TEXT,
			offspring INTEGER DEFAULT 0,
			createdAt TEXT NOT NULL,
			updatedAt TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS hatchings (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			totalEggs INTEGER NOT NULL,
			startDate TEXT NOT NULL,
			incubationDays INTEGER NOT NULL,
			expectedHatchDate TEXT NOT NULL,
			actualHatchDate TEXT,
			hatchedEggs INTEGER DEFAULT 0,
			status TEXT DEFAULT 'incubating',
			temperature ` + floatType + `,
			humidity ` + floatType + `,
			notes TEXT,
			createdAt TEXT NOT NULL,
			updatedAt TEXT NOT NULL
		)`,
	}
}

// Migrate crea las tablas y aplica las columnas agregadas después.
// Es idempotente: se corre en cada arranque.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range s.schema() {
		if _, err := s.exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	// gestationDays llegó después del esquema inicial; mismo camino para bases nuevas y viejas
	if _, err := s.EnsureColumn(ctx, "breedings", "gestationDays", "INTEGER DEFAULT 31"); err != nil {
		return err
	}
	return nil
}

// EnsureColumn agrega column a table si no existe. Devuelve true si la agregó.
func (s *Store) EnsureColumn(ctx context.Context, table, column, definition string) (bool, error) {
	exists, err := s.columnExists(ctx, table, column)
	if err != nil {
		return false, fmt.Errorf("inspect %s.%s: %w", table, column, err)
	}
	if exists {
		return false, nil
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)
	if _, err := s.exec(ctx, stmt); err != nil {
		return false, fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return true, nil
}

func (s *Store) columnExists(ctx context.Context, table, column string) (bool, error) {
	if s.dialect == DialectPostgres {
		var n int
		err := s.queryRow(ctx, `
			SELECT COUNT(*) FROM information_schema.columns
			WHERE table_name = ? AND lower(column_name) = lower(?)
		`, strings.ToLower(table), column).Scan(&n)
		return n > 0, err
	}

	// PRAGMA no acepta placeholders; table viene de código, nunca del request.
	rows, err := s.query(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if strings.EqualFold(name, column) {
			return true, nil
		}
	}
	return false, rows.Err()
}
