package gateway

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"name-reconciliation/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps reference datasets in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path and
// applies pending schema migrations.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := migrateUp(path); err != nil {
		return nil, fmt.Errorf("migrate reference store %s: %w", path, err)
	}
	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func openSQLite(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return db, nil
}

// migrateUp runs on its own handle because closing the migrator closes the
// database it was given.
func migrateUp(path string) error {
	db, err := openSQLite(path)
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		db.Close()
		return err
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		db.Close()
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// Load reads all datasets in the order they were saved.
func (s *SQLiteStore) Load(ctx context.Context) ([]*domain.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.name, r.name, r.secondary_id, r.amount
		FROM origins o
		LEFT JOIN reference_records r ON r.origin_id = o.id
		ORDER BY o.position, r.position`)
	if err != nil {
		return nil, fmt.Errorf("query reference store: %w", err)
	}
	defer rows.Close()

	var sets []*domain.Dataset
	var current *domain.Dataset
	for rows.Next() {
		var origin string
		var name, id, amount sql.NullString
		if err := rows.Scan(&origin, &name, &id, &amount); err != nil {
			return nil, fmt.Errorf("scan reference record: %w", err)
		}
		if current == nil || current.Origin != origin {
			current = domain.NewDataset(origin)
			sets = append(sets, current)
		}
		if !name.Valid {
			continue
		}

		rec := domain.Record{Name: name.String, SecondaryID: id.String}
		if amount.Valid {
			d, err := decimal.NewFromString(amount.String)
			if err != nil {
				return nil, &domain.FormatError{Value: amount.String}
			}
			rec.Amount = decimal.NewNullDecimal(d)
		}
		current.Put(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reference store: %w", err)
	}
	return sets, nil
}

// Save replaces the stored datasets with sets in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, sets []*domain.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := saveTx(ctx, tx, sets); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func saveTx(ctx context.Context, tx *sql.Tx, sets []*domain.Dataset) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM reference_records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM origins`); err != nil {
		return fmt.Errorf("clear origins: %w", err)
	}

	insertRecord, err := tx.PrepareContext(ctx, `
		INSERT INTO reference_records (origin_id, position, name, secondary_id, amount)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertRecord.Close()

	for i, ds := range sets {
		res, err := tx.ExecContext(ctx, `INSERT INTO origins (name, position) VALUES (?, ?)`, ds.Origin, i)
		if err != nil {
			return fmt.Errorf("insert origin %q: %w", ds.Origin, err)
		}
		originID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for j, rec := range ds.Records() {
			var amount sql.NullString
			if rec.Amount.Valid {
				amount = sql.NullString{String: rec.Amount.Decimal.String(), Valid: true}
			}
			if _, err := insertRecord.ExecContext(ctx, originID, j, rec.Name, rec.SecondaryID, amount); err != nil {
				return fmt.Errorf("insert record %q: %w", rec.Name, err)
			}
		}
	}
	return nil
}
