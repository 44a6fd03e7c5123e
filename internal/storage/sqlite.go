// Package storage provides SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/erabu/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS applicants (
		applicant_id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth TEXT,
		address TEXT,
		phone_number TEXT
	);

	CREATE TABLE IF NOT EXISTS applications (
		detail_id INTEGER PRIMARY KEY AUTOINCREMENT,
		applicant_id INTEGER NOT NULL,
		application_role TEXT,
		cv_path TEXT NOT NULL,
		FOREIGN KEY (applicant_id) REFERENCES applicants(applicant_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_applications_applicant_id ON applications(applicant_id);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_cv_path ON applications(cv_path);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateApplicant inserts an applicant and sets its generated id.
func (s *SQLiteStorage) CreateApplicant(ctx context.Context, a *models.Applicant) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO applicants (first_name, last_name, date_of_birth, address, phone_number)
		 VALUES (?, ?, ?, ?, ?)`,
		a.FirstName, a.LastName, a.BirthDate, a.Address, a.Phone,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

// GetApplicant returns an applicant by id.
func (s *SQLiteStorage) GetApplicant(ctx context.Context, id int64) (*models.Applicant, error) {
	var a models.Applicant
	err := s.db.QueryRowContext(ctx,
		`SELECT applicant_id, first_name, last_name, date_of_birth, address, phone_number
		 FROM applicants WHERE applicant_id = ?`, id,
	).Scan(&a.ID, &a.FirstName, &a.LastName, &a.BirthDate, &a.Address, &a.Phone)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("applicant %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts an application and sets its generated detail id.
func (s *SQLiteStorage) CreateApplication(ctx context.Context, app *models.Application) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO applications (applicant_id, application_role, cv_path)
		 VALUES (?, ?, ?)`,
		app.ApplicantID, app.Role, app.CVPath,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	app.DetailID = id
	return nil
}

// GetApplication returns an application by detail id.
func (s *SQLiteStorage) GetApplication(ctx context.Context, detailID int64) (*models.Application, error) {
	var app models.Application
	err := s.db.QueryRowContext(ctx,
		`SELECT detail_id, applicant_id, application_role, cv_path
		 FROM applications WHERE detail_id = ?`, detailID,
	).Scan(&app.DetailID, &app.ApplicantID, &app.Role, &app.CVPath)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("application %d: %w", detailID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetApplicationByPath returns the application whose CV file is cvPath.
func (s *SQLiteStorage) GetApplicationByPath(ctx context.Context, cvPath string) (*models.Application, error) {
	var app models.Application
	err := s.db.QueryRowContext(ctx,
		`SELECT detail_id, applicant_id, application_role, cv_path
		 FROM applications WHERE cv_path = ?`, cvPath,
	).Scan(&app.DetailID, &app.ApplicantID, &app.Role, &app.CVPath)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("application for %s: %w", cvPath, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ListApplications returns all applications ordered by detail id.
func (s *SQLiteStorage) ListApplications(ctx context.Context) ([]*models.Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT detail_id, applicant_id, application_role, cv_path
		 FROM applications ORDER BY detail_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(&app.DetailID, &app.ApplicantID, &app.Role, &app.CVPath); err != nil {
			return nil, err
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}

// CountApplications returns the number of application rows.
func (s *SQLiteStorage) CountApplications(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count)
	return count, err
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
