// Package storage defines the relational access layer for applicant
// profiles and application details.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/erabu/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Storage defines applicant and application persistence operations.
type Storage interface {
	// Applicant operations
	CreateApplicant(ctx context.Context, a *models.Applicant) error
	GetApplicant(ctx context.Context, id int64) (*models.Applicant, error)

	// Application operations
	CreateApplication(ctx context.Context, app *models.Application) error
	GetApplication(ctx context.Context, detailID int64) (*models.Application, error)
	GetApplicationByPath(ctx context.Context, cvPath string) (*models.Application, error)
	ListApplications(ctx context.Context) ([]*models.Application, error)
	CountApplications(ctx context.Context) (int64, error)

	Close() error
}
