package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperjump/erabu/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStorage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStorage_ApplicantRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	a := &models.Applicant{
		FirstName: "Grace",
		LastName:  "Chen",
		BirthDate: "1992-04-17",
		Address:   "12 Harbor Road",
		Phone:     "081234567890",
	}
	if err := s.CreateApplicant(ctx, a); err != nil {
		t.Fatalf("CreateApplicant: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("CreateApplicant did not set the generated id")
	}

	got, err := s.GetApplicant(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetApplicant: %v", err)
	}
	if got.FullName() != "Grace Chen" {
		t.Errorf("FullName = %q, want %q", got.FullName(), "Grace Chen")
	}
	if got.Phone != a.Phone {
		t.Errorf("Phone = %q, want %q", got.Phone, a.Phone)
	}
}

func TestSQLiteStorage_GetApplicant_NotFound(t *testing.T) {
	s := newTestStorage(t)
	if _, err := s.GetApplicant(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetApplicant(42) error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStorage_Applications(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	a := &models.Applicant{FirstName: "Omar", LastName: "Patel"}
	if err := s.CreateApplicant(ctx, a); err != nil {
		t.Fatal(err)
	}

	for _, role := range []string{"backend", "frontend"} {
		app := &models.Application{
			ApplicantID: a.ID,
			Role:        role,
			CVPath:      "data/" + role + "/cv.pdf",
		}
		if err := s.CreateApplication(ctx, app); err != nil {
			t.Fatalf("CreateApplication(%s): %v", role, err)
		}
		if app.DetailID == 0 {
			t.Fatal("CreateApplication did not set the detail id")
		}
	}

	apps, err := s.ListApplications(ctx)
	if err != nil {
		t.Fatalf("ListApplications: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("ListApplications returned %d rows, want 2", len(apps))
	}
	if apps[0].DetailID >= apps[1].DetailID {
		t.Error("applications not ordered by detail id")
	}

	count, err := s.CountApplications(ctx)
	if err != nil {
		t.Fatalf("CountApplications: %v", err)
	}
	if count != 2 {
		t.Errorf("CountApplications = %d, want 2", count)
	}

	got, err := s.GetApplication(ctx, apps[0].DetailID)
	if err != nil {
		t.Fatalf("GetApplication: %v", err)
	}
	if got.Role != "backend" {
		t.Errorf("Role = %q, want backend", got.Role)
	}

	if _, err := s.GetApplication(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetApplication(999) error = %v, want ErrNotFound", err)
	}
}
