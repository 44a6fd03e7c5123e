package storage

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

// Sample names used to generate applicant profiles for CV files that have
// no database row yet. Names cycle, so a big corpus repeats them.
var (
	seedFirstNames = []string{
		"Ava", "Ben", "Chloe", "Daniel", "Elena", "Farid", "Grace", "Hiro",
		"Indra", "Julia", "Kenji", "Laila", "Marcus", "Nadia", "Omar", "Priya",
		"Quentin", "Rosa", "Sven", "Tara",
	}
	seedLastNames = []string{
		"Anderson", "Baker", "Chen", "Dawson", "Evans", "Fischer", "Garcia",
		"Huang", "Ivanov", "Johnson", "Kim", "Lopez", "Mori", "Nguyen",
		"Okafor", "Patel", "Quinn", "Rahman", "Sato", "Tanaka",
	}
)

// Seed walks dataDir for CV files and creates an applicant profile plus an
// application row for each file that has none yet. The immediate
// subdirectory name is used as the application role (e.g. data/backend/cv.pdf
// applies for "backend"). Files whose extension is not in extensions are
// skipped. Returns the number of applications created.
func Seed(ctx context.Context, store Storage, dataDir string, extensions []string) (int, error) {
	existing, err := store.ListApplications(ctx)
	if err != nil {
		return 0, fmt.Errorf("list applications: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, app := range existing {
		seen[app.CVPath] = struct{}{}
	}

	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}

	created := 0
	walkErr := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if len(extSet) > 0 {
			if _, ok := extSet[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil
			}
		}
		if _, ok := seen[path]; ok {
			return nil
		}
		if _, err := SeedApplication(ctx, store, dataDir, path, created); err != nil {
			return err
		}
		seen[path] = struct{}{}
		created++
		return nil
	})
	if walkErr != nil {
		return created, fmt.Errorf("walk %s: %w", dataDir, walkErr)
	}
	return created, nil
}

// SeedApplication creates a generated applicant profile and an application
// row for one CV file. seq varies the generated profile fields. The role
// is the file's directory relative to dataDir, or "Unknown Role" for files
// directly under dataDir.
func SeedApplication(ctx context.Context, store Storage, dataDir, cvPath string, seq int) (int64, error) {
	role := "Unknown Role"
	if rel, err := filepath.Rel(dataDir, cvPath); err == nil {
		if dir := filepath.Dir(rel); dir != "." {
			// Top-level subdirectory names the role.
			role = strings.Split(dir, string(filepath.Separator))[0]
		}
	}

	applicant := generateApplicant(seq)
	if err := store.CreateApplicant(ctx, applicant); err != nil {
		return 0, fmt.Errorf("create applicant for %s: %w", cvPath, err)
	}
	app := &models.Application{
		ApplicantID: applicant.ID,
		Role:        role,
		CVPath:      cvPath,
	}
	if err := store.CreateApplication(ctx, app); err != nil {
		return 0, fmt.Errorf("create application for %s: %w", cvPath, err)
	}
	return app.DetailID, nil
}

// generateApplicant builds a deterministic sample profile for seq.
func generateApplicant(seq int) *models.Applicant {
	first := seedFirstNames[seq%len(seedFirstNames)]
	last := seedLastNames[(seq/len(seedFirstNames)+seq)%len(seedLastNames)]
	year := 1988 + seq%12
	month := 1 + seq%12
	day := 1 + seq%28
	return &models.Applicant{
		FirstName: first,
		LastName:  last,
		BirthDate: fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		Address:   fmt.Sprintf("%d Example Street", 100+seq),
		Phone:     fmt.Sprintf("08%010d", 1000000+seq),
	}
}
