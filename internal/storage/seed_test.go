package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSeedCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := []string{
		"backend/cv_one.txt",
		"backend/cv_two.txt",
		"frontend/cv_three.txt",
		"loose_cv.txt",
		"notes/readme.log", // wrong extension, skipped
	}
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("sample cv text"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestSeed(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	dir := writeSeedCorpus(t)

	created, err := Seed(ctx, s, dir, []string{".txt"})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if created != 4 {
		t.Fatalf("Seed created %d applications, want 4", created)
	}

	apps, err := s.ListApplications(ctx)
	if err != nil {
		t.Fatal(err)
	}
	roles := make(map[string]int)
	for _, app := range apps {
		roles[app.Role]++
		applicant, err := s.GetApplicant(ctx, app.ApplicantID)
		if err != nil {
			t.Fatalf("seeded application %d has no applicant: %v", app.DetailID, err)
		}
		if applicant.FullName() == "" {
			t.Error("seeded applicant has no name")
		}
	}
	if roles["backend"] != 2 || roles["frontend"] != 1 || roles["Unknown Role"] != 1 {
		t.Errorf("roles = %v", roles)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	dir := writeSeedCorpus(t)

	if _, err := Seed(ctx, s, dir, []string{".txt"}); err != nil {
		t.Fatal(err)
	}
	created, err := Seed(ctx, s, dir, []string{".txt"})
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if created != 0 {
		t.Errorf("second Seed created %d applications, want 0", created)
	}
}
