package models

import "strings"

// Applicant is a row from the applicants table.
type Applicant struct {
	ID        int64  `json:"applicant_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"date_of_birth"`
	Address   string `json:"address"`
	Phone     string `json:"phone_number"`
}

// FullName returns "First Last" with empty parts dropped.
func (a *Applicant) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Application is a row from the applications table, linking an applicant
// to a submitted CV file and the role applied for.
type Application struct {
	DetailID    int64  `json:"detail_id"`
	ApplicantID int64  `json:"applicant_id"`
	Role        string `json:"application_role"`
	CVPath      string `json:"cv_path"`
}

// CVSummary aggregates identity fields with regex-extracted sections for
// the summary endpoint.
type CVSummary struct {
	DetailID      int64    `json:"detail_id"`
	ApplicantName string   `json:"applicant_name"`
	BirthDate     string   `json:"birthdate"`
	Address       string   `json:"address"`
	Phone         string   `json:"phone_number"`
	Role          string   `json:"application_role"`
	Skills        []string `json:"skills"`
	Experience    []string `json:"job_history"`
	Education     []string `json:"education"`
	Overview      string   `json:"overall_summary"`
	CVPath        string   `json:"cv_path"`
}
