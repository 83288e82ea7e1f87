package models

import "time"

type ComplianceStatus string

const (
	StatusCompliant    ComplianceStatus = "Compliant"
	StatusAtRisk       ComplianceStatus = "At Risk"
	StatusNonCompliant ComplianceStatus = "Non-Compliant"
)

// IsValid reports whether the status is one of the three accepted values.
func (s ComplianceStatus) IsValid() bool {
	switch s {
	case StatusCompliant, StatusAtRisk, StatusNonCompliant:
		return true
	}
	return false
}

// ComplianceRecord is one persisted compliance entry. FileName and FilePath
// hold comma-joined lists with matching entry counts, in upload order, or
// are null when the record carries no evidence files.
type ComplianceRecord struct {
	ID                string           `json:"id" db:"id"`
	OrganisationID    string           `json:"organisation_id" db:"organisation_id"`
	ComplianceItem    string           `json:"compliance_item" db:"compliance_item"`
	StandardClause    string           `json:"standard_clause" db:"standard_clause"`
	ComplianceStatus  ComplianceStatus `json:"compliance_status" db:"compliance_status"`
	ResponsiblePerson string           `json:"responsible_person" db:"responsible_person"`
	NextReviewDate    *string          `json:"next_review_date,omitempty" db:"next_review_date"`
	Notes             string           `json:"notes,omitempty" db:"notes"`
	FileName          *string          `json:"file_name,omitempty" db:"file_name"`
	FilePath          *string          `json:"file_path,omitempty" db:"file_path"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
}
