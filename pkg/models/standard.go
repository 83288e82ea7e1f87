package models

// Standard is a read-only compliance-standard clause, scoped to one
// organisation. Fetched fresh each time the record form opens; never cached.
type Standard struct {
	ID                  string `json:"id" db:"id"`
	OrganisationID      string `json:"organisation_id" db:"organisation_id"`
	StandardClause      string `json:"standard_clause" db:"standard_clause"`
	StandardDescription string `json:"standard_description" db:"standard_description"`
}
