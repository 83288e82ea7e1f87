package models

import "time"

type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// OrganisationMember is one row of an organisation's roster. The same shape
// backs the authenticated caller identity and the responsible-person
// selector offered to admins.
type OrganisationMember struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"user_id" db:"user_id"`
	OrganisationID string     `json:"organisation_id,omitempty" db:"organisation_id"`
	FullName       string     `json:"full_name,omitempty" db:"full_name"`
	Email          string     `json:"email" db:"email"`
	Role           MemberRole `json:"role,omitempty" db:"role"`
	AvatarURL      *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// DisplayName is what ends up in responsible_person for non-admin callers.
func (m *OrganisationMember) DisplayName() string {
	if m.FullName != "" {
		return m.FullName
	}
	return m.Email
}
