package database

import (
	"errors"
	"fmt"

	"compliance-hub-backend/pkg/models"
)

// ErrMemberNotFound reports that no roster row exists for the lookup, as
// opposed to the store being unreachable.
var ErrMemberNotFound = errors.New("organisation member not found")

// Store is the managed relational store contract the handlers and the
// compliance service depend on. Implementations: Supabase REST, direct
// PostgreSQL, and an in-memory store for tests and local development.
type Store interface {
	// Organisation members
	GetMemberByUserID(userID string) (*models.OrganisationMember, error)
	ListTeamMembers(orgID string) ([]models.OrganisationMember, error)
	UpdateMember(m *models.OrganisationMember) error

	// Standards (read-only, org-scoped, clause ascending)
	ListStandards(orgID string) ([]models.Standard, error)

	// Compliance records
	CreateComplianceRecord(rec *models.ComplianceRecord) error
	ListComplianceRecords(orgID string) ([]models.ComplianceRecord, error)

	HealthCheck() error
	Close() error
}

// StoreConfig selects and configures a Store backend.
type StoreConfig struct {
	PostgresDSN string
	SupabaseURL string
	SupabaseKey string
	Development bool
	Debug       bool
}

// NewStore picks a Store implementation from the configuration:
// PostgreSQL > Supabase REST > in-memory (development only).
func NewStore(config StoreConfig) Store {
	if config.PostgresDSN != "" {
		fmt.Printf("🗄️  Using PostgreSQL store\n")
		return NewPostgresStore(config.PostgresDSN)
	}

	if config.SupabaseURL != "" && config.SupabaseKey != "" {
		fmt.Printf("🧰  Using Supabase REST store\n")
		return NewSupabaseStore(config.SupabaseURL, config.SupabaseKey)
	}

	if config.Development {
		fmt.Printf("⚠️  No external store configured, using in-memory store (data is not persisted)\n")
		return NewMemoryStore()
	}

	panic("No valid store configuration found. Please configure POSTGRES_DSN or SUPABASE_URL+SUPABASE_SERVICE_KEY")
}
