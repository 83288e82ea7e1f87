package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"compliance-hub-backend/pkg/models"
)

// PostgresStore is the direct-SQL implementation of Store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a PostgreSQL connection pool sized for a
// serverless environment.
func NewPostgresStore(dsn string) Store {
	// Sanitize DSN to avoid stray CR/LF from env values
	dsn = strings.TrimSpace(dsn)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		panic(fmt.Sprintf("Failed to open PostgreSQL connection: %v", err))
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		panic(fmt.Sprintf("Failed to ping PostgreSQL: %v", err))
	}

	fmt.Printf("✅ PostgreSQL connection established\n")
	return &PostgresStore{db: db}
}

// ================= Organisation members =================

func (s *PostgresStore) GetMemberByUserID(userID string) (*models.OrganisationMember, error) {
	query := `
        SELECT id, user_id, COALESCE(organisation_id::text, ''), COALESCE(full_name, ''),
               email, COALESCE(role, 'member'), avatar_url, created_at, updated_at
        FROM organisation_members
        WHERE user_id = $1
    `
	m := &models.OrganisationMember{}
	err := s.db.QueryRow(query, userID).Scan(
		&m.ID, &m.UserID, &m.OrganisationID, &m.FullName,
		&m.Email, &m.Role, &m.AvatarURL, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organisation member: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) ListTeamMembers(orgID string) ([]models.OrganisationMember, error) {
	query := `
        SELECT id, user_id, COALESCE(organisation_id::text, ''), COALESCE(full_name, ''),
               email, COALESCE(role, 'member'), avatar_url, created_at, updated_at
        FROM organisation_members
        WHERE organisation_id = $1
        ORDER BY full_name ASC
    `
	rows, err := s.db.Query(query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	var members []models.OrganisationMember
	for rows.Next() {
		var m models.OrganisationMember
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.OrganisationID, &m.FullName,
			&m.Email, &m.Role, &m.AvatarURL, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *PostgresStore) UpdateMember(m *models.OrganisationMember) error {
	query := `
        UPDATE organisation_members
        SET full_name = $1, avatar_url = $2, updated_at = NOW()
        WHERE id = $3
    `
	res, err := s.db.Exec(query, m.FullName, m.AvatarURL, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update organisation member: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// ================= Standards =================

func (s *PostgresStore) ListStandards(orgID string) ([]models.Standard, error) {
	query := `
        SELECT id, organisation_id, standard_clause, COALESCE(standard_description, '')
        FROM standards
        WHERE organisation_id = $1
        ORDER BY standard_clause ASC
    `
	rows, err := s.db.Query(query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standards: %w", err)
	}
	defer rows.Close()

	var standards []models.Standard
	for rows.Next() {
		var st models.Standard
		if err := rows.Scan(&st.ID, &st.OrganisationID, &st.StandardClause, &st.StandardDescription); err != nil {
			return nil, fmt.Errorf("failed to scan standard: %w", err)
		}
		standards = append(standards, st)
	}
	return standards, rows.Err()
}

// ================= Compliance records =================

func (s *PostgresStore) CreateComplianceRecord(rec *models.ComplianceRecord) error {
	query := `
        INSERT INTO compliance_records
            (organisation_id, compliance_item, standard_clause, compliance_status,
             responsible_person, next_review_date, notes, file_name, file_path, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
        RETURNING id, created_at
    `
	err := s.db.QueryRow(query,
		rec.OrganisationID, rec.ComplianceItem, rec.StandardClause, string(rec.ComplianceStatus),
		rec.ResponsiblePerson, rec.NextReviewDate, rec.Notes, rec.FileName, rec.FilePath,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create compliance record: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListComplianceRecords(orgID string) ([]models.ComplianceRecord, error) {
	query := `
        SELECT id, organisation_id, compliance_item, standard_clause, compliance_status,
               responsible_person, next_review_date::text, COALESCE(notes, ''),
               file_name, file_path, created_at
        FROM compliance_records
        WHERE organisation_id = $1
        ORDER BY created_at DESC
    `
	rows, err := s.db.Query(query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list compliance records: %w", err)
	}
	defer rows.Close()

	var records []models.ComplianceRecord
	for rows.Next() {
		var rec models.ComplianceRecord
		if err := rows.Scan(
			&rec.ID, &rec.OrganisationID, &rec.ComplianceItem, &rec.StandardClause, &rec.ComplianceStatus,
			&rec.ResponsiblePerson, &rec.NextReviewDate, &rec.Notes,
			&rec.FileName, &rec.FilePath, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan compliance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// HealthCheck pings the database.
func (s *PostgresStore) HealthCheck() error {
	return s.db.Ping()
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
