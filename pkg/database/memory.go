package database

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"compliance-hub-backend/pkg/models"
)

// MemoryStore keeps everything in process memory. It backs tests and
// development without an external store; data is gone on restart.
type MemoryStore struct {
	mu        sync.RWMutex
	members   []models.OrganisationMember
	standards []models.Standard
	records   []models.ComplianceRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SeedMember inserts a roster row, generating an id when absent.
func (s *MemoryStore) SeedMember(m models.OrganisationMember) models.OrganisationMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = m.CreatedAt
	s.members = append(s.members, m)
	return m
}

// SeedStandard inserts a standard clause, generating an id when absent.
func (s *MemoryStore) SeedStandard(st models.Standard) models.Standard {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	s.standards = append(s.standards, st)
	return st
}

func (s *MemoryStore) GetMemberByUserID(userID string) (*models.OrganisationMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.members {
		if s.members[i].UserID == userID {
			m := s.members[i]
			return &m, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (s *MemoryStore) ListTeamMembers(orgID string) ([]models.OrganisationMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var members []models.OrganisationMember
	for _, m := range s.members {
		if m.OrganisationID == orgID {
			members = append(members, m)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].FullName < members[j].FullName })
	return members, nil
}

func (s *MemoryStore) UpdateMember(m *models.OrganisationMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.members {
		if s.members[i].ID == m.ID {
			s.members[i].FullName = m.FullName
			s.members[i].AvatarURL = m.AvatarURL
			s.members[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrMemberNotFound
}

func (s *MemoryStore) ListStandards(orgID string) ([]models.Standard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var standards []models.Standard
	for _, st := range s.standards {
		if st.OrganisationID == orgID {
			standards = append(standards, st)
		}
	}
	sort.Slice(standards, func(i, j int) bool { return standards[i].StandardClause < standards[j].StandardClause })
	return standards, nil
}

func (s *MemoryStore) CreateComplianceRecord(rec *models.ComplianceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	s.records = append(s.records, *rec)
	return nil
}

func (s *MemoryStore) ListComplianceRecords(orgID string) ([]models.ComplianceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []models.ComplianceRecord
	for _, rec := range s.records {
		if rec.OrganisationID == orgID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}

// Records returns a copy of every persisted record, for assertions.
func (s *MemoryStore) Records() []models.ComplianceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ComplianceRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *MemoryStore) HealthCheck() error { return nil }

func (s *MemoryStore) Close() error { return nil }
