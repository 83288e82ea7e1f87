package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-hub-backend/pkg/models"
)

func TestListStandardsScopedAndOrdered(t *testing.T) {
	store := NewMemoryStore()
	store.SeedStandard(models.Standard{OrganisationID: "org-a", StandardClause: "8.1", StandardDescription: "Operational planning"})
	store.SeedStandard(models.Standard{OrganisationID: "org-a", StandardClause: "4.1", StandardDescription: "Context"})
	store.SeedStandard(models.Standard{OrganisationID: "org-a", StandardClause: "6.1", StandardDescription: "Risks"})
	store.SeedStandard(models.Standard{OrganisationID: "org-b", StandardClause: "1.1", StandardDescription: "Other org"})

	standards, err := store.ListStandards("org-a")
	require.NoError(t, err)
	require.Len(t, standards, 3)

	clauses := []string{standards[0].StandardClause, standards[1].StandardClause, standards[2].StandardClause}
	assert.Equal(t, []string{"4.1", "6.1", "8.1"}, clauses)
}

func TestListStandardsEmptyOrganisation(t *testing.T) {
	store := NewMemoryStore()

	standards, err := store.ListStandards("org-empty")
	require.NoError(t, err)
	assert.Empty(t, standards)
}

func TestListTeamMembersScopedAndOrdered(t *testing.T) {
	store := NewMemoryStore()
	store.SeedMember(models.OrganisationMember{UserID: "u1", OrganisationID: "org-a", FullName: "Zoe", Email: "z@example.com"})
	store.SeedMember(models.OrganisationMember{UserID: "u2", OrganisationID: "org-a", FullName: "Ann", Email: "a@example.com"})
	store.SeedMember(models.OrganisationMember{UserID: "u3", OrganisationID: "org-b", FullName: "Bob", Email: "b@example.com"})

	members, err := store.ListTeamMembers("org-a")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Ann", members[0].FullName)
	assert.Equal(t, "Zoe", members[1].FullName)
}

func TestGetMemberByUserID(t *testing.T) {
	store := NewMemoryStore()
	seeded := store.SeedMember(models.OrganisationMember{UserID: "u1", OrganisationID: "org-a", FullName: "Ann", Email: "a@example.com"})

	member, err := store.GetMemberByUserID("u1")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, member.ID)

	_, err = store.GetMemberByUserID("unknown")
	require.Error(t, err)
}

func TestUpdateMember(t *testing.T) {
	store := NewMemoryStore()
	seeded := store.SeedMember(models.OrganisationMember{UserID: "u1", OrganisationID: "org-a", FullName: "Ann", Email: "a@example.com"})

	url := "https://storage.local/object/public/avatars/u1.png"
	seeded.FullName = "Ann Updated"
	seeded.AvatarURL = &url
	require.NoError(t, store.UpdateMember(&seeded))

	got, err := store.GetMemberByUserID("u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann Updated", got.FullName)
	require.NotNil(t, got.AvatarURL)
	assert.Equal(t, url, *got.AvatarURL)
}

func TestComplianceRecordsScopedNewestFirst(t *testing.T) {
	store := NewMemoryStore()

	for _, item := range []string{"first", "second", "third"} {
		rec := &models.ComplianceRecord{
			OrganisationID:    "org-a",
			ComplianceItem:    item,
			StandardClause:    "4.1",
			ComplianceStatus:  models.StatusCompliant,
			ResponsiblePerson: "Ann",
		}
		require.NoError(t, store.CreateComplianceRecord(rec))
		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
	}
	require.NoError(t, store.CreateComplianceRecord(&models.ComplianceRecord{
		OrganisationID:    "org-b",
		ComplianceItem:    "other org",
		StandardClause:    "4.1",
		ComplianceStatus:  models.StatusAtRisk,
		ResponsiblePerson: "Bob",
	}))

	records, err := store.ListComplianceRecords("org-a")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 0; i < len(records)-1; i++ {
		assert.False(t, records[i].CreatedAt.Before(records[i+1].CreatedAt),
			"records must be ordered newest first")
	}
}
