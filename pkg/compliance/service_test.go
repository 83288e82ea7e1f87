package compliance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-hub-backend/pkg/database"
	"compliance-hub-backend/pkg/models"
	"compliance-hub-backend/pkg/storage"
)

const testOrgID = "org-123"

func newTestService(t *testing.T) (*Service, *database.MemoryStore, *storage.MemoryObjectStore) {
	t.Helper()
	store := database.NewMemoryStore()
	objects := storage.NewMemoryObjectStore()
	svc := NewService(store, objects, "compliance-files", "avatars", nil, nil)
	return svc, store, objects
}

func adminCaller() *models.OrganisationMember {
	return &models.OrganisationMember{
		ID:             "member-1",
		UserID:         "user-admin",
		OrganisationID: testOrgID,
		FullName:       "Ada Admin",
		Email:          "ada@example.com",
		Role:           models.RoleAdmin,
	}
}

func memberCaller() *models.OrganisationMember {
	return &models.OrganisationMember{
		ID:             "member-2",
		UserID:         "user-member",
		OrganisationID: testOrgID,
		FullName:       "Max Member",
		Email:          "max@example.com",
		Role:           models.RoleMember,
	}
}

func validInput() SubmitInput {
	return SubmitInput{
		ComplianceItem:    "Fire safety audit",
		StandardClause:    "4.1",
		ComplianceStatus:  string(models.StatusCompliant),
		ResponsiblePerson: "Ada Admin",
	}
}

func TestSubmitRecordWithoutFiles(t *testing.T) {
	svc, store, objects := newTestService(t)

	result, err := svc.SubmitRecord(adminCaller(), validInput())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 0, result.FileCount)
	assert.Nil(t, result.Record.FileName)
	assert.Nil(t, result.Record.FilePath)
	assert.Equal(t, "Record added", result.Notification.Title)
	assert.Equal(t, "Compliance record added successfully", result.Notification.Description)

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, testOrgID, records[0].OrganisationID)
	assert.Empty(t, objects.Objects())
}

func TestSubmitRecordJoinsFileColumnsInOrder(t *testing.T) {
	svc, store, _ := newTestService(t)

	in := validInput()
	in.Files = []storage.File{
		{Name: "audit.pdf", Data: []byte("pdf-bytes")},
		{Name: "photo.png", Data: []byte("png-bytes")},
		{Name: "report.docx", Data: []byte("docx-bytes")},
	}

	result, err := svc.SubmitRecord(adminCaller(), in)
	require.NoError(t, err)
	assert.Equal(t, 3, result.FileCount)
	assert.Equal(t, "Compliance record added with 3 file(s)", result.Notification.Description)

	records := store.Records()
	require.Len(t, records, 1)
	require.NotNil(t, records[0].FileName)
	require.NotNil(t, records[0].FilePath)

	names := strings.Split(*records[0].FileName, ",")
	paths := strings.Split(*records[0].FilePath, ",")
	require.Equal(t, []string{"audit.pdf", "photo.png", "report.docx"}, names)
	require.Len(t, paths, 3)

	// Paths correlate with names by index: same extension, org namespace.
	for i, p := range paths {
		assert.True(t, strings.HasPrefix(p, testOrgID+"/"), "path %q not namespaced under organisation", p)
		assert.True(t, strings.HasSuffix(p, names[i][strings.LastIndex(names[i], "."):]),
			"path %q does not keep extension of %q", p, names[i])
	}
}

func TestSubmitRecordForcesNonAdminResponsibleToSelf(t *testing.T) {
	svc, store, _ := newTestService(t)

	in := validInput()
	in.ResponsiblePerson = "Somebody Else"

	_, err := svc.SubmitRecord(memberCaller(), in)
	require.NoError(t, err)

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "Max Member", records[0].ResponsiblePerson)
}

func TestSubmitRecordFallsBackToEmailWhenNameMissing(t *testing.T) {
	svc, store, _ := newTestService(t)

	caller := memberCaller()
	caller.FullName = ""

	_, err := svc.SubmitRecord(caller, validInput())
	require.NoError(t, err)
	assert.Equal(t, "max@example.com", store.Records()[0].ResponsiblePerson)
}

func TestSubmitRecordRequiresAdminSelection(t *testing.T) {
	svc, store, objects := newTestService(t)

	in := validInput()
	in.ResponsiblePerson = "   "
	in.Files = []storage.File{{Name: "audit.pdf", Data: []byte("x")}}

	_, err := svc.SubmitRecord(adminCaller(), in)
	require.ErrorIs(t, err, ErrResponsiblePersonRequired)

	assert.Empty(t, store.Records())
	assert.Empty(t, objects.Objects())
}

func TestSubmitRecordRequiresOrganisation(t *testing.T) {
	svc, store, objects := newTestService(t)

	caller := memberCaller()
	caller.OrganisationID = ""
	in := validInput()
	in.Files = []storage.File{{Name: "audit.pdf", Data: []byte("x")}}

	_, err := svc.SubmitRecord(caller, in)
	require.ErrorIs(t, err, ErrOrganisationNotFound)

	_, err = svc.SubmitRecord(nil, in)
	require.ErrorIs(t, err, ErrOrganisationNotFound)

	assert.Empty(t, store.Records())
	assert.Empty(t, objects.Objects())
}

func TestSubmitRecordFieldValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SubmitInput)
		wantMsg string
	}{
		{"missing item", func(in *SubmitInput) { in.ComplianceItem = "  " }, "Compliance item is required"},
		{"missing clause", func(in *SubmitInput) { in.StandardClause = "" }, "Standard clause is required"},
		{"missing status", func(in *SubmitInput) { in.ComplianceStatus = "" }, "Compliance status is required"},
		{"unknown status", func(in *SubmitInput) { in.ComplianceStatus = "Sorta Fine" }, "Compliance status is invalid"},
		{"bad date", func(in *SubmitInput) { in.NextReviewDate = "01/09/2026" }, "Next review date is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestService(t)
			in := validInput()
			tt.mutate(&in)

			_, err := svc.SubmitRecord(adminCaller(), in)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Empty(t, store.Records())
		})
	}
}

func TestSubmitRecordStoresCalendarDateOnly(t *testing.T) {
	svc, store, _ := newTestService(t)

	in := validInput()
	in.NextReviewDate = "2026-09-01"

	_, err := svc.SubmitRecord(adminCaller(), in)
	require.NoError(t, err)

	records := store.Records()
	require.NotNil(t, records[0].NextReviewDate)
	assert.Equal(t, "2026-09-01", *records[0].NextReviewDate)
}

func TestSubmitRecordAbortsOnFirstUploadFailure(t *testing.T) {
	svc, store, objects := newTestService(t)
	objects.FailAt = 2

	in := validInput()
	in.Files = []storage.File{
		{Name: "first.pdf", Data: []byte("a")},
		{Name: "second.pdf", Data: []byte("b")},
		{Name: "third.pdf", Data: []byte("c")},
	}

	_, err := svc.SubmitRecord(adminCaller(), in)
	require.Error(t, err)

	var uerr *storage.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "second.pdf", uerr.File)
	assert.Contains(t, err.Error(), "second.pdf")

	// The first file stays uploaded; no record is written.
	assert.Len(t, objects.Objects(), 1)
	assert.Empty(t, store.Records())
}

func TestSubmitRecordProvisionsEvidenceBucket(t *testing.T) {
	svc, _, objects := newTestService(t)

	in := validInput()
	in.Files = []storage.File{{Name: "audit.pdf", Data: []byte("x")}}

	_, err := svc.SubmitRecord(adminCaller(), in)
	require.NoError(t, err)

	buckets := objects.Buckets()
	opts, ok := buckets["compliance-files"]
	require.True(t, ok, "evidence bucket was not provisioned")
	assert.True(t, opts.Public)
	assert.NotEmpty(t, opts.AllowedMIMETypes)
}

var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}

func TestUpdateAvatar(t *testing.T) {
	svc, store, objects := newTestService(t)
	caller := store.SeedMember(*memberCaller())

	result, err := svc.UpdateAvatar(&caller, "me.png", pngBytes)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.AvatarURL, "/avatars/")
	assert.Equal(t, "Profile updated", result.Notification.Title)

	objs := objects.Objects()
	require.Len(t, objs, 1)
	assert.Equal(t, "avatars", objs[0].Bucket)
	assert.True(t, objs[0].Upsert, "avatar upload must allow overwrite")
	assert.Equal(t, "image/png", objs[0].ContentType)

	updated, err := store.GetMemberByUserID(caller.UserID)
	require.NoError(t, err)
	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, result.AvatarURL, *updated.AvatarURL)
}

func TestUpdateAvatarRejectsNonImage(t *testing.T) {
	svc, _, objects := newTestService(t)

	_, err := svc.UpdateAvatar(memberCaller(), "notes.txt", []byte("just some text"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an image")
	assert.Empty(t, objects.Objects())
}

func TestUpdateAvatarRequiresData(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateAvatar(memberCaller(), "me.png", nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
