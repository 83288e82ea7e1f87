package storage

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evidenceKeyPattern = regexp.MustCompile(`^org-1/\d{13}-[A-Za-z0-9_-]{8}\.pdf$`)

func TestUploadAllReturnsParallelSlices(t *testing.T) {
	objects := NewMemoryObjectStore()
	uploader := NewUploader(objects, "compliance-files")

	files := []File{
		{Name: "a.pdf", Data: []byte("aaa")},
		{Name: "b.png", Data: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
		{Name: "c.docx", Data: []byte("ccc")},
	}

	names, paths, err := uploader.UploadAll("org-1", files)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.png", "c.docx"}, names)
	require.Len(t, paths, 3)

	stored := objects.Objects()
	require.Len(t, stored, 3)
	for i, obj := range stored {
		// Upload order matches input order, keys match returned paths.
		assert.Equal(t, paths[i], obj.Key)
		assert.Equal(t, "compliance-files", obj.Bucket)
		assert.False(t, obj.Upsert, "evidence uploads must not overwrite")
	}

	// Content type comes from the bytes, not the file name.
	assert.Equal(t, "image/png", stored[1].ContentType)
}

func TestUploadAllKeyFormat(t *testing.T) {
	objects := NewMemoryObjectStore()
	uploader := NewUploader(objects, "compliance-files")

	_, paths, err := uploader.UploadAll("org-1", []File{{Name: "evidence.pdf", Data: []byte("x")}})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Regexp(t, evidenceKeyPattern, paths[0])
}

func TestUploadAllAbortsOnFailure(t *testing.T) {
	objects := NewMemoryObjectStore()
	objects.FailAt = 3
	objects.FailErr = errors.New("quota exceeded")
	uploader := NewUploader(objects, "compliance-files")

	files := []File{
		{Name: "one.pdf", Data: []byte("1")},
		{Name: "two.pdf", Data: []byte("2")},
		{Name: "three.pdf", Data: []byte("3")},
		{Name: "four.pdf", Data: []byte("4")},
	}

	names, paths, err := uploader.UploadAll("org-1", files)
	require.Error(t, err)
	assert.Nil(t, names)
	assert.Nil(t, paths)

	var uerr *UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "three.pdf", uerr.File)
	assert.ErrorIs(t, err, objects.FailErr)

	// Files before the failure remain; the fourth was never attempted.
	assert.Len(t, objects.Objects(), 2)
}

func TestEvidenceKeyPreservesExtension(t *testing.T) {
	key, err := EvidenceKey("org-9", "Quarterly Report.DOCX")
	require.NoError(t, err)
	assert.Regexp(t, `^org-9/\d{13}-[A-Za-z0-9_-]{8}\.DOCX$`, key)
}

func TestEvidenceKeyWithoutExtension(t *testing.T) {
	key, err := EvidenceKey("org-9", "README")
	require.NoError(t, err)
	assert.Regexp(t, `^org-9/\d{13}-[A-Za-z0-9_-]{8}$`, key)
}

func TestAvatarKeyDerivedFromUser(t *testing.T) {
	key, err := AvatarKey("user-42", "selfie.jpg")
	require.NoError(t, err)
	assert.Regexp(t, `^user-42-[A-Za-z0-9_-]{8}\.jpg$`, key)
}
