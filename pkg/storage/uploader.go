package storage

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// File is one attachment handed over by the file picker: the original name
// plus raw bytes.
type File struct {
	Name string
	Data []byte
}

// UploadError names the file whose upload failed and wraps the cause.
type UploadError struct {
	File string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %s: %v", e.File, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// evidenceCacheControl matches the front end's one-hour cache directive.
const evidenceCacheControl = "3600"

// Uploader pushes evidence files into the bucket one by one.
type Uploader struct {
	objects ObjectStore
	bucket  string
}

// NewUploader creates an Uploader for the given bucket.
func NewUploader(objects ObjectStore, bucket string) *Uploader {
	return &Uploader{objects: objects, bucket: bucket}
}

// UploadAll uploads the files strictly in order and returns two parallel
// slices: original names and assigned storage paths, index-correlated.
// The first failure aborts the remaining uploads; files already uploaded
// are not rolled back. Content types are detected from the bytes.
func (u *Uploader) UploadAll(orgID string, files []File) (names, paths []string, err error) {
	for _, f := range files {
		key, err := EvidenceKey(orgID, f.Name)
		if err != nil {
			return nil, nil, &UploadError{File: f.Name, Err: err}
		}

		opts := UploadOptions{
			ContentType:  mimetype.Detect(f.Data).String(),
			CacheControl: evidenceCacheControl,
			Upsert:       false,
		}
		if err := u.objects.Upload(u.bucket, key, f.Data, opts); err != nil {
			return nil, nil, &UploadError{File: f.Name, Err: err}
		}

		names = append(names, f.Name)
		paths = append(paths, key)
	}
	return names, paths, nil
}
