package storage

// BucketOptions configure bucket creation.
type BucketOptions struct {
	Public           bool
	AllowedMIMETypes []string
	FileSizeLimit    int64
}

// UploadOptions configure a single object upload.
type UploadOptions struct {
	ContentType string
	// CacheControl is the max-age in seconds sent with the object.
	CacheControl string
	// Upsert allows overwriting an existing object at the same key.
	Upsert bool
}

// ObjectStore is the object-storage contract: bucket provisioning, raw
// uploads, and public-URL derivation. Implementations: Supabase Storage
// REST and an in-memory store for tests.
type ObjectStore interface {
	BucketExists(bucket string) (bool, error)
	CreateBucket(bucket string, opts BucketOptions) error
	Upload(bucket, key string, data []byte, opts UploadOptions) error
	PublicURL(bucket, key string) string
}

// AllowedEvidenceMIMETypes is the bucket allow-list for compliance
// evidence: images, PDF, and legacy/OOXML Word documents.
var AllowedEvidenceMIMETypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}
