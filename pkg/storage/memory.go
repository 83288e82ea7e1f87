package storage

import (
	"fmt"
	"sync"
)

// StoredObject is one object held by the in-memory store, in upload order.
type StoredObject struct {
	Bucket      string
	Key         string
	Data        []byte
	ContentType string
	Upsert      bool
}

// MemoryObjectStore is the in-memory ObjectStore used by tests. FailAt
// injects a failure on the Nth upload (1-based); zero never fails.
type MemoryObjectStore struct {
	mu      sync.Mutex
	buckets map[string]BucketOptions
	objects []StoredObject

	BucketExistsErr error
	CreateBucketErr error
	FailAt          int
	FailErr         error

	uploadCalls int
}

// NewMemoryObjectStore creates an empty in-memory object store.
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{buckets: make(map[string]BucketOptions)}
}

func (s *MemoryObjectStore) BucketExists(bucket string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.BucketExistsErr != nil {
		return false, s.BucketExistsErr
	}
	_, ok := s.buckets[bucket]
	return ok, nil
}

func (s *MemoryObjectStore) CreateBucket(bucket string, opts BucketOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateBucketErr != nil {
		return s.CreateBucketErr
	}
	if _, ok := s.buckets[bucket]; ok {
		return fmt.Errorf("bucket %q already exists", bucket)
	}
	s.buckets[bucket] = opts
	return nil
}

func (s *MemoryObjectStore) Upload(bucket, key string, data []byte, opts UploadOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadCalls++
	if s.FailAt > 0 && s.uploadCalls == s.FailAt {
		if s.FailErr != nil {
			return s.FailErr
		}
		return fmt.Errorf("injected upload failure")
	}
	if !opts.Upsert {
		for _, obj := range s.objects {
			if obj.Bucket == bucket && obj.Key == key {
				return fmt.Errorf("object %q already exists", key)
			}
		}
	}
	s.objects = append(s.objects, StoredObject{
		Bucket:      bucket,
		Key:         key,
		Data:        append([]byte(nil), data...),
		ContentType: opts.ContentType,
		Upsert:      opts.Upsert,
	})
	return nil
}

func (s *MemoryObjectStore) PublicURL(bucket, key string) string {
	return "https://storage.local/object/public/" + bucket + "/" + key
}

// Objects returns a copy of the stored objects in upload order.
func (s *MemoryObjectStore) Objects() []StoredObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StoredObject, len(s.objects))
	copy(out, s.objects)
	return out
}

// Buckets returns the provisioned bucket names and options.
func (s *MemoryObjectStore) Buckets() map[string]BucketOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]BucketOptions, len(s.buckets))
	for k, v := range s.buckets {
		out[k] = v
	}
	return out
}
