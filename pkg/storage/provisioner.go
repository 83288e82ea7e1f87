package storage

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Provisioner lazily ensures the evidence bucket exists before the first
// upload. The first successful check or creation is cached so later
// submissions skip the round trip. Errors are logged and swallowed: the
// bucket may already exist under races the check cannot see, so the upload
// pipeline proceeds regardless.
type Provisioner struct {
	objects ObjectStore
	bucket  string
	log     *logrus.Logger

	mu          sync.Mutex
	provisioned bool
}

// NewProvisioner creates a Provisioner for the given bucket.
func NewProvisioner(objects ObjectStore, bucket string, log *logrus.Logger) *Provisioner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Provisioner{objects: objects, bucket: bucket, log: log}
}

// Ensure makes the bucket exist, tolerating pre-existence. Never returns an
// error; failures only mean the next call will try again.
func (p *Provisioner) Ensure() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.provisioned {
		return
	}

	exists, err := p.objects.BucketExists(p.bucket)
	if err != nil {
		p.log.WithError(err).WithField("bucket", p.bucket).Warn("bucket existence check failed, proceeding anyway")
		return
	}
	if exists {
		p.provisioned = true
		return
	}

	err = p.objects.CreateBucket(p.bucket, BucketOptions{
		Public:           true,
		AllowedMIMETypes: AllowedEvidenceMIMETypes,
	})
	if err != nil {
		p.log.WithError(err).WithField("bucket", p.bucket).Warn("bucket creation failed, proceeding anyway")
		return
	}

	p.log.WithField("bucket", p.bucket).Info("created evidence bucket")
	p.provisioned = true
}
