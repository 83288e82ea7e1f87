package compliance

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"compliance-hub-backend/pkg/database"
	"compliance-hub-backend/pkg/metrics"
	"compliance-hub-backend/pkg/models"
	"compliance-hub-backend/pkg/notify"
	"compliance-hub-backend/pkg/storage"
)

// Service runs the compliance-record submission workflow and profile
// avatar updates against injected store and storage handles.
type Service struct {
	store        database.Store
	objects      storage.ObjectStore
	uploader     *storage.Uploader
	provisioner  *storage.Provisioner
	avatarBucket string
	metrics      *metrics.Metrics
	log          *logrus.Logger
}

// NewService wires a Service. metrics may be nil (tests).
func NewService(store database.Store, objects storage.ObjectStore, evidenceBucket, avatarBucket string, m *metrics.Metrics, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		store:        store,
		objects:      objects,
		uploader:     storage.NewUploader(objects, evidenceBucket),
		provisioner:  storage.NewProvisioner(objects, evidenceBucket, log),
		avatarBucket: avatarBucket,
		metrics:      m,
		log:          log,
	}
}

// SubmitInput carries the record form's field values plus the attached
// evidence files, in selection order.
type SubmitInput struct {
	ComplianceItem    string
	StandardClause    string
	ComplianceStatus  string
	ResponsiblePerson string // admin selection; ignored for other roles
	NextReviewDate    string // "YYYY-MM-DD" or empty
	Notes             string
	Files             []storage.File
}

// SubmitResult is what a successful submission hands back to the front
// end: the persisted record, the evidence count, and the toast payload.
type SubmitResult struct {
	Record       *models.ComplianceRecord `json:"record"`
	FileCount    int                      `json:"file_count"`
	Notification notify.Notification      `json:"notification"`
}

// SubmitRecord validates the form, resolves the responsible person by
// caller role, provisions the bucket, uploads evidence sequentially, and
// persists exactly one record. Every failure aborts the submission; files
// already uploaded are retained remotely (re-submission re-uploads them
// under fresh keys).
func (s *Service) SubmitRecord(caller *models.OrganisationMember, in SubmitInput) (*SubmitResult, error) {
	// Preconditions: no network call until these pass.
	if caller == nil || caller.OrganisationID == "" {
		s.metrics.RecordSubmission("precondition")
		return nil, ErrOrganisationNotFound
	}

	responsible := resolveResponsible(caller, in.ResponsiblePerson)
	if responsible == "" {
		s.metrics.RecordSubmission("precondition")
		return nil, ErrResponsiblePersonRequired
	}

	if strings.TrimSpace(in.ComplianceItem) == "" {
		s.metrics.RecordSubmission("precondition")
		return nil, &ValidationError{Field: "Compliance item"}
	}
	if strings.TrimSpace(in.StandardClause) == "" {
		s.metrics.RecordSubmission("precondition")
		return nil, &ValidationError{Field: "Standard clause"}
	}
	status := models.ComplianceStatus(in.ComplianceStatus)
	if !status.IsValid() {
		s.metrics.RecordSubmission("precondition")
		return nil, &ValidationError{Field: "Compliance status", Invalid: in.ComplianceStatus != ""}
	}

	var nextReview *string
	if in.NextReviewDate != "" {
		parsed, err := time.Parse("2006-01-02", in.NextReviewDate)
		if err != nil {
			s.metrics.RecordSubmission("precondition")
			return nil, &ValidationError{Field: "Next review date", Invalid: true}
		}
		// ISO calendar date only, no time component
		formatted := parsed.Format("2006-01-02")
		nextReview = &formatted
	}

	s.provisioner.Ensure()

	var fileName, filePath *string
	if len(in.Files) > 0 {
		start := time.Now()
		names, paths, err := s.uploader.UploadAll(caller.OrganisationID, in.Files)
		if err != nil {
			s.metrics.RecordSubmission("upload_error")
			return nil, err
		}
		s.metrics.ObserveUploadDuration(time.Since(start).Seconds())
		s.metrics.AddUploadedFiles(len(paths))

		joinedNames := strings.Join(names, ",")
		joinedPaths := strings.Join(paths, ",")
		fileName = &joinedNames
		filePath = &joinedPaths
	}

	rec := &models.ComplianceRecord{
		OrganisationID:    caller.OrganisationID,
		ComplianceItem:    strings.TrimSpace(in.ComplianceItem),
		StandardClause:    in.StandardClause,
		ComplianceStatus:  status,
		ResponsiblePerson: responsible,
		NextReviewDate:    nextReview,
		Notes:             in.Notes,
		FileName:          fileName,
		FilePath:          filePath,
	}

	if err := s.store.CreateComplianceRecord(rec); err != nil {
		s.metrics.RecordSubmission("store_error")
		return nil, fmt.Errorf("failed to save compliance record: %w", err)
	}

	s.metrics.RecordSubmission("success")
	s.log.WithFields(logrus.Fields{
		"record_id":       rec.ID,
		"organisation_id": rec.OrganisationID,
		"files":           len(in.Files),
	}).Info("compliance record created")

	description := "Compliance record added successfully"
	if n := len(in.Files); n > 0 {
		description = fmt.Sprintf("Compliance record added with %d file(s)", n)
	}

	return &SubmitResult{
		Record:       rec,
		FileCount:    len(in.Files),
		Notification: notify.Success("Record added", description),
	}, nil
}
