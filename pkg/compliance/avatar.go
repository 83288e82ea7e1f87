package compliance

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"compliance-hub-backend/pkg/models"
	"compliance-hub-backend/pkg/notify"
	"compliance-hub-backend/pkg/storage"
)

// AvatarResult reports where the new avatar lives.
type AvatarResult struct {
	AvatarURL    string              `json:"avatar_url"`
	Notification notify.Notification `json:"notification"`
}

// UpdateAvatar uploads a single profile image (overwrite allowed), derives
// its public URL, and points the caller's member row at it. Failure at
// either stage aborts; a half-done upload is not rolled back.
func (s *Service) UpdateAvatar(caller *models.OrganisationMember, fileName string, data []byte) (*AvatarResult, error) {
	if caller == nil {
		return nil, fmt.Errorf("authentication required")
	}
	if len(data) == 0 {
		return nil, &ValidationError{Field: "Avatar file"}
	}

	mtype := mimetype.Detect(data)
	if !isImage(mtype.String()) {
		return nil, fmt.Errorf("avatar must be an image, got %s", mtype.String())
	}

	key, err := storage.AvatarKey(caller.UserID, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build avatar key: %w", err)
	}

	opts := storage.UploadOptions{
		ContentType:  mtype.String(),
		CacheControl: "3600",
		Upsert:       true,
	}
	if err := s.objects.Upload(s.avatarBucket, key, data, opts); err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	url := s.objects.PublicURL(s.avatarBucket, key)
	caller.AvatarURL = &url
	if err := s.store.UpdateMember(caller); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &AvatarResult{
		AvatarURL:    url,
		Notification: notify.Success("Profile updated", "Your avatar has been updated"),
	}, nil
}

func isImage(contentType string) bool {
	switch contentType {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
		return true
	}
	return false
}
