package storage

import (
	"fmt"
	"path/filepath"
	"time"

	"compliance-hub-backend/pkg/utils"
)

// EvidenceKey builds a collision-resistant storage key for an evidence
// file, namespaced under the organisation: <org>/<unixMilli>-<random><ext>.
func EvidenceKey(orgID, fileName string) (string, error) {
	suffix, err := utils.GenerateURLToken(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate key suffix: %w", err)
	}
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%s/%d-%s%s", orgID, time.Now().UnixMilli(), suffix, ext), nil
}

// AvatarKey builds the storage key for a profile avatar, prefixed with the
// owning user. Each upload gets a fresh random suffix; overwrite tolerance
// comes from the upsert flag at upload time, not from key reuse.
func AvatarKey(userID, fileName string) (string, error) {
	suffix, err := utils.GenerateURLToken(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate key suffix: %w", err)
	}
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%s-%s%s", userID, suffix, ext), nil
}
