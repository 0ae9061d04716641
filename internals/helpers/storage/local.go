package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"workdesk_backend/internals/configs"
)

// LocalStore writes documents under a base directory. The returned
// reference is the file path itself.
type LocalStore struct {
	Dir string
}

func NewLocalStoreFromEnv() *LocalStore {
	dir := configs.GetEnv("DOCUMENT_DIR", "./storage/documents")
	return &LocalStore{Dir: dir}
}

func (s *LocalStore) Write(ctx context.Context, data []byte, suggestedName, contentType string) (string, error) {
	key := buildObjectKey("", suggestedName)
	full := filepath.Join(s.Dir, key)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return full, nil
}

func (s *LocalStore) Read(ctx context.Context, ref string) ([]byte, error) {
	clean := filepath.Clean(ref)
	base := filepath.Clean(s.Dir)
	if !strings.HasPrefix(clean, base+string(filepath.Separator)) && clean != base {
		return nil, errors.New("reference outside document dir")
	}
	return os.ReadFile(clean)
}
