// file: internals/helpers/storage/storage.go
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"path"
	"regexp"
	"strings"
	"time"
)

// DocumentStore is the durable document collaborator: payslip PDFs and
// employee photos go through it. Write returns a stable reference the
// record can keep; Read resolves a reference back to bytes.
type DocumentStore interface {
	Write(ctx context.Context, data []byte, suggestedName, contentType string) (string, error)
	Read(ctx context.Context, ref string) ([]byte, error)
}

// NewFromEnv picks the OSS backend when OSS_* is configured, otherwise
// falls back to local disk (dev and tests).
func NewFromEnv() DocumentStore {
	if s, err := NewOSSFromEnv(); err == nil {
		log.Println("✅ document store: OSS")
		return s
	} else if !strings.Contains(err.Error(), "not configured") {
		log.Printf("⚠️ OSS init failed, falling back to local disk: %v", err)
	}
	return NewLocalStoreFromEnv()
}

var nonSlug = regexp.MustCompile(`[^a-z0-9._-]+`)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func randHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// buildObjectKey produces a time-qualified key so repeated writes for
// the same logical document never clobber each other.
func buildObjectKey(dir, suggestedName string) string {
	ext := path.Ext(suggestedName)
	base := slugify(strings.TrimSuffix(suggestedName, ext))
	if base == "" {
		base = "file"
	}
	name := fmt.Sprintf("%s_%d_%s%s", base, time.Now().Unix(), randHex(4), strings.ToLower(ext))
	if dir == "" {
		return name
	}
	return path.Join(dir, name)
}
