package r2s3

import (
	"context"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/oops"
)

// Uploader is the part of Client the mirror needs.
type Uploader interface {
	PutObject(ctx context.Context, key, contentType string, body []byte) error
}

// Mirror copies finished run files to the bucket under a key prefix. Uploads
// are synchronous; a generate run waits for its archive to land.
type Mirror struct {
	up       Uploader
	prefix   string
	logger   *log.Logger
	attempts int
	backoff  time.Duration
}

func NewMirror(up Uploader, prefix string, logger *log.Logger) *Mirror {
	return &Mirror{
		up:       up,
		prefix:   strings.Trim(strings.ReplaceAll(prefix, "\\", "/"), "/"),
		logger:   logger,
		attempts: 4,
		backoff:  200 * time.Millisecond,
	}
}

// Key is the object key for a local file: prefix/<base name>.
func (m *Mirror) Key(localPath string) string {
	base := filepath.Base(localPath)
	if m.prefix == "" {
		return base
	}
	return path.Join(m.prefix, base)
}

// Upload sends every file in order and stops at the first one that keeps
// failing after retries.
func (m *Mirror) Upload(ctx context.Context, localPaths ...string) error {
	if m == nil || m.up == nil {
		return nil
	}
	for _, p := range localPaths {
		body, err := os.ReadFile(p)
		if err != nil {
			return oops.Wrapf(err, "read %s", p)
		}
		key := m.Key(p)
		if err := m.uploadWithRetry(ctx, key, contentType(p), body); err != nil {
			m.printf("r2 mirror upload failed key=%s local=%s err=%v", key, p, err)
			return err
		}
		m.printf("r2 mirror uploaded key=%s bytes=%d", key, len(body))
	}
	return nil
}

func (m *Mirror) uploadWithRetry(ctx context.Context, key, ct string, body []byte) error {
	var lastErr error
	for attempt := 1; attempt <= m.attempts; attempt++ {
		err := m.up.PutObject(ctx, key, ct, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt == m.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*attempt) * m.backoff):
		}
	}
	return lastErr
}

func contentType(p string) string {
	switch {
	case strings.HasSuffix(p, ".zst"):
		return "application/zstd"
	case strings.HasSuffix(p, ".json"):
		return "application/json"
	}
	return "application/octet-stream"
}

func (m *Mirror) printf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}
