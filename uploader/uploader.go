package uploader

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/opencatalog/excel-ingest/storage"
)

// ObjectStore is the slice of the storage client the sync needs.
type ObjectStore interface {
	Head(ctx context.Context, bucket, key string) (storage.Info, error)
	Upload(ctx context.Context, bucket, key, path string) error
}

// Syncer pushes the spreadsheets of a local directory to a bucket prefix,
// skipping files whose remote copy already has the same content hash.
type Syncer struct {
	Store  ObjectStore
	Bucket string
	Prefix string
	Logger log.Logger
}

// Summary counts the outcome of one sync run.
type Summary struct {
	Uploaded int
	Skipped  int
	Failed   int
}

// Sync walks dir non-recursively and uploads every new or changed
// spreadsheet. Non-spreadsheet files count as skipped. Per-file failures are
// logged and counted but do not abort the batch.
func (s *Syncer) Sync(ctx context.Context, dir string) (Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Summary{}, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var sum Summary
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isSpreadsheet(name) {
			level.Warn(s.Logger).Log("msg", "skipping non-spreadsheet file", "file", name)
			sum.Skipped++
			continue
		}
		if err := s.syncFile(ctx, filepath.Join(dir, name)); err != nil {
			level.Error(s.Logger).Log("msg", "upload failed", "file", name, "err", err)
			sum.Failed++
			continue
		}
		sum.Uploaded++
	}
	return sum, nil
}

// syncFile uploads one file unless the remote object already carries the
// same ETag. For non-multipart uploads the S3 ETag is the MD5 of the object
// bytes, which makes it a usable change-detection fingerprint.
func (s *Syncer) syncFile(ctx context.Context, path string) error {
	key := s.Prefix + filepath.Base(path)

	info, err := s.Store.Head(ctx, s.Bucket, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		level.Info(s.Logger).Log("msg", "uploading new file", "key", key)
		return s.Store.Upload(ctx, s.Bucket, key, path)
	case err != nil:
		return err
	}

	local, err := ContentETag(path)
	if err != nil {
		return err
	}
	if info.ETag == local {
		level.Info(s.Logger).Log("msg", "remote copy identical, skipping", "key", key)
		return nil
	}
	level.Info(s.Logger).Log("msg", "content changed, re-uploading", "key", key)
	return s.Store.Upload(ctx, s.Bucket, key, path)
}

// ContentETag computes the MD5 hash of the file bytes in hex, matching the
// ETag S3 assigns to non-multipart objects.
func ContentETag(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func isSpreadsheet(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}
