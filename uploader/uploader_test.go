package uploader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"

	"github.com/opencatalog/excel-ingest/storage"
)

type fakeStore struct {
	remote    map[string]string // key -> etag
	headErr   error
	uploadErr error
	uploads   []string
}

func (f *fakeStore) Head(_ context.Context, _, key string) (storage.Info, error) {
	if f.headErr != nil {
		return storage.Info{}, f.headErr
	}
	etag, ok := f.remote[key]
	if !ok {
		return storage.Info{}, storage.ErrNotFound
	}
	return storage.Info{Key: key, ETag: etag}, nil
}

func (f *fakeStore) Upload(_ context.Context, _, key, path string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	etag, err := ContentETag(path)
	if err != nil {
		return err
	}
	if f.remote == nil {
		f.remote = map[string]string{}
	}
	f.remote[key] = etag
	f.uploads = append(f.uploads, key)
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newSyncer(store *fakeStore) *Syncer {
	return &Syncer{Store: store, Bucket: "landing", Prefix: "raw/", Logger: log.NewNopLogger()}
}

func TestSyncUploadsNewFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xlsx", "workbook-a")
	store := &fakeStore{}

	sum, err := newSyncer(store).Sync(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Uploaded != 1 || sum.Skipped != 0 || sum.Failed != 0 {
		t.Errorf("summary: %+v", sum)
	}
	if len(store.uploads) != 1 || store.uploads[0] != "raw/a.xlsx" {
		t.Errorf("uploads: %v", store.uploads)
	}
}

func TestSyncSkipsIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.xlsx", "workbook-a")
	etag, err := ContentETag(path)
	if err != nil {
		t.Fatalf("etag: %v", err)
	}
	store := &fakeStore{remote: map[string]string{"raw/a.xlsx": etag}}

	sum, err := newSyncer(store).Sync(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Uploaded != 1 || sum.Failed != 0 {
		t.Errorf("summary: %+v", sum)
	}
	if len(store.uploads) != 0 {
		t.Errorf("no bytes should transfer for identical content, got %v", store.uploads)
	}
}

func TestSyncOverwritesChangedContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xlsx", "workbook-a-v2")
	store := &fakeStore{remote: map[string]string{"raw/a.xlsx": "stale-etag"}}

	sum, err := newSyncer(store).Sync(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Uploaded != 1 {
		t.Errorf("summary: %+v", sum)
	}
	if len(store.uploads) != 1 {
		t.Errorf("changed content should re-upload, got %v", store.uploads)
	}
}

func TestSyncSkipsNonSpreadsheets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "plain text")
	writeFile(t, dir, "data.csv", "a,b")
	writeFile(t, dir, "legacy.XLS", "old workbook")
	store := &fakeStore{}

	sum, err := newSyncer(store).Sync(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Skipped != 2 {
		t.Errorf("skipped: want 2, got %d", sum.Skipped)
	}
	if sum.Uploaded != 1 {
		t.Errorf("uploaded: want 1 (the .XLS), got %d", sum.Uploaded)
	}
}

func TestSyncCountsFailuresAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xlsx", "workbook-a")
	writeFile(t, dir, "b.xlsx", "workbook-b")
	store := &fakeStore{uploadErr: errors.New("access denied")}

	sum, err := newSyncer(store).Sync(context.Background(), dir)
	if err != nil {
		t.Fatalf("batch should tolerate per-file failures, got: %v", err)
	}
	if sum.Failed != 2 || sum.Uploaded != 0 {
		t.Errorf("summary: %+v", sum)
	}
}

func TestSyncHeadFailureCountsAsFailed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xlsx", "workbook-a")
	store := &fakeStore{headErr: errors.New("throttled")}

	sum, err := newSyncer(store).Sync(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Failed != 1 {
		t.Errorf("summary: %+v", sum)
	}
}

func TestSyncMissingDirectory(t *testing.T) {
	_, err := newSyncer(&fakeStore{}).Sync(context.Background(), filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestContentETag(t *testing.T) {
	path := writeFile(t, t.TempDir(), "f.bin", "hello world")

	etag, err := ContentETag(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// md5("hello world")
	if etag != "5eb63bbbe01eeed093cb22bb8f5acdc3" {
		t.Errorf("etag: got %s", etag)
	}
}
