package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// newMockClient returns a Client backed by an in-memory fake HTTP transport
// covering the Head/Get/Put subset the package uses. ETags are the MD5 of
// the stored bytes, matching S3's behavior for non-multipart uploads.
func newMockClient(t *testing.T, rt *mockRoundTripper) *Client {
	t.Helper()
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	api := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
	})
	return &Client{api: api}
}

type mockRoundTripper struct {
	state map[string][]byte
}

func etagOf(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	switch req.Method {
	case http.MethodHead:
		if body, ok := m.state[key]; ok {
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{
				"Content-Length": {fmt.Sprintf("%d", len(body))},
				"ETag":           {`"` + etagOf(body) + `"`},
				"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
			}}, nil
		}
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	case http.MethodGet:
		if body, ok := m.state[key]; ok {
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(body)), Header: http.Header{
				"Content-Length": {fmt.Sprintf("%d", len(body))},
				"ETag":           {`"` + etagOf(body) + `"`},
				"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
			}}, nil
		}
		notFound := `<?xml version="1.0"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader(notFound)), Header: http.Header{"Content-Type": {"application/xml"}}}, nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if dec, ok := decodeChunked(body); ok {
			body = dec
		}
		if m.state == nil {
			m.state = map[string][]byte{}
		}
		m.state[key] = body
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{"ETag": {`"` + etagOf(body) + `"`}}}, nil
	}
	return &http.Response{StatusCode: http.StatusNotImplemented, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
}

// decodeChunked unwraps a minimal single-chunk aws-chunked payload:
// <hex-size>\r\n<body>\r\n0\r\n...
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 {
		return nil, false
	}
	var size int64
	if _, err := fmt.Sscanf(parts[0], "%x", &size); err != nil {
		return nil, false
	}
	if int64(len(parts[1])) != size || parts[2] != "0" {
		return nil, false
	}
	return []byte(parts[1]), true
}

func TestHeadMissingObject(t *testing.T) {
	client := newMockClient(t, &mockRoundTripper{state: map[string][]byte{}})

	_, err := client.Head(context.Background(), "mock-bucket", "raw/absent.xlsx")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDownloadMissingObject(t *testing.T) {
	client := newMockClient(t, &mockRoundTripper{state: map[string][]byte{}})

	dest := filepath.Join(t.TempDir(), "out.xlsx")
	err := client.Download(context.Background(), "mock-bucket", "raw/absent.xlsx", dest)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDownloadWritesFile(t *testing.T) {
	content := []byte("workbook bytes")
	client := newMockClient(t, &mockRoundTripper{state: map[string][]byte{"raw/a.xlsx": content}})

	dest := filepath.Join(t.TempDir(), "a.xlsx")
	if err := client.Download(context.Background(), "mock-bucket", "raw/a.xlsx", dest); err != nil {
		t.Fatalf("download: %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read download: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("content mismatch: %q", got)
	}
}

func TestHeadReportsTrimmedETag(t *testing.T) {
	content := []byte("workbook bytes")
	client := newMockClient(t, &mockRoundTripper{state: map[string][]byte{"raw/a.xlsx": content}})

	info, err := client.Head(context.Background(), "mock-bucket", "raw/a.xlsx")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if info.ETag != etagOf(content) {
		t.Errorf("etag: want %s, got %s", etagOf(content), info.ETag)
	}
	if strings.Contains(info.ETag, `"`) {
		t.Errorf("etag should have quotes stripped: %q", info.ETag)
	}
	if info.Size != int64(len(content)) {
		t.Errorf("size: want %d, got %d", len(content), info.Size)
	}
}

func TestUploadRoundTrip(t *testing.T) {
	rt := &mockRoundTripper{state: map[string][]byte{}}
	client := newMockClient(t, rt)

	src := filepath.Join(t.TempDir(), "a.xlsx")
	content := []byte("fresh workbook")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := client.Upload(context.Background(), "mock-bucket", "raw/a.xlsx", src); err != nil {
		t.Fatalf("upload: %v", err)
	}
	info, err := client.Head(context.Background(), "mock-bucket", "raw/a.xlsx")
	if err != nil {
		t.Fatalf("head after upload: %v", err)
	}
	if info.ETag != etagOf(content) {
		t.Errorf("etag after upload: want %s, got %s", etagOf(content), info.ETag)
	}
}

func TestUploadMissingSource(t *testing.T) {
	client := newMockClient(t, &mockRoundTripper{state: map[string][]byte{}})

	err := client.Upload(context.Background(), "mock-bucket", "raw/a.xlsx", filepath.Join(t.TempDir(), "absent.xlsx"))
	if err == nil {
		t.Fatal("expected error for missing source file")
	}
}
