package artifacts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnomonworks/yantra/types"
)

func sha256Of(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}

func testArtifact(url, checksum string) *types.ExportArtifact {
	return &types.ExportArtifact{
		Format:    types.ExportDXF,
		URL:       url,
		Checksum:  checksum,
		ExpiresAt: time.Now().Add(time.Hour),
		Filename:  "samrat.dxf",
	}
}

func TestFetchHTTP(t *testing.T) {
	content := []byte("dxf geometry bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(content)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out.dxf")
	f := NewFetcher(S3Options{})

	err := f.Fetch(context.Background(), testArtifact(srv.URL, sha256Of(content)), dest)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("downloaded %q, want %q", got, content)
	}
}

func TestFetchChecksumMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("tampered bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out.dxf")
	f := NewFetcher(S3Options{})

	err := f.Fetch(context.Background(), testArtifact(srv.URL, sha256Of([]byte("original bytes"))), dest)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("Fetch = %v, want ErrChecksumMismatch", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("corrupt download left on disk")
	}
}

func TestFetchPendingChecksumAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out.dxf")
	f := NewFetcher(S3Options{})

	if err := f.Fetch(context.Background(), testArtifact(srv.URL, "pending"), dest); err != nil {
		t.Fatalf("Fetch with pending checksum: %v", err)
	}
}

func TestFetchExpiredLink(t *testing.T) {
	f := NewFetcher(S3Options{})
	art := testArtifact("https://exports.example.net/a.dxf", "")
	art.ExpiresAt = time.Now().Add(-time.Minute)

	err := f.Fetch(context.Background(), art, filepath.Join(t.TempDir(), "out.dxf"))
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("Fetch = %v, want ErrExpired", err)
	}
}

func TestFetchHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(S3Options{})
	err := f.Fetch(context.Background(), testArtifact(srv.URL, ""), filepath.Join(t.TempDir(), "out.dxf"))
	if err == nil {
		t.Fatal("Fetch succeeded against 404")
	}
}

func TestFetchUnsupportedScheme(t *testing.T) {
	f := NewFetcher(S3Options{})
	err := f.Fetch(context.Background(), testArtifact("ftp://example.net/a.dxf", ""), filepath.Join(t.TempDir(), "out.dxf"))
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Fatalf("Fetch = %v, want ErrUnsupportedScheme", err)
	}
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("payload")
	sum := sha256.Sum256(data)

	tests := []struct {
		name      string
		published string
		wantErr   bool
	}{
		{"matching", sha256Of(data), false},
		{"empty accepted", "", false},
		{"pending accepted", "pending", false},
		{"unknown algorithm accepted", "md5:abcdef", false},
		{"mismatch", "sha256:" + hex.EncodeToString(make([]byte, 32)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifyChecksum(tt.published, sum[:])
			if (err != nil) != tt.wantErr {
				t.Errorf("verifyChecksum(%q) error = %v, wantErr %v", tt.published, err, tt.wantErr)
			}
		})
	}
}
