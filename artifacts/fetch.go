// Package artifacts downloads export artifacts from their time-limited
// links and verifies the checksum the compute service published.
//
// Links are opaque: the session never refreshes or re-signs them. Two
// schemes are supported: http(s) links served by the compute service, and
// s3:// links into the service's object store (R2/MinIO compatible).
package artifacts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/gnomonworks/yantra/iox"
	"github.com/gnomonworks/yantra/types"
)

// Sentinel errors for fetch failures.
var (
	// ErrExpired indicates the artifact link has passed its expiry.
	ErrExpired = errors.New("artifact link expired")

	// ErrChecksumMismatch indicates downloaded bytes do not match the
	// service-published checksum.
	ErrChecksumMismatch = errors.New("artifact checksum mismatch")

	// ErrUnsupportedScheme indicates a URL scheme the fetcher cannot handle.
	ErrUnsupportedScheme = errors.New("unsupported artifact URL scheme")
)

// S3Options configures access to s3:// artifact links.
type S3Options struct {
	// Region is the region for the default AWS credential chain (optional).
	Region string
	// Endpoint is a custom S3 endpoint for S3-compatible providers
	// (Cloudflare R2, MinIO). Empty uses the default AWS endpoint.
	Endpoint string
	// UsePathStyle forces path-style addressing, required by most
	// S3-compatible providers.
	UsePathStyle bool
}

// Fetcher downloads artifacts to local files.
type Fetcher struct {
	httpClient *http.Client
	s3Options  S3Options
	// now is injectable for expiry tests.
	now func() time.Time
}

// NewFetcher creates a Fetcher. A zero S3Options uses the AWS defaults.
func NewFetcher(s3opts S3Options) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		s3Options:  s3opts,
		now:        time.Now,
	}
}

// Fetch downloads the artifact to destPath, refusing expired links and
// verifying the published sha256 checksum when one is present.
func (f *Fetcher) Fetch(ctx context.Context, artifact *types.ExportArtifact, destPath string) error {
	if artifact.Expired(f.now()) {
		return fmt.Errorf("%w: expired at %s", ErrExpired, artifact.ExpiresAt.Format(time.RFC3339))
	}

	body, err := f.open(ctx, artifact.URL)
	if err != nil {
		return err
	}
	defer iox.DiscardClose(body)

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %q: %w", destPath, err)
	}

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, hasher), body); err != nil {
		_ = out.Close()
		_ = os.Remove(destPath)
		return fmt.Errorf("download %q: %w", artifact.Filename, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(destPath)
		return fmt.Errorf("close %q: %w", destPath, err)
	}

	if err := verifyChecksum(artifact.Checksum, hasher.Sum(nil)); err != nil {
		_ = os.Remove(destPath)
		return err
	}
	return nil
}

// open returns a reader over the artifact bytes for the URL's scheme.
func (f *Fetcher) open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse artifact URL: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		return f.openHTTP(ctx, rawURL)
	case "s3":
		return f.openS3(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func (f *Fetcher) openHTTP(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch artifact: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		iox.DiscardClose(resp.Body)
		return nil, fmt.Errorf("fetch artifact: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (f *Fetcher) openS3(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("malformed s3 URL: bucket %q key %q", bucket, key)
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if f.s3Options.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(f.s3Options.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if f.s3Options.Endpoint != "" {
		endpoint := f.s3Options.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) { o.BaseEndpoint = &endpoint })
	}
	if f.s3Options.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) { o.UsePathStyle = true })
	}
	client := s3.NewFromConfig(awsCfg, s3Opts...)

	obj, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	return obj.Body, nil
}

// verifyChecksum compares the published "sha256:<hex>" checksum against the
// computed digest. Absent or placeholder checksums are accepted; the
// service omits them while exports are still being produced.
func verifyChecksum(published string, computed []byte) error {
	if published == "" || published == "pending" {
		return nil
	}
	want, ok := strings.CutPrefix(published, "sha256:")
	if !ok {
		// Unknown checksum algorithm; nothing to verify against.
		return nil
	}
	got := hex.EncodeToString(computed)
	if !strings.EqualFold(got, want) {
		return fmt.Errorf("%w: got sha256:%s, want %s", ErrChecksumMismatch, got, published)
	}
	return nil
}
