package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"rds-cost/internal/errors"
)

// Source retrieves the pricing document of one region
type Source interface {
	// Name identifies the source in logs
	Name() string

	// Fetch returns the full document for region. Failures are fatal for
	// the caller and are never retried here.
	Fetch(ctx context.Context, region string) (*Document, error)
}

// BulkSource downloads the public bulk offer file
type BulkSource struct {
	httpClient  *http.Client
	baseURL     string
	serviceCode string
	logger      *zap.Logger
}

// NewBulkSource creates a bulk offer file source. A zero timeout leaves the
// request unbounded apart from ctx.
func NewBulkSource(baseURL, serviceCode string, timeout time.Duration, logger *zap.Logger) *BulkSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BulkSource{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		serviceCode: serviceCode,
		logger:      logger,
	}
}

// Name implements Source
func (s *BulkSource) Name() string {
	return "bulk"
}

// URL returns the offer file location for region
func (s *BulkSource) URL(region string) string {
	return fmt.Sprintf("%s/offers/v1.0/aws/%s/current/%s/index.json", s.baseURL, s.serviceCode, region)
}

// Fetch implements Source
func (s *BulkSource) Fetch(ctx context.Context, region string) (*Document, error) {
	data, err := s.Download(ctx, region)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	doc, err := Parse(data, region)
	if err != nil {
		return nil, err
	}

	s.logger.Info("pricing document loaded",
		zap.String("region", region),
		zap.String("version", doc.Version),
		zap.Int("products", doc.Len()),
		zap.Duration("parse", time.Since(start)),
	)
	return doc, nil
}

// Download returns the raw offer file for region
func (s *BulkSource) Download(ctx context.Context, region string) ([]byte, error) {
	url := s.URL(region)
	s.logger.Debug("fetching pricing document", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Internal("failed to create request", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Network("failed to fetch pricing document", err).WithContext("url", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.TypeRetrieval, "pricing document request returned %s", resp.Status).
			WithContext("url", url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Network("failed to read pricing document", err).WithContext("url", url)
	}
	return body, nil
}

// FileSource reads a previously downloaded offer file
type FileSource struct {
	path string
}

// NewFileSource creates a file source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Source
func (s *FileSource) Name() string {
	return "file"
}

// Fetch implements Source. The region only labels the document; the file
// is trusted to belong to it.
func (s *FileSource) Fetch(ctx context.Context, region string) (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Retrieval("failed to read pricing document", err).WithContext("path", s.path)
	}
	return ParseReader(bytes.NewReader(data), region)
}

// WriteFile writes data to path atomically via a temp file in the same
// directory followed by a rename.
func WriteFile(data []byte, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".pricing-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	success = true
	return nil
}
