package printing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// PDFDownloader delivers a generated PDF to the user. The file-based
// implementation writes into a download directory; a frontend-attached
// implementation would stream the bytes to the browser instead.
type PDFDownloader interface {
	// Download saves the PDF under the given filename and returns the
	// path or URL it ended up at.
	Download(ctx context.Context, filename string, data []byte) (string, error)
}

// FileDownloader writes PDFs to a directory on the local file system
type FileDownloader struct {
	basePath string
	logger   *zap.Logger
}

// NewFileDownloader creates a file system based downloader rooted at basePath
func NewFileDownloader(basePath string, logger *zap.Logger) (*FileDownloader, error) {
	if basePath == "" {
		basePath = "/data/labels"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory %s: %w", basePath, err)
	}

	return &FileDownloader{basePath: basePath, logger: logger}, nil
}

// Download writes the PDF to disk and returns its full path
func (d *FileDownloader) Download(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no PDF data to download")
	}

	// Keep the filename inside the base directory.
	path := filepath.Join(d.basePath, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write PDF %s: %w", path, err)
	}

	d.logger.Info("PDF downloaded",
		zap.String("path", path),
		zap.Int("size", len(data)))

	return path, nil
}
