package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"finance-tracker/internal/config"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

const (
	DefaultReceiptExtension = "jpg"
	ReceiptURLPrefix        = "/uploads/"
)

var (
	ErrFileTooLarge = errors.New("file exceeds the maximum upload size")
	ErrEmptyFile    = errors.New("file is empty")

	extensionRegex = regexp.MustCompile(`^[a-z0-9]{1,10}$`)
)

// UploadService writes receipt files to the local upload directory
type UploadService struct {
	dir          string
	maxBytes     int64
	auditService AuditServiceInterface
	auditLogger  AuditLoggerInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

func NewUploadService(
	cfg *config.UploadConfig,
	auditService AuditServiceInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) UploadServiceInterface {
	return &UploadService{
		dir:          cfg.Dir,
		maxBytes:     cfg.MaxBytes,
		auditService: auditService,
		auditLogger:  auditLogger,
		metrics:      metrics,
		logger:       logger,
	}
}

// SaveReceipt stores content under a random name that keeps the client's
// file extension and returns the public URL of the stored file.
func (s *UploadService) SaveReceipt(ctx context.Context, ownerID uuid.UUID, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.New().String() + "." + receiptExtension(filename)
	path := filepath.Join(s.dir, name)

	size, err := s.write(path, content)
	if err != nil {
		if removeErr := os.Remove(path); removeErr != nil && !os.IsNotExist(removeErr) {
			s.logger.WarnContext(ctx, "failed to remove partial upload", "path", path, "error", removeErr)
		}
		return "", err
	}

	s.metrics.IncrementCounter(MetricReceiptUploaded, nil)
	s.metrics.RecordGauge(MetricReceiptSize, float64(size), nil)
	s.auditLogger.LogReceiptUploaded(ctx, ownerID, name, size)
	if err := s.auditService.LogResourceEvent(ctx, ownerID, models.AuditActionReceiptUpload, "receipt", name,
		models.JSONBMap{"size_bytes": size}); err != nil {
		s.logger.WarnContext(ctx, "failed to persist upload audit log", "error", err, "file", name)
	}

	return ReceiptURLPrefix + name, nil
}

func (s *UploadService) write(path string, content io.Reader) (int64, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create upload file: %w", err)
	}

	reader := content
	if s.maxBytes > 0 {
		reader = io.LimitReader(content, s.maxBytes+1)
	}

	size, copyErr := io.Copy(file, reader)
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		return 0, fmt.Errorf("failed to write upload file: %w", copyErr)
	case closeErr != nil:
		return 0, fmt.Errorf("failed to close upload file: %w", closeErr)
	case s.maxBytes > 0 && size > s.maxBytes:
		return 0, ErrFileTooLarge
	case size == 0:
		return 0, ErrEmptyFile
	}

	return size, nil
}

// receiptExtension returns the text after the last dot of filename, or
// DefaultReceiptExtension when there is none or it is not a plain token.
func receiptExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return DefaultReceiptExtension
	}

	ext := strings.ToLower(filename[idx+1:])
	if !extensionRegex.MatchString(ext) {
		return DefaultReceiptExtension
	}
	return ext
}
