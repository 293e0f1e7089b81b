// Package slog provides logging decorators for keepimport services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/keepimport"
)

// Ensure LoggingImportService implements keepimport.ImportService.
var _ keepimport.ImportService = (*LoggingImportService)(nil)

// LoggingImportService wraps an ImportService with per-import logging.
type LoggingImportService struct {
	next   keepimport.ImportService
	logger *slog.Logger
}

// NewLoggingImportService creates a new LoggingImportService.
func NewLoggingImportService(next keepimport.ImportService, logger *slog.Logger) *LoggingImportService {
	return &LoggingImportService{next: next, logger: logger}
}

// ImportArchive delegates to the wrapped service and logs the outcome.
func (s *LoggingImportService) ImportArchive(ctx context.Context, archive []byte, externalUserID string) (*keepimport.ImportResult, error) {
	begin := time.Now()
	result, err := s.next.ImportArchive(ctx, archive, externalUserID)
	if err != nil {
		s.logger.Error("archive import failed",
			"user", externalUserID,
			"bytes", len(archive),
			"code", keepimport.ErrorCode(err),
			"error", keepimport.ErrorMessage(err),
			"duration", time.Since(begin),
		)
		return nil, err
	}
	s.logger.Info("archive import",
		"user", externalUserID,
		"bytes", len(archive),
		"imported", result.Imported,
		"duration", time.Since(begin),
	)
	return result, nil
}
