package mock

import (
	"context"

	"github.com/fwojciec/keepimport"
)

var _ keepimport.ImportService = (*ImportService)(nil)

// ImportService is a mock implementation of keepimport.ImportService.
type ImportService struct {
	ImportArchiveFn func(ctx context.Context, archive []byte, externalUserID string) (*keepimport.ImportResult, error)
}

func (s *ImportService) ImportArchive(ctx context.Context, archive []byte, externalUserID string) (*keepimport.ImportResult, error) {
	return s.ImportArchiveFn(ctx, archive, externalUserID)
}
