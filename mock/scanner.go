package mock

import "github.com/fwojciec/keepimport"

var _ keepimport.ArchiveScanner = (*ArchiveScanner)(nil)

// ArchiveScanner is a mock implementation of keepimport.ArchiveScanner.
type ArchiveScanner struct {
	ScanFn func(data []byte) ([]keepimport.Candidate, error)
}

func (s *ArchiveScanner) Scan(data []byte) ([]keepimport.Candidate, error) {
	return s.ScanFn(data)
}
