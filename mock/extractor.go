package mock

import "github.com/fwojciec/keepimport"

var _ keepimport.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of keepimport.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*keepimport.ExtractedNote, error)
}

func (e *Extractor) Extract(html string) (*keepimport.ExtractedNote, error) {
	return e.ExtractFn(html)
}
