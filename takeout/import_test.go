package takeout_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/keepimport"
	"github.com/fwojciec/keepimport/goquery"
	"github.com/fwojciec/keepimport/mock"
	"github.com/fwojciec/keepimport/takeout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImporter(created *[]*keepimport.Note) *takeout.Importer {
	return &takeout.Importer{
		Notes: &mock.NoteService{
			CreateNoteFn: func(_ context.Context, note *keepimport.Note) error {
				*created = append(*created, note)
				return nil
			},
		},
		Users: &mock.UserService{
			FindOrCreateUserFn: func(_ context.Context, externalID string) (*keepimport.User, error) {
				return &keepimport.User{ID: "user-1", ExternalID: externalID}, nil
			},
		},
	}
}

func staticScanner(candidates ...keepimport.Candidate) *mock.ArchiveScanner {
	return &mock.ArchiveScanner{
		ScanFn: func([]byte) ([]keepimport.Candidate, error) {
			return candidates, nil
		},
	}
}

func TestImporter_ImportArchive(t *testing.T) {
	t.Parallel()

	t.Run("persists extracted notes in candidate order", func(t *testing.T) {
		t.Parallel()

		var created []*keepimport.Note
		imp := newTestImporter(&created)
		imp.Scanner = staticScanner(
			keepimport.Candidate{Path: "Keep/a.html", HTML: "first"},
			keepimport.Candidate{Path: "Keep/b.html", HTML: "second"},
		)
		imp.Extractor = &mock.Extractor{
			ExtractFn: func(html string) (*keepimport.ExtractedNote, error) {
				return &keepimport.ExtractedNote{Title: html, Content: html, Source: keepimport.SourceMarkup}, nil
			},
		}

		result, err := imp.ImportArchive(context.Background(), []byte("zip"), "ext-1")

		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		require.Len(t, created, 2)
		assert.Equal(t, "first", created[0].Content)
		assert.Equal(t, "second", created[1].Content)
		assert.Equal(t, "user-1", created[0].UserID)
	})

	t.Run("propagates a malformed archive error", func(t *testing.T) {
		t.Parallel()

		var created []*keepimport.Note
		imp := newTestImporter(&created)
		imp.Scanner = &mock.ArchiveScanner{
			ScanFn: func([]byte) ([]keepimport.Candidate, error) {
				return nil, keepimport.Errorf(keepimport.EINVALID, "malformed archive")
			},
		}
		imp.Extractor = goquery.NewExtractor()

		_, err := imp.ImportArchive(context.Background(), []byte("junk"), "ext-1")

		require.Error(t, err)
		assert.Equal(t, keepimport.EINVALID, keepimport.ErrorCode(err))
		assert.Empty(t, created)
	})

	t.Run("rejects archives yielding zero notes", func(t *testing.T) {
		t.Parallel()

		var created []*keepimport.Note
		imp := newTestImporter(&created)
		imp.Scanner = staticScanner(keepimport.Candidate{Path: "Keep/empty.html", HTML: "x"})
		imp.Extractor = &mock.Extractor{
			ExtractFn: func(string) (*keepimport.ExtractedNote, error) { return nil, nil },
		}

		_, err := imp.ImportArchive(context.Background(), []byte("zip"), "ext-1")

		require.Error(t, err)
		assert.Equal(t, keepimport.EINVALID, keepimport.ErrorCode(err))
		assert.Empty(t, created)
	})

	t.Run("rejects archives exceeding the note ceiling before persisting", func(t *testing.T) {
		t.Parallel()

		var created []*keepimport.Note
		imp := newTestImporter(&created)
		imp.MaxNotes = 1
		imp.Scanner = staticScanner(
			keepimport.Candidate{Path: "Keep/a.html", HTML: "a"},
			keepimport.Candidate{Path: "Keep/b.html", HTML: "b"},
		)
		imp.Extractor = &mock.Extractor{
			ExtractFn: func(html string) (*keepimport.ExtractedNote, error) {
				return &keepimport.ExtractedNote{Content: html, Source: keepimport.SourceMarkup}, nil
			},
		}

		_, err := imp.ImportArchive(context.Background(), []byte("zip"), "ext-1")

		require.Error(t, err)
		assert.Equal(t, keepimport.ETOOLARGE, keepimport.ErrorCode(err))
		assert.Empty(t, created)
	})

	t.Run("skips entries the extractor cannot parse", func(t *testing.T) {
		t.Parallel()

		var created []*keepimport.Note
		imp := newTestImporter(&created)
		imp.Scanner = staticScanner(
			keepimport.Candidate{Path: "Keep/bad.html", HTML: "bad"},
			keepimport.Candidate{Path: "Keep/good.html", HTML: "good"},
		)
		imp.Extractor = &mock.Extractor{
			ExtractFn: func(html string) (*keepimport.ExtractedNote, error) {
				if html == "bad" {
					return nil, keepimport.Errorf(keepimport.EINVALID, "failed to parse HTML")
				}
				return &keepimport.ExtractedNote{Content: html, Source: keepimport.SourceMarkup}, nil
			},
		}

		result, err := imp.ImportArchive(context.Background(), []byte("zip"), "ext-1")

		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		require.Len(t, created, 1)
		assert.Equal(t, "good", created[0].Content)
	})

	t.Run("normalizes structured content and drops notes left empty", func(t *testing.T) {
		t.Parallel()

		var created []*keepimport.Note
		imp := newTestImporter(&created)
		imp.Scanner = staticScanner(
			keepimport.Candidate{Path: "Keep/messy.html", HTML: "messy"},
			keepimport.Candidate{Path: "Keep/blank.html", HTML: "blank"},
		)
		imp.Extractor = &mock.Extractor{
			ExtractFn: func(html string) (*keepimport.ExtractedNote, error) {
				if html == "blank" {
					return &keepimport.ExtractedNote{Content: " \r\n ", Source: keepimport.SourceStructured}, nil
				}
				return &keepimport.ExtractedNote{Content: "a\r\n\r\n\r\nb", Source: keepimport.SourceStructured}, nil
			},
		}

		result, err := imp.ImportArchive(context.Background(), []byte("zip"), "ext-1")

		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		require.Len(t, created, 1)
		assert.Equal(t, "a\n\nb", created[0].Content)
	})

	t.Run("caps fields and substitutes defaults without mutating the extraction", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
		extracted := &keepimport.ExtractedNote{
			Title:   strings.Repeat("t", 300),
			Content: strings.Repeat("c", keepimport.MaxContentLen+100),
			Source:  keepimport.SourceMarkup,
		}

		var created []*keepimport.Note
		imp := newTestImporter(&created)
		imp.Now = func() time.Time { return now }
		imp.Scanner = staticScanner(keepimport.Candidate{Path: "Keep/a.html", HTML: "a"})
		imp.Extractor = &mock.Extractor{
			ExtractFn: func(string) (*keepimport.ExtractedNote, error) { return extracted, nil },
		}

		_, err := imp.ImportArchive(context.Background(), []byte("zip"), "ext-1")
		require.NoError(t, err)

		require.Len(t, created, 1)
		assert.Len(t, created[0].Title, keepimport.MaxTitleLen)
		assert.Len(t, created[0].Content, keepimport.MaxContentLen)
		assert.Equal(t, now, created[0].CreatedAt)

		// The extraction itself stays untouched.
		assert.Len(t, extracted.Title, 300)
		assert.True(t, extracted.CreatedAt.IsZero())
	})

	t.Run("substitutes the default title when absent", func(t *testing.T) {
		t.Parallel()

		var created []*keepimport.Note
		imp := newTestImporter(&created)
		imp.Scanner = staticScanner(keepimport.Candidate{Path: "Keep/a.html", HTML: "a"})
		imp.Extractor = &mock.Extractor{
			ExtractFn: func(string) (*keepimport.ExtractedNote, error) {
				return &keepimport.ExtractedNote{Content: "body", Source: keepimport.SourceMarkup}, nil
			},
		}

		_, err := imp.ImportArchive(context.Background(), []byte("zip"), "ext-1")
		require.NoError(t, err)

		require.Len(t, created, 1)
		assert.Equal(t, keepimport.DefaultTitle, created[0].Title)
	})

	t.Run("keeps the recovered creation timestamp", func(t *testing.T) {
		t.Parallel()

		recovered := time.Date(2021, time.May, 1, 10, 30, 0, 0, time.UTC)

		var created []*keepimport.Note
		imp := newTestImporter(&created)
		imp.Scanner = staticScanner(keepimport.Candidate{Path: "Keep/a.html", HTML: "a"})
		imp.Extractor = &mock.Extractor{
			ExtractFn: func(string) (*keepimport.ExtractedNote, error) {
				return &keepimport.ExtractedNote{Content: "body", CreatedAt: recovered, Source: keepimport.SourceStructured}, nil
			},
		}

		_, err := imp.ImportArchive(context.Background(), []byte("zip"), "ext-1")
		require.NoError(t, err)

		require.Len(t, created, 1)
		assert.Equal(t, recovered, created[0].CreatedAt)
	})
}

// TestImporter_EndToEnd exercises the real scanner and extractor against an
// in-memory archive, with storage mocked out.
func TestImporter_EndToEnd(t *testing.T) {
	t.Parallel()

	data := buildZip(t, []zipEntry{
		{"Takeout/Keep/Note1.html", `<html><head><script type="application/ld+json">{"name":"T","text":"Hello"}</script></head><body></body></html>`},
		{"Takeout/Keep/Labels/x.html", `<html><body>label page</body></html>`},
	})

	var created []*keepimport.Note
	imp := newTestImporter(&created)
	imp.Scanner = takeout.NewScanner(nil)
	imp.Extractor = goquery.NewExtractor()

	result, err := imp.ImportArchive(context.Background(), data, "ext-1")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, created, 1)
	assert.Equal(t, "T", created[0].Title)
	assert.Equal(t, "Hello", created[0].Content)
	assert.Equal(t, string(keepimport.SourceStructured), created[0].Source)
}
