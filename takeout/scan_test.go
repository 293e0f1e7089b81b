package takeout_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/fwojciec/keepimport"
	"github.com/fwojciec/keepimport/takeout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zipEntry struct {
	name    string
	content string
}

func buildZip(t *testing.T, entries []zipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		fw, err := w.Create(e.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(e.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	t.Run("returns EINVALID for a malformed archive", func(t *testing.T) {
		t.Parallel()

		s := takeout.NewScanner(nil)
		_, err := s.Scan([]byte("definitely not a zip file"))

		require.Error(t, err)
		assert.Equal(t, keepimport.EINVALID, keepimport.ErrorCode(err))
	})

	t.Run("returns no candidates for an archive with no qualifying entries", func(t *testing.T) {
		t.Parallel()

		data := buildZip(t, []zipEntry{
			{"Takeout/Drive/doc.html", "<html></html>"},
			{"Takeout/Keep/photo.png", "binary"},
		})

		s := takeout.NewScanner(nil)
		candidates, err := s.Scan(data)

		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("yields decoded entry text for qualifying paths", func(t *testing.T) {
		t.Parallel()

		data := buildZip(t, []zipEntry{
			{"Takeout/Keep/Note1.html", "<html><body>one</body></html>"},
		})

		s := takeout.NewScanner(nil)
		candidates, err := s.Scan(data)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Takeout/Keep/Note1.html", candidates[0].Path)
		assert.Equal(t, "<html><body>one</body></html>", candidates[0].HTML)
	})

	t.Run("preserves archive enumeration order", func(t *testing.T) {
		t.Parallel()

		data := buildZip(t, []zipEntry{
			{"Takeout/Keep/c.html", "c"},
			{"Takeout/Keep/a.html", "a"},
			{"Takeout/Keep/b.html", "b"},
		})

		s := takeout.NewScanner(nil)
		candidates, err := s.Scan(data)

		require.NoError(t, err)
		require.Len(t, candidates, 3)
		assert.Equal(t, "Takeout/Keep/c.html", candidates[0].Path)
		assert.Equal(t, "Takeout/Keep/a.html", candidates[1].Path)
		assert.Equal(t, "Takeout/Keep/b.html", candidates[2].Path)
	})
}

func TestIsNoteCandidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"typical note path", "Takeout/Keep/Note1.html", true},
		{"case-insensitive match", "TAKEOUT/KEEP/NOTE.HTML", true},
		{"keep anywhere in the path", "archive/my-keep-export/n.html", true},
		{"missing keep substring", "Takeout/Drive/doc.html", false},
		{"wrong extension", "Takeout/Keep/note.json", false},
		{"html not at the end", "Takeout/Keep/note.html.bak", false},
		{"labels subtree excluded", "Takeout/Keep/Labels/work.html", false},
		{"label substring excluded regardless of case", "Takeout/Keep/LABEL.html", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, takeout.IsNoteCandidate(tt.path))
		})
	}
}
