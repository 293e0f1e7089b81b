package gin

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/fwojciec/keepimport"
	"github.com/gin-gonic/gin"
)

// Upload constraints for the import endpoint.
const (
	// ImportFileField is the multipart form field carrying the archive.
	ImportFileField = "takeout"

	// MaxArchiveSize bounds the in-memory archive buffer (200 MiB).
	MaxArchiveSize = 200 << 20
)

// handleImport accepts a Takeout archive upload and imports its notes for
// the user identified by the request header.
func (s *Server) handleImport(c *gin.Context) {
	userID := c.GetHeader(UserIDHeader)
	if userID == "" || len(userID) > keepimport.MaxUserIDLen {
		abortError(c, keepimport.Errorf(keepimport.EUNAUTHORIZED, "missing or invalid %s header", UserIDHeader))
		return
	}

	file, err := c.FormFile(ImportFileField)
	if err != nil {
		abortError(c, keepimport.Errorf(keepimport.EINVALID, "missing %q file upload", ImportFileField))
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".zip") {
		abortError(c, keepimport.Errorf(keepimport.EINVALID, "expected a .zip archive, got %q", file.Filename))
		return
	}
	if file.Size < 1 || file.Size > MaxArchiveSize {
		abortError(c, keepimport.Errorf(keepimport.EINVALID, "archive size must be between 1 byte and %d bytes", MaxArchiveSize))
		return
	}

	f, err := file.Open()
	if err != nil {
		abortError(c, keepimport.Errorf(keepimport.EINTERNAL, "failed to read upload"))
		return
	}
	defer f.Close()

	archive, err := io.ReadAll(f)
	if err != nil {
		abortError(c, keepimport.Errorf(keepimport.EINTERNAL, "failed to read upload"))
		return
	}

	result, err := s.importer.ImportArchive(c.Request.Context(), archive, userID)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
