// Package goquery provides a goquery-based implementation of
// keepimport.Extractor for Keep Takeout note documents.
package goquery

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/keepimport"
)

// Ensure Extractor implements keepimport.Extractor at compile time.
var _ keepimport.Extractor = (*Extractor)(nil)

// Checklist item markers used when rendering structured checklist notes.
const (
	checkedPrefix   = "☑ "
	uncheckedPrefix = "☐ "
)

// dateLayouts are tried in order when recovering a timestamp from the
// structured-data block. Takeout emits RFC3339; the rest tolerate older
// export variants.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"Jan 2, 2006, 3:04:05 PM",
}

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Extractor produces at most one note from a single Keep note document.
//
// Two mutually exclusive paths are tried in order: an embedded JSON
// linked-data block (higher fidelity: distinguishes checklists, carries
// real timestamps), then heuristic markup scraping as a lossy last resort
// for documents that embed no structured data. Partial results from the
// two paths are never merged.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses a document and returns its note, or (nil, nil) when the
// document yields no usable content via either path.
func (e *Extractor) Extract(html string) (*keepimport.ExtractedNote, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, keepimport.Errorf(keepimport.EINVALID, "failed to parse HTML: %v", err)
	}

	if obj, ok := structuredPayload(doc); ok {
		return extractStructured(obj), nil
	}
	return extractMarkup(doc), nil
}

// structuredPayload locates the document's linked-data block and decodes it
// into a working object. A payload that is a JSON array contributes its
// first element. Returns false when no block exists or its payload does not
// decode to an object, cueing the markup fallback.
func structuredPayload(doc *goquery.Document) (map[string]any, bool) {
	sel := doc.Find(`script[type="application/ld+json"]`)
	if sel.Length() == 0 {
		return nil, false
	}

	var payload any
	if err := json.Unmarshal([]byte(sel.First().Text()), &payload); err != nil {
		return nil, false
	}
	if seq, ok := payload.([]any); ok {
		if len(seq) == 0 {
			return nil, false
		}
		payload = seq[0]
	}

	obj, ok := payload.(map[string]any)
	return obj, ok
}

// extractStructured builds a note from a decoded linked-data object.
// An object with no usable content terminates extraction for the document;
// the markup fallback is deliberately not attempted.
func extractStructured(obj map[string]any) *keepimport.ExtractedNote {
	title := stringField(obj, "name", "headline")

	var content string
	if items, ok := obj["itemListElement"].([]any); ok {
		content = renderChecklist(items)
	} else {
		content = stringField(obj, "text", "description")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	return &keepimport.ExtractedNote{
		Title:     strings.TrimSpace(title),
		Content:   content,
		CreatedAt: recoverTimestamp(obj),
		Source:    keepimport.SourceStructured,
	}
}

// renderChecklist renders checklist items one per line, each prefixed with
// a checked or unchecked box marker, in item order.
func renderChecklist(items []any) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		text := stringField(m, "text", "name")
		checked, _ := m["checked"].(bool)

		prefix := uncheckedPrefix
		if checked {
			prefix = checkedPrefix
		}
		lines = append(lines, prefix+text)
	}
	return strings.Join(lines, "\n")
}

// recoverTimestamp recovers the note's creation time, preferring
// dateCreated over dateModified. Absent or unparseable values leave the
// timestamp unset.
func recoverTimestamp(obj map[string]any) time.Time {
	for _, field := range []string{"dateCreated", "dateModified"} {
		raw, ok := obj[field].(string)
		if !ok {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// extractMarkup scrapes a note from document markup. The title comes from
// the <title> element, falling back to a "title"-classed element; the
// content comes from a "content"-classed element, falling back to the body
// text. This path never recovers a timestamp.
func extractMarkup(doc *goquery.Document) *keepimport.ExtractedNote {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find(".title").First().Text())
	}

	var content string
	if sel := doc.Find(".content"); sel.Length() > 0 {
		content = sel.First().Text()
	} else {
		content = doc.Find("body").Text()
	}

	content = strings.TrimSpace(whitespaceRuns.ReplaceAllString(content, " "))
	if content == "" {
		return nil
	}

	return &keepimport.ExtractedNote{
		Title:   title,
		Content: content,
		Source:  keepimport.SourceMarkup,
	}
}

// stringField returns the first non-empty string value among the given
// keys.
func stringField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
