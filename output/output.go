// Package output writes the localized document tree. The translation core
// has no opinion on file layout; this package owns it: the default locale
// at the output root, each target locale under its base-language prefix,
// mirrored assets under assets/.
package output

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nordbloc/siteloc"
)

// Sink receives translated documents and supporting files.
type Sink interface {
	// WritePage stores one document for a page slug. An empty locale
	// writes the default-locale document at the root.
	WritePage(locale, slug, doc string) error
}

// DirSink writes pages as <dir>/<lang>/<slug>/index.html.
type DirSink struct {
	dir string
}

// NewDirSink creates a sink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Dir returns the sink's root directory.
func (s *DirSink) Dir() string {
	return s.dir
}

// WritePage writes one document. The slug "/" becomes the directory index.
func (s *DirSink) WritePage(locale, slug, doc string) error {
	dest := filepath.Join(s.dir, filepath.FromSlash(PagePath(locale, slug)))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return &siteloc.OutputError{Path: dest, Message: "creating page dir", Cause: err}
	}
	if err := os.WriteFile(dest, []byte(doc), 0o644); err != nil {
		return &siteloc.OutputError{Path: dest, Message: "writing page", Cause: err}
	}
	return nil
}

// PagePath returns the output-relative file path of a page variant.
func PagePath(locale, slug string) string {
	slug = strings.Trim(slug, "/")
	parts := make([]string, 0, 3)
	if locale != "" {
		parts = append(parts, siteloc.BaseLang(locale))
	}
	if slug != "" {
		parts = append(parts, slug)
	}
	parts = append(parts, "index.html")
	return strings.Join(parts, "/")
}

// Verify DirSink implements Sink
var _ Sink = (*DirSink)(nil)
