// Package mime guesses the MIME type of a file the user did not label.
package mime

import (
	stdmime "mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const fallback = "application/octet-stream"

// Detector sniffs content first and falls back to the file extension.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the media type of data without parameters.
func (d *Detector) Detect(data []byte) string {
	return strip(mimetype.Detect(data).String())
}

// DetectNamed sniffs data and, when content alone is inconclusive, consults
// the extension of name.
func (d *Detector) DetectNamed(name string, data []byte) string {
	detected := d.Detect(data)
	if detected != fallback && detected != "text/plain" {
		return detected
	}

	if byExt := strip(stdmime.TypeByExtension(filepath.Ext(name))); byExt != "" {
		return byExt
	}

	return detected
}

func strip(mediaType string) string {
	base, _, _ := strings.Cut(mediaType, ";")
	return strings.TrimSpace(base)
}
