package pipeline

import (
	"math"
	"strconv"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
)

// CompressedPrefix is prepended to the name of a download that could not be
// restored to the original file.
const CompressedPrefix = "compressed_"

// Outcome is the result of one successful compression.
type Outcome struct {
	OriginalName string
	OriginalMime string
	OriginalSize int

	// Blob is the worker's result: a re-encoded image or a container.
	Blob      []byte
	Mime      string
	IsArchive bool

	// Restored holds the decoded container when IsArchive is set and decoding
	// succeeded. RestoreErr records why decoding failed otherwise.
	Restored   *domain.Document
	RestoreErr error
}

// CompressedSize is the size of the worker's result.
func (o *Outcome) CompressedSize() int {
	return len(o.Blob)
}

// Ratio is the size reduction in percent. Negative when the output grew,
// 0 for an empty input.
func (o *Outcome) Ratio() float64 {
	if o.OriginalSize == 0 {
		return 0
	}
	return float64(o.OriginalSize-len(o.Blob)) / float64(o.OriginalSize) * 100
}

// Download returns the artifact offered to the user. A restored archive is
// offered under its original name and type; anything else is offered as the
// raw result under a prefixed name.
func (o *Outcome) Download() (name, mime string, data []byte) {
	if o.Restored != nil {
		return o.Restored.Name, o.Restored.Mime, o.Restored.Data
	}

	name = o.OriginalName
	if name == "" {
		name = domain.DefaultFileName
	}
	return CompressedPrefix + name, o.Mime, o.Blob
}

// Kind classifies the original file for display.
func (o *Outcome) Kind() domain.FileKind {
	return domain.KindOf(o.OriginalMime)
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count with base-1024 units and at most one
// decimal, e.g. "0 Bytes", "512 Bytes", "1.5 KB", "2 MB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	value, i := float64(bytes), 0
	for value >= 1024 && i < len(sizeUnits)-1 {
		value /= 1024
		i++
	}

	value = math.Round(value*10) / 10
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}
