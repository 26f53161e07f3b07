package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{512, "512 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{10 * 1024, "10 KB"},
		{1024 * 1024, "1 MB"},
		{5*1024*1024 + 300*1024, "5.3 MB"},
		{1024 * 1024 * 1024, "1 GB"},
		{3 * 1024 * 1024 * 1024 * 1024, "3072 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes), tt.bytes)
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, (&Outcome{}).Ratio())
	assert.InDelta(t, 75.0, (&Outcome{OriginalSize: 400, Blob: make([]byte, 100)}).Ratio(), 1e-9)
	assert.InDelta(t, -50.0, (&Outcome{OriginalSize: 100, Blob: make([]byte, 150)}).Ratio(), 1e-9)
}

func TestDownloadName(t *testing.T) {
	o := &Outcome{Mime: "image/jpeg", Blob: []byte{1}}
	name, mime, data := o.Download()
	assert.Equal(t, "compressed_file", name)
	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, []byte{1}, data)
}
