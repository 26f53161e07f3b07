package codec_test

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/internal/core/services/codec"
	cerrors "github.com/iamNilotpal/squeeze/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodec(t *testing.T) *codec.Codec {
	t.Helper()
	c, err := codec.NewDefault()
	require.NoError(t, err)
	return c
}

// frame builds a container by hand.
func frame(header []byte, payload []byte) []byte {
	out := make([]byte, 4, 4+len(header)+len(payload))
	binary.LittleEndian.PutUint32(out, uint32(len(header)))
	out = append(out, header...)
	return append(out, payload...)
}

// parts splits a container produced by Encode.
func parts(t *testing.T, container []byte) (map[string]any, []byte) {
	t.Helper()
	require.GreaterOrEqual(t, len(container), 4)
	l := binary.LittleEndian.Uint32(container[:4])
	require.Greater(t, l, uint32(0))
	require.LessOrEqual(t, int(4+l), len(container))

	var header map[string]any
	require.NoError(t, json.Unmarshal(container[4:4+l], &header))
	return header, container[4+l:]
}

func requireCategory(t *testing.T, err error, want cerrors.ErrorCategory) {
	t.Helper()
	require.Error(t, err)
	got, ok := cerrors.CategoryOf(err)
	require.True(t, ok, "error %v carries no category", err)
	require.Equal(t, want, got, "error: %v", err)
}

func TestRoundTrip(t *testing.T) {
	c := newCodec(t)
	rng := rand.New(rand.NewSource(7))

	random := make([]byte, 64*1024)
	rng.Read(random)

	inputs := map[string][]byte{
		"empty":      {},
		"single":     {0x00},
		"text":       []byte("the quick brown fox jumps over the lazy dog"),
		"repetitive": bytes.Repeat([]byte("abcdef"), 10000),
		"random":     random,
	}

	for label, data := range inputs {
		for level := 1; level <= 9; level++ {
			container, err := c.Encode(data, "report <final> & v2.docx", "application/msword", level)
			require.NoError(t, err, "%s level %d", label, level)

			doc, err := c.Decode(container)
			require.NoError(t, err, "%s level %d", label, level)
			assert.Equal(t, data, doc.Data, "%s level %d", label, level)
			assert.Len(t, doc.Data, len(data))
			assert.Equal(t, "report <final> & v2.docx", doc.Name)
			assert.Equal(t, "application/msword", doc.Mime)
		}
	}
}

func TestRoundTripUnicodeMetadata(t *testing.T) {
	c := newCodec(t)

	container, err := c.Encode([]byte("données"), "résumé 履歴書.txt", "text/plain; charset=utf-8", 6)
	require.NoError(t, err)

	doc, err := c.Decode(container)
	require.NoError(t, err)
	assert.Equal(t, "résumé 履歴書.txt", doc.Name)
	assert.Equal(t, "text/plain; charset=utf-8", doc.Mime)
	assert.Equal(t, []byte("données"), doc.Data)
}

func TestZeroLengthInput(t *testing.T) {
	c := newCodec(t)

	container, err := c.Encode([]byte{}, "f.txt", "text/plain", 6)
	require.NoError(t, err)

	doc, err := c.Decode(container)
	require.NoError(t, err)
	assert.Empty(t, doc.Data)
	assert.Equal(t, "f.txt", doc.Name)
}

func TestGreetingScenario(t *testing.T) {
	c := newCodec(t)
	data := []byte("hello world")
	require.Len(t, data, 11)

	container, err := c.Encode(data, "greeting.txt", "text/plain", domain.PresetMedium.Level())
	require.NoError(t, err)

	header, payload := parts(t, container)
	assert.Equal(t, "greeting.txt", header["originalName"])
	assert.Equal(t, "text/plain", header["originalMime"])
	assert.EqualValues(t, 6, header["compressionLevel"])
	assert.EqualValues(t, 11, header["originalSize"])
	assert.Equal(t, domain.DocumentType, header["type"])

	// Payload is a plain gzip stream.
	require.GreaterOrEqual(t, len(payload), 2)
	assert.Equal(t, []byte{0x1f, 0x8b}, payload[:2])

	doc, err := c.Decode(container)
	require.NoError(t, err)
	assert.Equal(t, data, doc.Data)
	assert.Equal(t, "greeting.txt", doc.Name)
	assert.Equal(t, "text/plain", doc.Mime)
}

func TestInspect(t *testing.T) {
	c := newCodec(t)

	container, err := c.Encode([]byte("abc"), "a.bin", "application/x-thing", 3)
	require.NoError(t, err)

	header, err := c.Inspect(container)
	require.NoError(t, err)
	assert.Equal(t, &domain.ContainerHeader{
		Type:             domain.DocumentType,
		OriginalName:     "a.bin",
		OriginalMime:     "application/x-thing",
		CompressionLevel: 3,
		OriginalSize:     3,
	}, header)

	assert.True(t, codec.IsContainer(container))
	assert.False(t, codec.IsContainer([]byte("plain text file")))
}

func TestDecodeAcceptsHeaderWithoutType(t *testing.T) {
	c := newCodec(t)

	container, err := c.Encode([]byte("payload"), "p.txt", "text/plain", 6)
	require.NoError(t, err)
	_, payload := parts(t, container)

	header := []byte(`{"originalName":"p.txt","originalMime":"text/plain","compressionLevel":6,"originalSize":7}`)
	doc, err := c.Decode(frame(header, payload))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), doc.Data)
}

func TestDecodeMalformed(t *testing.T) {
	c := newCodec(t)

	good, err := c.Encode([]byte("payload"), "p.txt", "text/plain", 6)
	require.NoError(t, err)
	_, payload := parts(t, good)

	tooLong := make([]byte, 4)
	binary.LittleEndian.PutUint32(tooLong, 100)
	tooLong = append(tooLong, []byte(`{"a":1}`)...)

	maxLen := make([]byte, 8)
	binary.LittleEndian.PutUint32(maxLen, 0xFFFFFFFF)

	tests := []struct {
		name      string
		container []byte
	}{
		{"nil buffer", nil},
		{"empty buffer", []byte{}},
		{"three bytes", []byte{1, 0, 0}},
		{"header length past end", tooLong},
		{"max header length", maxLen},
		{"zero header length", frame(nil, payload)},
		{"not json", frame([]byte("not json at all"), payload)},
		{"json array", frame([]byte(`[1,2,3]`), payload)},
		{"json null", frame([]byte(`null`), payload)},
		{"missing name", frame([]byte(`{"originalMime":"text/plain","compressionLevel":6,"originalSize":7}`), payload)},
		{"missing mime", frame([]byte(`{"originalName":"p","compressionLevel":6,"originalSize":7}`), payload)},
		{"missing level", frame([]byte(`{"originalName":"p","originalMime":"t","originalSize":7}`), payload)},
		{"missing size", frame([]byte(`{"originalName":"p","originalMime":"t","compressionLevel":6}`), payload)},
		{"negative size", frame([]byte(`{"originalName":"p","originalMime":"t","compressionLevel":6,"originalSize":-1}`), payload)},
		{"fractional size", frame([]byte(`{"originalName":"p","originalMime":"t","compressionLevel":6,"originalSize":7.5}`), payload)},
		{"wrong field type", frame([]byte(`{"originalName":5,"originalMime":"t","compressionLevel":6,"originalSize":7}`), payload)},
		{"foreign type tag", frame([]byte(`{"type":"zip","originalName":"p","originalMime":"t","compressionLevel":6,"originalSize":7}`), payload)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode(tt.container)
			requireCategory(t, err, cerrors.ErrorMalformedContainer)

			_, err = c.Inspect(tt.container)
			requireCategory(t, err, cerrors.ErrorMalformedContainer)
		})
	}
}

func TestDecodeCorruptedPayload(t *testing.T) {
	c := newCodec(t)
	data := bytes.Repeat([]byte("corruption test data "), 200)

	container, err := c.Encode(data, "c.txt", "text/plain", 9)
	require.NoError(t, err)
	_, payload := parts(t, container)
	headerEnd := len(container) - len(payload)

	flip := func(offset int) []byte {
		out := bytes.Clone(container)
		out[offset] ^= 0xFF
		return out
	}

	tests := []struct {
		name      string
		container []byte
	}{
		{"no payload", container[:headerEnd]},
		{"truncated trailer", container[:len(container)-3]},
		{"truncated body", container[:headerEnd+len(payload)/2]},
		{"bad magic", flip(headerEnd)},
		{"bad crc", flip(len(container) - 5)},
		{"bad isize", flip(len(container) - 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode(tt.container)
			require.Error(t, err)
			category, ok := cerrors.CategoryOf(err)
			require.True(t, ok)
			assert.Contains(t,
				[]cerrors.ErrorCategory{cerrors.ErrorDecompression, cerrors.ErrorIntegrity},
				category, "error: %v", err,
			)
		})
	}
}

func TestDecodeSizeMismatch(t *testing.T) {
	c := newCodec(t)
	data := []byte("twelve bytes")

	container, err := c.Encode(data, "s.txt", "text/plain", 6)
	require.NoError(t, err)
	_, payload := parts(t, container)

	for _, size := range []int{0, 11, 13, 1 << 40} {
		header, err := json.Marshal(map[string]any{
			"type":             domain.DocumentType,
			"originalName":     "s.txt",
			"originalMime":     "text/plain",
			"compressionLevel": 6,
			"originalSize":     size,
		})
		require.NoError(t, err)

		_, err = c.Decode(frame(header, payload))
		requireCategory(t, err, cerrors.ErrorIntegrity)
	}
}

func TestEncodeRejectsInvalidLevel(t *testing.T) {
	c := newCodec(t)

	for _, level := range []int{-1, 0, 10, 22} {
		_, err := c.Encode([]byte("x"), "x", "text/plain", level)
		requireCategory(t, err, cerrors.ErrorEncode)
	}
}

type failingCompressor struct{}

func (failingCompressor) Compress([]byte, int) ([]byte, error) {
	return nil, errors.New("compressor offline")
}

func (failingCompressor) Decompress([]byte, int64) ([]byte, error) {
	return nil, errors.New("compressor offline")
}

func (failingCompressor) Name() string { return "failing" }

func TestEncodeCompressionFailure(t *testing.T) {
	c, err := codec.New(failingCompressor{})
	require.NoError(t, err)

	out, err := c.Encode([]byte("data"), "d", "text/plain", 6)
	assert.Nil(t, out)
	requireCategory(t, err, cerrors.ErrorEncode)
	assert.Contains(t, err.Error(), "compressor offline")
}

func TestNewWithoutCapability(t *testing.T) {
	_, err := codec.New(nil)
	requireCategory(t, err, cerrors.ErrorCapabilityUnavailable)
}
