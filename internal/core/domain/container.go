package domain

const (
	// HeaderLengthSize is the width of the little-endian header length prefix.
	HeaderLengthSize = 4

	// DocumentType tags headers written by this codec.
	DocumentType = "compressed_document"

	// ArchiveMime is the MIME type of an encoded container.
	ArchiveMime = "application/octet-stream"

	// DefaultFileName is used when a request carries no file name.
	DefaultFileName = "file"
)

// ContainerHeader is the metadata block stored in front of the compressed payload.
//
// Wire layout of a container:
//
//	offset 0   : uint32 LE header length L
//	offset 4   : L bytes of UTF-8 JSON (this struct)
//	offset 4+L : compressed payload
type ContainerHeader struct {
	// Type is always DocumentType when written. Optional on read.
	Type string `json:"type,omitempty"`

	// OriginalName is the file name of the wrapped document.
	OriginalName string `json:"originalName"`

	// OriginalMime is the MIME type of the wrapped document. May be empty
	// when the producer did not know it.
	OriginalMime string `json:"originalMime"`

	// CompressionLevel records the effort the payload was produced with.
	// Informational only; decoding does not depend on it.
	CompressionLevel int `json:"compressionLevel"`

	// OriginalSize is the byte length of the payload before compression.
	// A decoded payload of any other length is treated as corruption.
	OriginalSize int64 `json:"originalSize"`
}

// Document is a raw file together with the metadata needed to hand it back
// to the user.
type Document struct {
	Data []byte
	Name string
	Mime string
}
