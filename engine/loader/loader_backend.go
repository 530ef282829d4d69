package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

// loaderBackend decodes one file format family into RGBA staging data.
type loaderBackend interface {
	// Decode reads an encoded image and returns RGBA pixels no larger than maxSize on either axis.
	//
	// Parameters:
	//   - r: the encoded image stream
	//   - maxSize: the largest allowed width or height in pixels (0 = unlimited)
	//
	// Returns:
	//   - common.TextureStagingData: the decoded pixels
	//   - error: error if decoding fails
	Decode(r io.Reader, maxSize int) (common.TextureStagingData, error)

	// Supports reports whether the backend can decode files with the given lower-case extension.
	//
	// Parameters:
	//   - ext: the file extension including the leading dot
	//
	// Returns:
	//   - bool: true if the extension is supported
	Supports(ext string) bool
}
