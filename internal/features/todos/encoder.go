package todos

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	apperrors "github.com/xyz-asif/imagetodo/pkg/errors"
)

// Upload is an image file chosen on the form.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// EncodedImage is an upload converted to a data URI.
type EncodedImage struct {
	DataURI  string
	MimeType string
	Size     int
}

// IsImage reports whether the detected content type is an image type.
func (e EncodedImage) IsImage() bool {
	return strings.HasPrefix(e.MimeType, "image/")
}

// EncodeImage reads the whole upload once and returns it as
// "data:<mime>;base64,<payload>". Read failures wrap apperrors.ErrEncoding.
func EncodeImage(u Upload) (EncodedImage, error) {
	if u.Content == nil {
		return EncodedImage{}, fmt.Errorf("%w: %s: no content", apperrors.ErrEncoding, u.Filename)
	}

	data, err := io.ReadAll(u.Content)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("%w: read %s: %w", apperrors.ErrEncoding, u.Filename, err)
	}

	mime := mediaType(mimetype.Detect(data).String())

	return EncodedImage{
		DataURI:  "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		MimeType: mime,
		Size:     len(data),
	}, nil
}

var errNotDataURI = errors.New("not a base64 data URI")

// DecodeImage returns the media type and raw bytes of a data URI produced by
// EncodeImage.
func DecodeImage(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errNotDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errNotDataURI
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, errNotDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}
	if mime == "" {
		mime = "application/octet-stream"
	}
	return mime, data, nil
}

// mediaType strips parameters such as "; charset=utf-8".
func mediaType(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
