package compose

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize bounds an attached image.
const MaxImageSize = 10 << 20

var (
	ErrNotImage      = errors.New("file is not an image")
	ErrImageTooLarge = errors.New("image is too large")
	ErrEmptyImage    = errors.New("image is empty")
)

// NewImage sniffs the content type of data and accepts only image/* types.
// data is copied.
func NewImage(filename string, data []byte) (*models.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, len(data), MaxImageSize)
	}

	contentType, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, contentType)
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	return &models.Image{Filename: filename, ContentType: contentType, Data: buf}, nil
}

// DataURL renders img as a data: URL for previews.
func DataURL(img *models.Image) string {
	if img == nil {
		return ""
	}
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
