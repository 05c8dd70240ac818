package storage

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrInvalidImage is returned for payloads that are not base64 images.
var ErrInvalidImage = errors.New("invalid image payload")

var contentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Image is a decoded upload.
type Image struct {
	Data []byte
	Ext  string
}

// ContentType is the MIME type matching Ext.
func (i *Image) ContentType() string {
	return contentTypes[i.Ext]
}

// Name is the content-addressed file name of the image.
func (i *Image) Name() string {
	sum := sha256.Sum256(i.Data)
	return hex.EncodeToString(sum[:]) + "." + i.Ext
}

// DecodeImage accepts "data:image/<ext>;base64,<data>" or bare base64,
// which is stored as png.
func DecodeImage(payload string) (*Image, error) {
	payload = strings.TrimSpace(payload)
	ext := "png"

	if strings.HasPrefix(payload, "data:") {
		header, data, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, ErrInvalidImage
		}
		mime, ok := strings.CutSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		if !ok {
			return nil, ErrInvalidImage
		}
		sub, ok := strings.CutPrefix(mime, "image/")
		if !ok {
			return nil, ErrInvalidImage
		}
		if _, known := contentTypes[sub]; !known {
			return nil, ErrInvalidImage
		}
		ext, payload = sub, data
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil || len(data) == 0 {
		return nil, ErrInvalidImage
	}
	return &Image{Data: data, Ext: ext}, nil
}
