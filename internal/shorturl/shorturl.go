// Package shorturl encodes recipe ids as short opaque codes.
package shorturl

import (
	"errors"
	"fmt"

	"github.com/speps/go-hashids/v2"
)

// ErrInvalidCode is returned for codes that do not decode to exactly one id.
var ErrInvalidCode = errors.New("invalid short link code")

type Codec struct {
	h *hashids.HashID
}

func NewCodec(salt string, minLength int) (*Codec, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = minLength
	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to create hashids codec: %w", err)
	}
	return &Codec{h: h}, nil
}

func (c *Codec) Encode(id uint) (string, error) {
	return c.h.EncodeInt64([]int64{int64(id)})
}

func (c *Codec) Decode(code string) (uint, error) {
	ids, err := c.h.DecodeInt64WithError(code)
	if err != nil || len(ids) != 1 || ids[0] < 1 {
		return 0, ErrInvalidCode
	}
	// reject non-canonical codes that still decode
	if again, err := c.Encode(uint(ids[0])); err != nil || again != code {
		return 0, ErrInvalidCode
	}
	return uint(ids[0]), nil
}
