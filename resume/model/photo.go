package model

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"strings"
)

// ErrNoPhoto is returned when the document carries no photo.
var ErrNoPhoto = errors.New("no photo present")

// PhotoBytes decodes the inline photo into raw image bytes plus the
// detected format ("png" or "jpeg"). Accepts a data URI or bare base64.
// An undecodable photo is an asset failure the caller may degrade on.
func (p PersonalInfo) PhotoBytes() ([]byte, string, error) {
	raw := strings.TrimSpace(p.Photo)
	if raw == "" {
		return nil, "", ErrNoPhoto
	}

	if strings.HasPrefix(raw, "data:") {
		comma := strings.Index(raw, ",")
		if comma < 0 {
			return nil, "", fmt.Errorf("photo data URI has no payload")
		}
		meta := raw[:comma]
		raw = raw[comma+1:]
		if !strings.Contains(meta, ";base64") {
			return nil, "", fmt.Errorf("photo data URI is not base64-encoded")
		}
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		// Some producers emit URL-safe alphabets.
		data, err = base64.URLEncoding.DecodeString(raw)
		if err != nil {
			return nil, "", fmt.Errorf("decode photo: %w", err)
		}
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode photo image: %w", err)
	}
	if format != "png" && format != "jpeg" {
		return nil, "", fmt.Errorf("unsupported photo format %q", format)
	}
	return data, format, nil
}
