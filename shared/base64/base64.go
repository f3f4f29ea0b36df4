package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrNotDataURI = errors.New("value is not a base64 data URI")

// GetContentType returns the media type of a data URI, or empty when value is not one.
func GetContentType(value string) string {
	if !strings.HasPrefix(value, dataPrefix) {
		return ""
	}

	end := strings.Index(value, base64Marker)
	if end == -1 {
		return ""
	}

	return value[len(dataPrefix):end]
}

func IsDataURI(value string) bool {
	return GetContentType(value) != ""
}

// Decode splits a data URI into its media type and decoded payload.
func Decode(value string) (contentType string, data []byte, err error) {
	contentType = GetContentType(value)
	if contentType == "" {
		return "", nil, ErrNotDataURI
	}

	payload := value[strings.Index(value, base64Marker)+len(base64Marker):]

	data, err = stdBase64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return contentType, data, nil
}

// Extension maps an image media type to a file extension.
func Extension(contentType string) string {
	_, ext, found := strings.Cut(contentType, "/")
	if !found {
		return ""
	}

	if ext == "jpeg" {
		ext = "jpg"
	}

	return "." + ext
}
