package util

import (
	"net/http"
	"strings"
)

// DetectMimeType sniffs the MIME type from the first bytes of the payload.
func DetectMimeType(data []byte) string {
	n := len(data)
	if n > 512 {
		n = 512
	}
	return http.DetectContentType(data[:n])
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeImage)
}
