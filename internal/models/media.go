package models

import (
	"encoding/base64"
	"errors"
	"strings"
)

// MediaRef is a decoded media payload with its declared MIME type.
type MediaRef struct {
	MIMEType string
	Data     []byte
}

// ParseDataURI decodes a "data:<mime>;base64,<payload>" string into a MediaRef.
func ParseDataURI(uri string) (MediaRef, error) {
	if uri == "" {
		return MediaRef{}, errors.New("empty data URI")
	}

	const prefix = "data:"
	if !strings.HasPrefix(uri, prefix) {
		return MediaRef{}, errors.New("missing data: prefix")
	}

	meta, payload, ok := strings.Cut(uri[len(prefix):], ",")
	if !ok {
		return MediaRef{}, errors.New("missing payload separator")
	}

	mimeType, _ := strings.CutSuffix(meta, ";base64")
	if mimeType == meta {
		return MediaRef{}, errors.New("payload is not base64 encoded")
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return MediaRef{}, errors.New("invalid base64 payload")
	}
	if len(data) == 0 {
		return MediaRef{}, errors.New("empty payload")
	}

	return MediaRef{MIMEType: mimeType, Data: data}, nil
}

// DataURI re-encodes the payload as a data URI string.
func (m MediaRef) DataURI() string {
	return "data:" + m.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(m.Data)
}
