// Package negotiate selects the response representation for a request.
package negotiate

import (
	"encoding/json"
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/munnerz/goautoneg"
)

// KIEContentTypeHeader lets a caller pick the marshalling format explicitly.
const KIEContentTypeHeader = "X-KIE-ContentType"

const (
	MediaJSON = "application/json"
	MediaXML  = "application/xml"
)

// Variant is a negotiated response representation.
type Variant struct {
	MediaType string
}

var (
	JSON = Variant{MediaType: MediaJSON}
	XML  = Variant{MediaType: MediaXML}
)

var alternatives = []string{MediaJSON, MediaXML}

// FromHeader picks the variant for a request. The explicit KIE content type
// header wins over Accept; JSON is the fallback.
func FromHeader(h http.Header) Variant {
	switch strings.ToUpper(strings.TrimSpace(h.Get(KIEContentTypeHeader))) {
	case "JSON":
		return JSON
	case "XSTREAM", "JAXB":
		return XML
	}

	if accept := h.Get("Accept"); accept != "" {
		switch goautoneg.Negotiate(accept, alternatives) {
		case MediaXML:
			return XML
		case MediaJSON:
			return JSON
		}
	}
	return JSON
}

// ContentType returns the marshalling content type the caller asked for.
func ContentType(h http.Header) string {
	if ct := strings.TrimSpace(h.Get(KIEContentTypeHeader)); ct != "" {
		return ct
	}
	if ct := strings.TrimSpace(h.Get("Content-Type")); ct != "" {
		return ct
	}
	return FromHeader(h).MediaType
}

// IsXML reports whether the variant is the XML representation.
func (v Variant) IsXML() bool { return v.MediaType == MediaXML }

// Marshal encodes v in this representation.
func (v Variant) Marshal(payload any) ([]byte, error) {
	if v.IsXML() {
		return xml.Marshal(payload)
	}
	return json.Marshal(payload)
}

func (v Variant) String() string {
	if v.MediaType == "" {
		return MediaJSON
	}
	return v.MediaType
}
