package dispatch

import (
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/zeebo/blake3"

	"github.com/mattjoyce/kiegate/internal/conversation"
	"github.com/mattjoyce/kiegate/internal/negotiate"
)

// Envelope is the outcome of a dispatch. Exactly one of Payload or Message is set.
type Envelope struct {
	Status  int
	Variant negotiate.Variant
	Header  conversation.Header
	Payload any
	Message string
}

// Failed reports whether the envelope carries an error message.
func (e *Envelope) Failed() bool { return e.Message != "" }

// ErrorBody is the wire shape of a failure envelope.
type ErrorBody struct {
	XMLName xml.Name `json:"-" xml:"error"`
	Message string   `json:"error" xml:"message"`
}

// Write renders the envelope in its negotiated representation. Successful
// payloads get a BLAKE3 ETag.
func (e *Envelope) Write(w http.ResponseWriter) error {
	if !e.Header.IsZero() {
		w.Header().Set(e.Header.Name, e.Header.Value)
	}

	status := e.Status
	var (
		body []byte
		err  error
	)
	if e.Failed() {
		body, err = e.Variant.Marshal(ErrorBody{Message: e.Message})
	} else {
		body, err = e.Variant.Marshal(e.Payload)
		if err == nil {
			w.Header().Set("ETag", ETag(body))
		}
	}
	if err != nil {
		// Fall back to an error body; ErrorBody always marshals.
		status = http.StatusInternalServerError
		body, _ = e.Variant.Marshal(ErrorBody{Message: "failed to encode response: " + err.Error()})
		err = fmt.Errorf("encode %s response: %w", e.Variant, err)
	}

	w.Header().Set("Content-Type", e.Variant.String())
	w.WriteHeader(status)
	if _, werr := w.Write(body); werr != nil && err == nil {
		err = fmt.Errorf("write response: %w", werr)
	}
	return err
}

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	sum := blake3.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
