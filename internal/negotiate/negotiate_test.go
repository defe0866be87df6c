package negotiate

import (
	"encoding/xml"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    Variant
	}{
		{name: "no headers", want: JSON},
		{name: "accept json", headers: map[string]string{"Accept": "application/json"}, want: JSON},
		{name: "accept xml", headers: map[string]string{"Accept": "application/xml"}, want: XML},
		{name: "accept weighted", headers: map[string]string{"Accept": "application/json;q=0.2, application/xml;q=0.9"}, want: XML},
		{name: "accept wildcard", headers: map[string]string{"Accept": "*/*"}, want: JSON},
		{name: "accept unsupported", headers: map[string]string{"Accept": "text/html"}, want: JSON},
		{name: "kie json", headers: map[string]string{KIEContentTypeHeader: "json", "Accept": "application/xml"}, want: JSON},
		{name: "kie xstream", headers: map[string]string{KIEContentTypeHeader: "XSTREAM"}, want: XML},
		{name: "kie jaxb", headers: map[string]string{KIEContentTypeHeader: "JAXB", "Accept": "application/json"}, want: XML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			assert.Equal(t, tt.want, FromHeader(h))
		})
	}
}

func TestContentType(t *testing.T) {
	h := http.Header{}
	assert.Equal(t, MediaJSON, ContentType(h))

	h.Set("Accept", "application/xml")
	assert.Equal(t, MediaXML, ContentType(h))

	h.Set("Content-Type", "application/json")
	assert.Equal(t, "application/json", ContentType(h))

	h.Set(KIEContentTypeHeader, "JAXB")
	assert.Equal(t, "JAXB", ContentType(h))
}

type sample struct {
	XMLName xml.Name `json:"-" xml:"sample"`
	Name    string   `json:"name" xml:"name"`
}

func TestMarshal(t *testing.T) {
	js, err := JSON.Marshal(sample{Name: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x"}`, string(js))

	xs, err := XML.Marshal(sample{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, "<sample><name>x</name></sample>", string(xs))
}

func TestVariantString(t *testing.T) {
	assert.Equal(t, MediaJSON, Variant{}.String())
	assert.Equal(t, MediaXML, XML.String())
	assert.True(t, XML.IsXML())
	assert.False(t, JSON.IsXML())
}
