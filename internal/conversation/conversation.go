// Package conversation builds the correlation header attached to every
// response the gateway produces.
package conversation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mattjoyce/kiegate/internal/model"
)

// HeaderName is the response (and request) header carrying the conversation id.
const HeaderName = "X-KIE-ConversationId"

// Header is a single response header. The zero value means "no header".
type Header struct {
	Name  string
	Value string
}

// IsZero reports whether h carries no value.
func (h Header) IsZero() bool { return h.Value == "" }

// ContainerLookup resolves a container by id.
type ContainerLookup interface {
	Container(ctx context.Context, id string) (*model.Container, error)
}

// Request is the request metadata the header is derived from.
type Request struct {
	Header    http.Header
	RequestID string
}

// Build derives the conversation header for a request scoped to containerID.
//
// An incoming header is echoed back. Otherwise the id is composed from the
// server id, the container and its release id, plus a name-based UUID over the
// request id, so the same request metadata always yields the same header.
// Requests without a container, or for an unknown container, get no header.
func Build(ctx context.Context, containerID string, lookup ContainerLookup, serverID string, req Request) Header {
	if containerID == "" {
		return Header{}
	}
	if v := strings.TrimSpace(req.Header.Get(HeaderName)); v != "" {
		return Header{Name: HeaderName, Value: v}
	}
	if lookup == nil {
		return Header{}
	}

	c, err := lookup.Container(ctx, containerID)
	if err != nil || c == nil {
		return Header{}
	}

	return Header{Name: HeaderName, Value: Format(serverID, containerID, c.ReleaseID, req.RequestID)}
}

// Format renders a conversation id.
func Format(serverID, containerID string, release model.ReleaseID, requestID string) string {
	seed := serverID + "|" + containerID + "|" + release.String() + "|" + requestID
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed))
	return fmt.Sprintf("'%s':'%s':'%s':'%s'", serverID, containerID, release.String(), id.String())
}
