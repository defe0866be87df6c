package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/mattjoyce/kiegate/internal/conversation"
	"github.com/mattjoyce/kiegate/internal/failure"
	"github.com/mattjoyce/kiegate/internal/negotiate"
)

// Request is the request metadata an operation is dispatched with.
type Request = conversation.Request

// RequestFromHTTP captures the headers and chi request id of r.
func RequestFromHTTP(r *http.Request) Request {
	return Request{
		Header:    r.Header,
		RequestID: middleware.GetReqID(r.Context()),
	}
}

// Result is what a successful operation produces.
type Result struct {
	// Status defaults to 200 when left zero.
	Status  int
	Payload any
}

// OK wraps payload in a 200 result.
func OK(payload any) *Result {
	return &Result{Status: http.StatusOK, Payload: payload}
}

// Operation is one unit of request work. It receives the negotiated
// representation, the content type and the conversation header computed for
// the request, and either produces a result or fails.
type Operation interface {
	Invoke(v negotiate.Variant, contentType string, h conversation.Header) (*Result, error)
}

// OperationFunc adapts a closure to Operation.
type OperationFunc func(v negotiate.Variant, contentType string, h conversation.Header) (*Result, error)

func (f OperationFunc) Invoke(v negotiate.Variant, contentType string, h conversation.Header) (*Result, error) {
	return f(v, contentType, h)
}

// Dispatcher executes operations and guarantees a well-formed envelope.
type Dispatcher struct {
	logger     *slog.Logger
	containers conversation.ContainerLookup
	serverID   string
}

// New creates a Dispatcher. The logger is fixed for the dispatcher's lifetime.
func New(logger *slog.Logger, containers conversation.ContainerLookup, serverID string) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		logger:     logger.With(slog.String("component", "dispatch")),
		containers: containers,
		serverID:   serverID,
	}
}

// Dispatch runs op once. containerID and entityID are only used to render
// not-found messages and to build the conversation header.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request, containerID, entityID string, op Operation) *Envelope {
	v := negotiate.FromHeader(req.Header)
	contentType := negotiate.ContentType(req.Header)
	header := conversation.Build(ctx, containerID, d.containers, d.serverID, req)

	logger := d.logger
	if !header.IsZero() {
		logger = logger.With(slog.String("conversation_id", header.Value))
	}

	logger.Debug("invoking operation",
		"container_id", containerID,
		"entity_id", entityID,
		"variant", v.String(),
		"content_type", contentType,
	)

	res, stack, err := invoke(op, v, contentType, header)
	if err == nil && (res == nil || res.Payload == nil) {
		err = fmt.Errorf("operation returned no result")
	}

	if err == nil {
		status := res.Status
		if status == 0 {
			status = http.StatusOK
		}
		logger.Debug("returning response", "status", status, "payload_type", fmt.Sprintf("%T", res.Payload))
		return &Envelope{Status: status, Variant: v, Header: header, Payload: res.Payload}
	}

	f := failure.Classify(err)
	switch f.Kind {
	case failure.KindNotFound:
		id := f.ID
		if id == "" {
			id = entityID
		}
		return failed(http.StatusNotFound, v, header, failure.NotFoundMessage(f.Resource, id))

	case failure.KindContainerNotFound:
		id := containerID
		if id == "" {
			id = f.ID
		}
		return failed(http.StatusNotFound, v, header, failure.ContainerNotFoundMessage(id))

	default:
		if stack == nil {
			stack = debug.Stack()
		}
		logger.Error("unexpected error during processing",
			"error", err.Error(),
			"detail", fmt.Sprintf("%+v", err),
			"container_id", containerID,
			"entity_id", entityID,
			"stack", string(stack),
		)
		return failed(http.StatusInternalServerError, v, header, failure.UnexpectedMessage(err.Error()))
	}
}

// invoke calls op, turning a panic into an error plus the panicking stack.
func invoke(op Operation, v negotiate.Variant, contentType string, h conversation.Header) (res *Result, stack []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack = debug.Stack()
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", e)
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
			res = nil
		}
	}()
	if op == nil {
		return nil, nil, fmt.Errorf("no operation to invoke")
	}
	res, err = op.Invoke(v, contentType, h)
	return res, nil, err
}

func failed(status int, v negotiate.Variant, h conversation.Header, msg string) *Envelope {
	return &Envelope{Status: status, Variant: v, Header: h, Message: msg}
}
