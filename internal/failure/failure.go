// Package failure defines the small, closed set of failure kinds an operation
// may report to the dispatcher.
//
// Operations return a *Failure (directly or wrapped) for conditions the
// caller should see as "not found". Every other error is classified as
// KindUnexpected.
package failure

import (
	"errors"
	"fmt"
)

// Kind tags a Failure.
type Kind int

const (
	// KindUnexpected is any condition that was not anticipated by the operation.
	KindUnexpected Kind = iota
	// KindNotFound means the primary requested entity does not exist.
	KindNotFound
	// KindContainerNotFound means the hosting container does not exist.
	KindContainerNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindContainerNotFound:
		return "container_not_found"
	default:
		return "unexpected"
	}
}

// ResourceCaseInstance is the resource kind used by CaseNotFound.
const ResourceCaseInstance = "case instance"

// Failure is a classified operation error.
type Failure struct {
	Kind Kind
	// Resource names the kind of entity for KindNotFound (e.g. "case instance").
	Resource string
	// ID identifies the missing entity or container.
	ID    string
	Cause error
}

func (f *Failure) Error() string {
	if f == nil {
		return "<nil>"
	}
	switch f.Kind {
	case KindNotFound:
		return NotFoundMessage(f.Resource, f.ID)
	case KindContainerNotFound:
		return ContainerNotFoundMessage(f.ID)
	default:
		if f.Cause != nil {
			return f.Cause.Error()
		}
		return "unexpected failure"
	}
}

func (f *Failure) Unwrap() error { return f.Cause }

// NotFound reports that an entity of the given resource kind does not exist.
func NotFound(resource, id string) *Failure {
	return &Failure{Kind: KindNotFound, Resource: resource, ID: id}
}

// CaseNotFound reports a missing case instance.
func CaseNotFound(id string) *Failure {
	return NotFound(ResourceCaseInstance, id)
}

// ContainerNotFound reports a missing hosting container.
func ContainerNotFound(id string) *Failure {
	return &Failure{Kind: KindContainerNotFound, Resource: "container", ID: id}
}

// Unexpected wraps cause as an unclassified failure.
func Unexpected(cause error) *Failure {
	return &Failure{Kind: KindUnexpected, Cause: cause}
}

// Classify narrows err to a *Failure. A *Failure anywhere in the wrap chain
// wins; everything else is KindUnexpected with err as the cause.
// Classify(nil) returns nil.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) && f != nil {
		return f
	}
	return Unexpected(err)
}

// NotFoundMessage renders the not-found template for a resource.
func NotFoundMessage(resource, id string) string {
	if resource == "" {
		resource = "resource"
	}
	return fmt.Sprintf("%s %q not found", resource, id)
}

// ContainerNotFoundMessage renders the not-found template for a container.
func ContainerNotFoundMessage(id string) string {
	return fmt.Sprintf("container %q not found", id)
}

// UnexpectedMessage renders the internal-error template around the original message.
func UnexpectedMessage(msg string) string {
	return "Unexpected error during processing: " + msg
}
