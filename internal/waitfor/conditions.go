package waitfor

import (
	"context"
	"fmt"

	"github.com/mattjoyce/kiegate/internal/model"
)

//go:generate mockgen -destination=mocks/mock_probers.go -package=mocks github.com/mattjoyce/kiegate/internal/waitfor JobProber,ContainerProber,ProcessProber,QueryProber

// JobProber reads executor job requests.
type JobProber interface {
	GetJobRequest(ctx context.Context, id int64) (*model.JobRequest, error)
}

// ContainerProber lists deployed containers.
type ContainerProber interface {
	ListContainers(ctx context.Context) (*model.ContainerList, error)
}

// ProcessProber reads a single process instance.
type ProcessProber interface {
	GetProcessInstance(ctx context.Context, containerID string, id int64) (*model.ProcessInstance, error)
}

// QueryProber pages through process instances across containers.
type QueryProber interface {
	FindProcessInstances(ctx context.Context, page, pageSize int) (*model.ProcessInstanceList, error)
}

// discoveryPageSize is the page read when counting process instances.
const discoveryPageSize = 100

// JobFinished reports whether a job reached a terminal status.
func JobFinished(status model.JobStatus) bool {
	switch status {
	case model.JobCancelled, model.JobDone, model.JobError:
		return true
	}
	return false
}

// ContainersSynchronized reports whether exactly expected containers are
// deployed and none of them is still being created or disposed. A nil list
// only matches when nothing is expected.
func ContainersSynchronized(list *model.ContainerList, expected int) bool {
	if list == nil || list.Containers == nil {
		return expected == 0
	}
	if len(list.Containers) != expected {
		return false
	}
	for _, c := range list.Containers {
		if c.Status.Transitional() {
			return false
		}
	}
	return true
}

// ProcessInstanceFinished reports whether a process completed or was aborted.
func ProcessInstanceFinished(state int) bool {
	return state == model.ProcessStateCompleted || state == model.ProcessStateAborted
}

// ForJobToFinish waits for job id to reach a terminal status.
func ForJobToFinish(ctx context.Context, p JobProber, id int64) error {
	return Until(func() (bool, error) {
		job, err := p.GetJobRequest(ctx, id)
		if err != nil {
			return false, fmt.Errorf("get job %d: %w", id, err)
		}
		return job != nil && JobFinished(job.Status), nil
	})
}

// ForServerSynchronization waits until expected containers are deployed and settled.
func ForServerSynchronization(ctx context.Context, p ContainerProber, expected int) error {
	return Until(func() (bool, error) {
		list, err := p.ListContainers(ctx)
		if err != nil {
			return false, fmt.Errorf("list containers: %w", err)
		}
		return ContainersSynchronized(list, expected), nil
	})
}

// ForProcessInstanceToFinish waits for a process instance to complete or abort.
func ForProcessInstanceToFinish(ctx context.Context, p ProcessProber, containerID string, id int64) error {
	return Until(func() (bool, error) {
		pi, err := p.GetProcessInstance(ctx, containerID, id)
		if err != nil {
			return false, fmt.Errorf("get process instance %d in %s: %w", id, containerID, err)
		}
		return pi != nil && ProcessInstanceFinished(pi.State), nil
	})
}

// ForProcessInstanceStart waits until exactly one process instance is visible.
func ForProcessInstanceStart(ctx context.Context, p QueryProber) error {
	return ForProcessInstances(ctx, p, 1)
}

// ForProcessInstances waits until the first discovery page holds expected instances.
func ForProcessInstances(ctx context.Context, p QueryProber, expected int) error {
	return Until(func() (bool, error) {
		list, err := p.FindProcessInstances(ctx, 0, discoveryPageSize)
		if err != nil {
			return false, fmt.Errorf("find process instances: %w", err)
		}
		n := 0
		if list != nil {
			n = len(list.Instances)
		}
		return n == expected, nil
	})
}
