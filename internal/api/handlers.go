package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mattjoyce/kiegate/internal/conversation"
	"github.com/mattjoyce/kiegate/internal/dispatch"
	"github.com/mattjoyce/kiegate/internal/failure"
	"github.com/mattjoyce/kiegate/internal/model"
	"github.com/mattjoyce/kiegate/internal/negotiate"
	"github.com/mattjoyce/kiegate/internal/store"
)

const (
	resourceJobRequest      = "job request"
	resourceProcessInstance = "process instance"
)

// handleHealthz handles GET /healthz
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	containers, err := s.reads.ListContainers(r.Context())
	if err != nil {
		s.logger.Error("failed to list containers", "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "failed to read containers")
		return
	}

	respondJSON(w, http.StatusOK, HealthzResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		Containers:    len(containers),
	})
}

// handleGetCaseInstances handles GET /server/queries/cases/instances
func (s *Server) handleGetCaseInstances(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pagination(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	statuses, err := intParams(r, "status")
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	owner := r.URL.Query().Get("owner")

	s.dispatch(w, r, "", "", func(ctx context.Context) (any, error) {
		return s.cases.GetCaseInstances(ctx, owner, statuses, page, pageSize)
	})
}

// handleGetCaseDefinitions handles GET /server/queries/cases
func (s *Server) handleGetCaseDefinitions(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pagination(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	filter := r.URL.Query().Get("filter")

	s.dispatch(w, r, "", "", func(ctx context.Context) (any, error) {
		return s.cases.GetCaseDefinitions(ctx, filter, page, pageSize)
	})
}

// handleGetCaseInstance handles GET /server/containers/{containerId}/cases/instances/{caseId}
func (s *Server) handleGetCaseInstance(w http.ResponseWriter, r *http.Request) {
	containerID := chi.URLParam(r, "containerId")
	caseID := chi.URLParam(r, "caseId")

	s.dispatch(w, r, containerID, caseID, func(ctx context.Context) (any, error) {
		return s.cases.GetCaseInstance(ctx, containerID, caseID)
	})
}

// handleListContainers handles GET /server/containers
func (s *Server) handleListContainers(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, "", "", func(ctx context.Context) (any, error) {
		containers, err := s.reads.ListContainers(ctx)
		if err != nil {
			return nil, err
		}
		return &model.ContainerList{Containers: containers}, nil
	})
}

// handleGetJobRequest handles GET /server/jobs/{jobId}
func (s *Server) handleGetJobRequest(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "jobId")
	jobID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid job id %q", raw))
		return
	}

	s.dispatch(w, r, "", raw, func(ctx context.Context) (any, error) {
		job, err := s.reads.JobRequest(ctx, jobID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, failure.NotFound(resourceJobRequest, raw)
		}
		return job, err
	})
}

// handleGetProcessInstance handles GET /server/containers/{containerId}/processes/instances/{processInstanceId}
func (s *Server) handleGetProcessInstance(w http.ResponseWriter, r *http.Request) {
	containerID := chi.URLParam(r, "containerId")
	raw := chi.URLParam(r, "processInstanceId")
	pid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid process instance id %q", raw))
		return
	}

	s.dispatch(w, r, containerID, raw, func(ctx context.Context) (any, error) {
		if _, err := s.reads.Container(ctx, containerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, failure.ContainerNotFound(containerID)
			}
			return nil, err
		}
		pi, err := s.reads.ProcessInstance(ctx, containerID, pid)
		if errors.Is(err, store.ErrNotFound) {
			return nil, failure.NotFound(resourceProcessInstance, raw)
		}
		return pi, err
	})
}

// handleFindProcessInstances handles GET /server/queries/processes/instances
func (s *Server) handleFindProcessInstances(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pagination(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s.dispatch(w, r, "", "", func(ctx context.Context) (any, error) {
		instances, err := s.reads.ProcessInstances(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}
		return &model.ProcessInstanceList{Instances: instances}, nil
	})
}

// dispatch runs query through the dispatcher and writes the envelope.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, containerID, entityID string, query func(context.Context) (any, error)) {
	ctx := r.Context()
	env := s.dispatcher.Dispatch(ctx, dispatch.RequestFromHTTP(r), containerID, entityID,
		dispatch.OperationFunc(func(negotiate.Variant, string, conversation.Header) (*dispatch.Result, error) {
			payload, err := query(ctx)
			if err != nil {
				return nil, err
			}
			return dispatch.OK(payload), nil
		}))
	if err := env.Write(w); err != nil {
		s.logger.Error("failed to write response", "error", err, "path", r.URL.Path)
	}
}

// pagination reads page (default 0) and pageSize (default 10).
func pagination(r *http.Request) (page, pageSize int, err error) {
	q := r.URL.Query()
	page, pageSize = 0, store.DefaultPageSize
	if v := q.Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 0 {
			return 0, 0, fmt.Errorf("invalid page %q", v)
		}
	}
	if v := q.Get("pageSize"); v != "" {
		if pageSize, err = strconv.Atoi(v); err != nil || pageSize <= 0 {
			return 0, 0, fmt.Errorf("invalid pageSize %q", v)
		}
	}
	return page, pageSize, nil
}

func intParams(r *http.Request, name string) ([]int, error) {
	values := r.URL.Query()[name]
	out := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", name, v)
		}
		out = append(out, n)
	}
	return out, nil
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error in the representation the caller asked for.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	env := &dispatch.Envelope{Status: statusCode, Variant: negotiate.FromHeader(r.Header), Message: message}
	if err := env.Write(w); err != nil {
		s.logger.Error("failed to write error response", "error", err)
	}
}
