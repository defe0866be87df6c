// Package casemgmt answers case queries against the read model.
package casemgmt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattjoyce/kiegate/internal/failure"
	"github.com/mattjoyce/kiegate/internal/model"
	"github.com/mattjoyce/kiegate/internal/store"
)

// Repository is the subset of the store the service reads from.
type Repository interface {
	Container(ctx context.Context, id string) (*model.Container, error)
	CaseDefinitions(ctx context.Context, filter string, page, pageSize int) ([]model.CaseDefinition, error)
	CaseInstances(ctx context.Context, statuses []int, page, pageSize int) ([]model.CaseInstance, error)
	CaseInstancesOwnedBy(ctx context.Context, owner string, statuses []int, page, pageSize int) ([]model.CaseInstance, error)
	CaseInstance(ctx context.Context, caseID string) (*model.CaseInstance, error)
}

// Service implements the case query operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func New(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger.With(slog.String("component", "casemgmt"))}
}

// GetCaseInstances lists case instances, narrowed to owner when one is given.
// No statuses means open cases only.
func (s *Service) GetCaseInstances(ctx context.Context, owner string, statuses []int, page, pageSize int) (*model.CaseInstanceList, error) {
	if len(statuses) == 0 {
		statuses = []int{model.CaseStatusOpen}
	}

	var (
		instances []model.CaseInstance
		err       error
	)
	if owner != "" {
		s.logger.Debug("looking up case instances by owner", "owner", owner, "status", statuses)
		instances, err = s.repo.CaseInstancesOwnedBy(ctx, owner, statuses, page, pageSize)
	} else {
		s.logger.Debug("looking up case instances", "status", statuses)
		instances, err = s.repo.CaseInstances(ctx, statuses, page, pageSize)
	}
	if err != nil {
		return nil, fmt.Errorf("case instances: %w", err)
	}
	return &model.CaseInstanceList{Instances: instances}, nil
}

// GetCaseDefinitions lists case definitions whose name or id matches filter.
func (s *Service) GetCaseDefinitions(ctx context.Context, filter string, page, pageSize int) (*model.CaseDefinitionList, error) {
	s.logger.Debug("looking up case definitions", "filter", filter)
	defs, err := s.repo.CaseDefinitions(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("case definitions: %w", err)
	}
	return &model.CaseDefinitionList{Definitions: defs}, nil
}

// GetCaseInstance returns a case hosted by containerID.
func (s *Service) GetCaseInstance(ctx context.Context, containerID, caseID string) (*model.CaseInstance, error) {
	if _, err := s.repo.Container(ctx, containerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, failure.ContainerNotFound(containerID)
		}
		return nil, fmt.Errorf("container %s: %w", containerID, err)
	}

	ci, err := s.repo.CaseInstance(ctx, caseID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, failure.CaseNotFound(caseID)
	}
	if err != nil {
		return nil, fmt.Errorf("case instance %s: %w", caseID, err)
	}
	// A case is only visible through the container that hosts it.
	if ci.ContainerID != containerID {
		return nil, failure.CaseNotFound(caseID)
	}
	return ci, nil
}
