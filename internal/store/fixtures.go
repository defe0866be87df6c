package store

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mattjoyce/kiegate/internal/model"
)

// Fixtures is a snapshot of server state to seed the read model with. Keys
// follow the wire names of the model types.
type Fixtures struct {
	Containers       []model.Container       `json:"containers"`
	CaseDefinitions  []model.CaseDefinition  `json:"case-definitions"`
	CaseInstances    []model.CaseInstance    `json:"case-instances"`
	ProcessInstances []model.ProcessInstance `json:"process-instances"`
	JobRequests      []model.JobRequest      `json:"job-requests"`
}

// ParseFixtures decodes a YAML (or JSON) fixture document.
func ParseFixtures(data []byte) (*Fixtures, error) {
	// Decode generically first so the json tags on the model types apply.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize fixtures: %w", err)
	}
	var f Fixtures
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &f, nil
}

// Load upserts every fixture. It stops at the first failing row.
func (s *Store) Load(ctx context.Context, f *Fixtures) error {
	for _, c := range f.Containers {
		if err := s.PutContainer(ctx, c); err != nil {
			return fmt.Errorf("container %s: %w", c.ID, err)
		}
	}
	for _, d := range f.CaseDefinitions {
		if err := s.PutCaseDefinition(ctx, d); err != nil {
			return fmt.Errorf("case definition %s: %w", d.ID, err)
		}
	}
	for _, ci := range f.CaseInstances {
		if err := s.PutCaseInstance(ctx, ci); err != nil {
			return fmt.Errorf("case instance %s: %w", ci.CaseID, err)
		}
	}
	for _, pi := range f.ProcessInstances {
		if err := s.PutProcessInstance(ctx, pi); err != nil {
			return fmt.Errorf("process instance %d: %w", pi.ID, err)
		}
	}
	for _, j := range f.JobRequests {
		if err := s.PutJobRequest(ctx, j); err != nil {
			return fmt.Errorf("job request %d: %w", j.ID, err)
		}
	}
	return nil
}
