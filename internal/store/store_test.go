package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjoyce/kiegate/internal/model"
	"github.com/mattjoyce/kiegate/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "kiegate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db)
}

func TestContainers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	list, err := s.ListContainers(ctx)
	require.NoError(t, err)
	assert.Nil(t, list, "empty store must report a nil container list")

	c := model.Container{
		ID:        "evaluation",
		ReleaseID: model.ReleaseID{GroupID: "org.kie", ArtifactID: "evaluation", Version: "1.0"},
		Status:    model.ContainerCreating,
	}
	require.NoError(t, s.PutContainer(ctx, c))

	c.Status = model.ContainerStarted
	require.NoError(t, s.PutContainer(ctx, c))

	got, err := s.Container(ctx, "evaluation")
	require.NoError(t, err)
	assert.Equal(t, model.ContainerStarted, got.Status)
	assert.Equal(t, "org.kie:evaluation:1.0", got.ReleaseID.String())

	_, err = s.Container(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err = s.ListContainers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCaseInstances(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	seed := []model.CaseInstance{
		{CaseID: "CASE-1", Owner: "john", Status: model.CaseStatusOpen, DefinitionID: "claims", ContainerID: "c1", StartedAt: base},
		{CaseID: "CASE-2", Owner: "mary", Status: model.CaseStatusOpen, DefinitionID: "claims", ContainerID: "c1", StartedAt: base.Add(time.Minute)},
		{CaseID: "CASE-3", Owner: "john", Status: model.CaseStatusClosed, DefinitionID: "claims", ContainerID: "c2", StartedAt: base.Add(2 * time.Minute)},
	}
	for _, ci := range seed {
		require.NoError(t, s.PutCaseInstance(ctx, ci))
	}

	open, err := s.CaseInstances(ctx, []int{model.CaseStatusOpen}, 0, 10)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "CASE-1", open[0].CaseID)

	all, err := s.CaseInstances(ctx, nil, 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	johns, err := s.CaseInstancesOwnedBy(ctx, "john", []int{model.CaseStatusOpen, model.CaseStatusClosed}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, johns, 2)

	paged, err := s.CaseInstances(ctx, nil, 1, 2)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "CASE-3", paged[0].CaseID)

	got, err := s.CaseInstance(ctx, "CASE-2")
	require.NoError(t, err)
	assert.Equal(t, "mary", got.Owner)
	assert.True(t, got.StartedAt.Equal(base.Add(time.Minute)))

	_, err = s.CaseInstance(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CaseInstancesOwnedBy(ctx, "", nil, 0, 10)
	assert.Error(t, err)
}

func TestCaseDefinitions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutCaseDefinition(ctx, model.CaseDefinition{ID: "insurance-claims.CarInsuranceClaimCase", Name: "CarInsuranceClaimCase", ContainerID: "c1"}))
	require.NoError(t, s.PutCaseDefinition(ctx, model.CaseDefinition{ID: "itorders.orderhardware", Name: "Order for IT hardware", Version: "1.0", ContainerID: "c1"}))

	all, err := s.CaseDefinitions(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := s.CaseDefinitions(ctx, "hardware", 0, 10)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "1.0", filtered[0].Version)
}

func TestProcessInstances(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutProcessInstance(ctx, model.ProcessInstance{ID: 7, ProcessID: "evaluation", ProcessName: "Evaluation", State: model.ProcessStateActive, ContainerID: "c1"}))

	got, err := s.ProcessInstance(ctx, "c1", 7)
	require.NoError(t, err)
	assert.Equal(t, model.ProcessStateActive, got.State)

	_, err = s.ProcessInstance(ctx, "c2", 7)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.PutProcessInstance(ctx, model.ProcessInstance{ID: 7, ProcessID: "evaluation", ProcessName: "Evaluation", State: model.ProcessStateCompleted, ContainerID: "c1"}))
	list, err := s.ProcessInstances(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.ProcessStateCompleted, list[0].State)
}

func TestJobRequests(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutJobRequest(ctx, model.JobRequest{ID: 42, Status: model.JobQueued, Command: "org.jbpm.executor.commands.PrintOutCommand"}))

	got, err := s.JobRequest(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, model.JobQueued, got.Status)
	assert.False(t, got.ScheduledDate.IsZero())

	require.NoError(t, s.PutJobRequest(ctx, model.JobRequest{ID: 42, Status: model.JobDone, Command: "org.jbpm.executor.commands.PrintOutCommand"}))
	got, err = s.JobRequest(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, model.JobDone, got.Status)

	_, err = s.JobRequest(ctx, 43)
	assert.ErrorIs(t, err, ErrNotFound)
}
