// Package model holds the wire types served by the gateway and decoded by
// the client. Every type marshals to both JSON and XML.
package model

import (
	"encoding/xml"
	"time"
)

// ContainerStatus is the lifecycle state of a deployed container.
type ContainerStatus string

const (
	ContainerCreating    ContainerStatus = "CREATING"
	ContainerStarted     ContainerStatus = "STARTED"
	ContainerFailed      ContainerStatus = "FAILED"
	ContainerDisposing   ContainerStatus = "DISPOSING"
	ContainerStopped     ContainerStatus = "STOPPED"
	ContainerDeactivated ContainerStatus = "DEACTIVATED"
)

// Transitional reports whether the container is still being created or disposed.
func (s ContainerStatus) Transitional() bool {
	return s == ContainerCreating || s == ContainerDisposing
}

// ReleaseID is the group:artifact:version coordinate of a container's kjar.
type ReleaseID struct {
	GroupID    string `json:"group-id" xml:"group-id"`
	ArtifactID string `json:"artifact-id" xml:"artifact-id"`
	Version    string `json:"version" xml:"version"`
}

func (r ReleaseID) String() string {
	return r.GroupID + ":" + r.ArtifactID + ":" + r.Version
}

// Container is a deployed unit hosting cases and processes.
type Container struct {
	XMLName   xml.Name        `json:"-" xml:"kie-container"`
	ID        string          `json:"container-id" xml:"container-id,attr"`
	Alias     string          `json:"container-alias,omitempty" xml:"container-alias,omitempty"`
	ReleaseID ReleaseID       `json:"release-id" xml:"release-id"`
	Status    ContainerStatus `json:"status" xml:"status,attr"`
}

// ContainerList is the payload of the container listing.
// A nil Containers slice means the server reported no containers at all.
type ContainerList struct {
	XMLName    xml.Name    `json:"-" xml:"kie-containers"`
	Containers []Container `json:"kie-container,omitempty" xml:"kie-container"`
}

// Case instance status values.
const (
	CaseStatusOpen      = 1
	CaseStatusClosed    = 2
	CaseStatusCancelled = 3
)

// CaseInstance is a single case.
type CaseInstance struct {
	XMLName      xml.Name   `json:"-" xml:"case-instance"`
	CaseID       string     `json:"case-id" xml:"case-id"`
	Description  string     `json:"case-description,omitempty" xml:"case-description,omitempty"`
	Owner        string     `json:"case-owner" xml:"case-owner"`
	Status       int        `json:"case-status" xml:"case-status"`
	DefinitionID string     `json:"case-definition-id" xml:"case-definition-id"`
	ContainerID  string     `json:"container-id" xml:"container-id"`
	StartedAt    time.Time  `json:"case-started-at" xml:"case-started-at"`
	CompletedAt  *time.Time `json:"case-completed-at,omitempty" xml:"case-completed-at,omitempty"`
}

// CaseInstanceList is a page of case instances.
type CaseInstanceList struct {
	XMLName   xml.Name       `json:"-" xml:"case-instance-list"`
	Instances []CaseInstance `json:"instances" xml:"case-instance"`
}

// CaseDefinition describes a deployable case type.
type CaseDefinition struct {
	XMLName     xml.Name `json:"-" xml:"case-definition"`
	ID          string   `json:"case-id" xml:"case-id"`
	Name        string   `json:"name" xml:"name"`
	Version     string   `json:"version,omitempty" xml:"version,omitempty"`
	ContainerID string   `json:"container-id" xml:"container-id"`
}

// CaseDefinitionList is a page of case definitions.
type CaseDefinitionList struct {
	XMLName     xml.Name         `json:"-" xml:"case-definition-list"`
	Definitions []CaseDefinition `json:"definitions" xml:"case-definition"`
}

// Process instance states.
const (
	ProcessStatePending   = 0
	ProcessStateActive    = 1
	ProcessStateCompleted = 2
	ProcessStateAborted   = 3
	ProcessStateSuspended = 4
)

// ProcessInstance is a running or finished process.
type ProcessInstance struct {
	XMLName     xml.Name  `json:"-" xml:"process-instance"`
	ID          int64     `json:"process-instance-id" xml:"process-instance-id"`
	ProcessID   string    `json:"process-id" xml:"process-id"`
	ProcessName string    `json:"process-name" xml:"process-name"`
	State       int       `json:"process-instance-state" xml:"state"`
	ContainerID string    `json:"container-id" xml:"container-id"`
	Initiator   string    `json:"initiator,omitempty" xml:"initiator,omitempty"`
	StartedAt   time.Time `json:"start-date" xml:"start-date"`
}

// ProcessInstanceList is a page of process instances.
type ProcessInstanceList struct {
	XMLName   xml.Name          `json:"-" xml:"process-instance-list"`
	Instances []ProcessInstance `json:"process-instance" xml:"process-instance"`
}

// JobStatus is the executor status of an asynchronous job request.
type JobStatus string

const (
	JobQueued    JobStatus = "QUEUED"
	JobRunning   JobStatus = "RUNNING"
	JobRetrying  JobStatus = "RETRYING"
	JobDone      JobStatus = "DONE"
	JobError     JobStatus = "ERROR"
	JobCancelled JobStatus = "CANCELLED"
)

// JobRequest is an executor job as reported by the job endpoint.
type JobRequest struct {
	XMLName       xml.Name  `json:"-" xml:"request-info-instance"`
	ID            int64     `json:"request-instance-id" xml:"request-instance-id"`
	Status        JobStatus `json:"request-status" xml:"request-status"`
	Command       string    `json:"request-command" xml:"request-command"`
	BusinessKey   string    `json:"request-business-key,omitempty" xml:"request-business-key,omitempty"`
	Retries       int       `json:"request-retries" xml:"request-retries"`
	ContainerID   string    `json:"request-container-id,omitempty" xml:"request-container-id,omitempty"`
	ScheduledDate time.Time `json:"request-scheduled-date" xml:"request-scheduled-date"`
}
