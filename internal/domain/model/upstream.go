package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexString decodes any JSON scalar as text. Objects and arrays are kept as
// compact JSON. Use it as *FlexString so null and absent stay nil.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*f = ""
		return nil
	}
	switch trimmed[0] {
	case '"':
		s, err := strconv.Unquote(string(trimmed))
		if err != nil {
			var decoded string
			if jerr := json.Unmarshal(trimmed, &decoded); jerr != nil {
				return jerr
			}
			s = decoded
		}
		*f = FlexString(s)
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return err
		}
		*f = FlexString(buf.String())
	default:
		*f = FlexString(trimmed)
	}
	return nil
}

// Ptr returns the value as *string, nil-safe.
func (f *FlexString) Ptr() *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}

// ODataPage is the envelope returned by OData collection endpoints.
type ODataPage[T any] struct {
	Count *int64 `json:"@odata.count,omitempty"`
	Value []T    `json:"value"`
}

// RawQueueItem is a queue item as returned by the upstream API.
type RawQueueItem struct {
	ID                        *int64      `json:"Id"`
	QueueDefinitionID         *int64      `json:"QueueDefinitionId"`
	Key                       *FlexString `json:"Key"`
	Status                    *FlexString `json:"Status"`
	Reference                 *FlexString `json:"Reference"`
	Priority                  *FlexString `json:"Priority"`
	DeferDate                 *FlexString `json:"DeferDate"`
	StartProcessing           *FlexString `json:"StartProcessing"`
	EndProcessing             *FlexString `json:"EndProcessing"`
	SecondsInPreviousAttempts *int64      `json:"SecondsInPreviousAttempts"`
	RetryNumber               *int64      `json:"RetryNumber"`
	CreationTime              *FlexString `json:"CreationTime"`
	OrganizationUnitID        *int64      `json:"OrganizationUnitId"`
}

// RawJob is a job as returned by the upstream API.
type RawJob struct {
	Key                                *FlexString     `json:"Key"`
	FolderKey                          *FlexString     `json:"FolderKey"`
	StartTime                          *FlexString     `json:"StartTime"`
	EndTime                            *FlexString     `json:"EndTime"`
	State                              *FlexString     `json:"State"`
	SubState                           *FlexString     `json:"SubState"`
	JobPriority                        *FlexString     `json:"JobPriority"`
	SpecificPriorityValue              *int64          `json:"SpecificPriorityValue"`
	ResourceOverwrites                 json.RawMessage `json:"ResourceOverwrites"`
	Source                             *FlexString     `json:"Source"`
	SourceType                         *FlexString     `json:"SourceType"`
	BatchExecutionKey                  *FlexString     `json:"BatchExecutionKey"`
	Info                               *FlexString     `json:"Info"`
	CreationTime                       *FlexString     `json:"CreationTime"`
	StartingScheduleID                 *int64          `json:"StartingScheduleId"`
	ReleaseName                        *FlexString     `json:"ReleaseName"`
	Type                               *FlexString     `json:"Type"`
	InputArguments                     json.RawMessage `json:"InputArguments"`
	InputFile                          *FlexString     `json:"InputFile"`
	EnvironmentVariables               *FlexString     `json:"EnvironmentVariables"`
	OutputArguments                    json.RawMessage `json:"OutputArguments"`
	OutputFile                         *FlexString     `json:"OutputFile"`
	HostMachineName                    *FlexString     `json:"HostMachineName"`
	HasMediaRecorded                   *bool           `json:"HasMediaRecorded"`
	HasVideoRecorded                   *bool           `json:"HasVideoRecorded"`
	PersistenceID                      *FlexString     `json:"PersistenceId"`
	ResumeVersion                      *int64          `json:"ResumeVersion"`
	StopStrategy                       *FlexString     `json:"StopStrategy"`
	RuntimeType                        *FlexString     `json:"RuntimeType"`
	RequiresUserInteraction            *bool           `json:"RequiresUserInteraction"`
	ReleaseVersionID                   *int64          `json:"ReleaseVersionId"`
	EntryPointPath                     *FlexString     `json:"EntryPointPath"`
	OrganizationUnitID                 *int64          `json:"OrganizationUnitId"`
	OrganizationUnitFullyQualifiedName *FlexString     `json:"OrganizationUnitFullyQualifiedName"`
	Reference                          *FlexString     `json:"Reference"`
	ProcessType                        *FlexString     `json:"ProcessType"`
	TargetRuntime                      *FlexString     `json:"TargetRuntime"`
	ProfilingOptions                   json.RawMessage `json:"ProfilingOptions"`
	ResumeOnSameContext                *bool           `json:"ResumeOnSameContext"`
	LocalSystemAccount                 *FlexString     `json:"LocalSystemAccount"`
	OrchestratorUserIdentity           *FlexString     `json:"OrchestratorUserIdentity"`
	RemoteControlAccess                *FlexString     `json:"RemoteControlAccess"`
	StartingTriggerID                  *FlexString     `json:"StartingTriggerId"`
	MaxExpectedRunningTimeSeconds      *int64          `json:"MaxExpectedRunningTimeSeconds"`
	ServerlessJobType                  *FlexString     `json:"ServerlessJobType"`
	ParentJobKey                       *FlexString     `json:"ParentJobKey"`
	ResumeTime                         *FlexString     `json:"ResumeTime"`
	LastModificationTime               *FlexString     `json:"LastModificationTime"`
	ErrorCode                          *FlexString     `json:"ErrorCode"`
	FpsProperties                      json.RawMessage `json:"FpsProperties"`
	TraceID                            *FlexString     `json:"TraceId"`
	ParentSpanID                       *FlexString     `json:"ParentSpanId"`
	RootSpanID                         *FlexString     `json:"RootSpanId"`
	ParentContext                      json.RawMessage `json:"ParentContext"`
	ProjectKey                         *FlexString     `json:"ProjectKey"`
	CreatorUserKey                     *FlexString     `json:"CreatorUserKey"`
	ParentOperationID                  *FlexString     `json:"ParentOperationId"`
	EnableAutopilotHealing             *bool           `json:"EnableAutopilotHealing"`
	FpsContext                         json.RawMessage `json:"FpsContext"`
	AutoHealStatus                     *FlexString     `json:"AutoHealStatus"`
	AutopilotForRobots                 *FlexString     `json:"AutopilotForRobots"`
}
