package model

import "time"

// Job is the normalized jobs row. ID is generated locally unless the natural
// upstream key is configured, so reruns insert new rows by default.
type Job struct {
	ID                            string     `json:"id"                                db:"id"`
	FolderID                      *int64     `json:"folder_id"                         db:"folder_id"`
	KeyUUID                       *string    `json:"key_uuid"                          db:"key_uuid"`
	FolderKey                     *string    `json:"folder_key"                        db:"folder_key"`
	StartTime                     *time.Time `json:"start_time"                        db:"start_time"`
	EndTime                       *time.Time `json:"end_time"                          db:"end_time"`
	State                         *string    `json:"state"                             db:"state"`
	SubState                      *string    `json:"sub_state"                         db:"sub_state"`
	JobPriority                   *string    `json:"job_priority"                      db:"job_priority"`
	SpecificPriorityValue         *int64     `json:"specific_priority_value"           db:"specific_priority_value"`
	ResourceOverwrites            *string    `json:"resource_overwrites"               db:"resource_overwrites"`
	Source                        *string    `json:"source"                            db:"source"`
	SourceType                    *string    `json:"source_type"                       db:"source_type"`
	BatchExecutionKey             *string    `json:"batch_execution_key"               db:"batch_execution_key"`
	Info                          *string    `json:"info"                              db:"info"`
	CreationTime                  *time.Time `json:"creation_time"                     db:"creation_time"`
	StartingScheduleID            *int64     `json:"starting_schedule_id"              db:"starting_schedule_id"`
	ReleaseName                   *string    `json:"release_name"                      db:"release_name"`
	Type                          *string    `json:"type"                              db:"type"`
	InputArguments                *string    `json:"input_arguments"                   db:"input_arguments"`
	InputFile                     *string    `json:"input_file"                        db:"input_file"`
	EnvironmentVariables          *string    `json:"environment_variables"             db:"environment_variables"`
	OutputArguments               *string    `json:"output_arguments"                  db:"output_arguments"`
	OutputFile                    *string    `json:"output_file"                       db:"output_file"`
	HostMachineName               *string    `json:"host_machine_name"                 db:"host_machine_name"`
	HasMediaRecorded              bool       `json:"has_media_recorded"                db:"has_media_recorded"`
	HasVideoRecorded              bool       `json:"has_video_recorded"                db:"has_video_recorded"`
	PersistenceID                 *string    `json:"persistence_id"                    db:"persistence_id"`
	ResumeVersion                 *int64     `json:"resume_version"                    db:"resume_version"`
	StopStrategy                  *string    `json:"stop_strategy"                     db:"stop_strategy"`
	RuntimeType                   *string    `json:"runtime_type"                      db:"runtime_type"`
	RequiresUserInteraction       bool       `json:"requires_user_interaction"         db:"requires_user_interaction"`
	ReleaseVersionID              *int64     `json:"release_version_id"                db:"release_version_id"`
	EntryPointPath                *string    `json:"entry_point_path"                  db:"entry_point_path"`
	OrganizationUnitID            *int64     `json:"organization_unit_id"              db:"organization_unit_id"`
	OrganizationUnitFQN           *string    `json:"organization_unit_fqn"             db:"organization_unit_fqn"`
	Reference                     *string    `json:"reference"                         db:"reference"`
	ProcessType                   *string    `json:"process_type"                      db:"process_type"`
	TargetRuntime                 *string    `json:"target_runtime"                    db:"target_runtime"`
	ProfilingOptions              *string    `json:"profiling_options"                 db:"profiling_options"`
	ResumeOnSameContext           bool       `json:"resume_on_same_context"            db:"resume_on_same_context"`
	LocalSystemAccount            *string    `json:"local_system_account"              db:"local_system_account"`
	OrchestratorUserIdentity      *string    `json:"orchestrator_user_identity"        db:"orchestrator_user_identity"`
	RemoteControlAccess           *string    `json:"remote_control_access"             db:"remote_control_access"`
	StartingTriggerID             *string    `json:"starting_trigger_id"               db:"starting_trigger_id"`
	MaxExpectedRunningTimeSeconds *int64     `json:"max_expected_running_time_seconds" db:"max_expected_running_time_seconds"`
	ServerlessJobType             *string    `json:"serverless_job_type"               db:"serverless_job_type"`
	ParentJobKey                  *string    `json:"parent_job_key"                    db:"parent_job_key"`
	ResumeTime                    *time.Time `json:"resume_time"                       db:"resume_time"`
	LastModificationTime          *time.Time `json:"last_modification_time"            db:"last_modification_time"`
	ErrorCode                     *string    `json:"error_code"                        db:"error_code"`
	FpsProperties                 *string    `json:"fps_properties"                    db:"fps_properties"`
	TraceID                       *string    `json:"trace_id"                          db:"trace_id"`
	ParentSpanID                  *string    `json:"parent_span_id"                    db:"parent_span_id"`
	RootSpanID                    *string    `json:"root_span_id"                      db:"root_span_id"`
	ParentContext                 *string    `json:"parent_context"                    db:"parent_context"`
	ProjectKey                    *string    `json:"project_key"                       db:"project_key"`
	CreatorUserKey                *string    `json:"creator_user_key"                  db:"creator_user_key"`
	ParentOperationID             *string    `json:"parent_operation_id"               db:"parent_operation_id"`
	EnableAutopilotHealing        bool       `json:"enable_autopilot_healing"          db:"enable_autopilot_healing"`
	FpsContext                    *string    `json:"fps_context"                       db:"fps_context"`
	AutoHealStatus                *string    `json:"auto_heal_status"                  db:"auto_heal_status"`
	AutopilotForRobots            *string    `json:"autopilot_for_robots"              db:"autopilot_for_robots"`
}
