package data

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/SKpacteazy/rpa-insights-backend/internal/data/database"
	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	apperrors "github.com/SKpacteazy/rpa-insights-backend/internal/errors"
)

const jobsTable = "jobs"

var jobColumns = []string{
	"id",
	"folder_id",
	"key_uuid",
	"folder_key",
	"start_time",
	"end_time",
	"state",
	"sub_state",
	"job_priority",
	"specific_priority_value",
	"resource_overwrites",
	"source",
	"source_type",
	"batch_execution_key",
	"info",
	"creation_time",
	"starting_schedule_id",
	"release_name",
	"type",
	"input_arguments",
	"input_file",
	"environment_variables",
	"output_arguments",
	"output_file",
	"host_machine_name",
	"has_media_recorded",
	"has_video_recorded",
	"persistence_id",
	"resume_version",
	"stop_strategy",
	"runtime_type",
	"requires_user_interaction",
	"release_version_id",
	"entry_point_path",
	"organization_unit_id",
	"organization_unit_fqn",
	"reference",
	"process_type",
	"target_runtime",
	"profiling_options",
	"resume_on_same_context",
	"local_system_account",
	"orchestrator_user_identity",
	"remote_control_access",
	"starting_trigger_id",
	"max_expected_running_time_seconds",
	"serverless_job_type",
	"parent_job_key",
	"resume_time",
	"last_modification_time",
	"error_code",
	"fps_properties",
	"trace_id",
	"parent_span_id",
	"root_span_id",
	"parent_context",
	"project_key",
	"creator_user_key",
	"parent_operation_id",
	"enable_autopilot_healing",
	"fps_context",
	"auto_heal_status",
	"autopilot_for_robots",
}

// Every non-key column is overwritten on conflict.
var jobUpsertSQL = mustUpsert(database.UpsertSpec{
	Table:     jobsTable,
	Columns:   jobColumns,
	Returning: insertedReturning,
})

// JobRepoOptions configures a JobRepo.
type JobRepoOptions struct {
	BatchSize int
	Logger    *slog.Logger
}

// JobRepo persists jobs keyed by their assigned id.
type JobRepo struct {
	DB        *sql.DB
	batchSize int
	logger    *slog.Logger
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *sql.DB, opts JobRepoOptions) *JobRepo {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &JobRepo{
		DB:        db,
		batchSize: opts.BatchSize,
		logger:    logger.With("component", "job_repo"),
	}
}

// Upsert writes jobs, overwriting every column of an existing id.
func (r *JobRepo) Upsert(ctx context.Context, jobs []model.Job) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}

	stats, err := runBatchUpsert(ctx, r.DB, batchUpsert[model.Job]{
		Query:     jobUpsertSQL,
		Rows:      jobs,
		Args:      jobArgs,
		BatchSize: r.batchSize,
	})
	if err != nil {
		return 0, apperrors.Persistence(apperrors.MapDBError(err), "upsert jobs")
	}

	r.logger.DebugContext(ctx, "jobs upserted", "inserted", stats.Inserted, "updated", stats.Updated)
	return stats.Total(), nil
}

// Count returns the current number of job rows.
func (r *JobRepo) Count(ctx context.Context) (int64, error) {
	n, err := countRows(ctx, r.DB, database.BuildCount(jobsTable))
	if err != nil {
		return 0, apperrors.Persistence(apperrors.MapDBError(err), "count jobs")
	}
	return n, nil
}

// jobArgs must stay in jobColumns order.
func jobArgs(j *model.Job) []any {
	return []any{
		j.ID,
		j.FolderID,
		j.KeyUUID,
		j.FolderKey,
		j.StartTime,
		j.EndTime,
		j.State,
		j.SubState,
		j.JobPriority,
		j.SpecificPriorityValue,
		j.ResourceOverwrites,
		j.Source,
		j.SourceType,
		j.BatchExecutionKey,
		j.Info,
		j.CreationTime,
		j.StartingScheduleID,
		j.ReleaseName,
		j.Type,
		j.InputArguments,
		j.InputFile,
		j.EnvironmentVariables,
		j.OutputArguments,
		j.OutputFile,
		j.HostMachineName,
		j.HasMediaRecorded,
		j.HasVideoRecorded,
		j.PersistenceID,
		j.ResumeVersion,
		j.StopStrategy,
		j.RuntimeType,
		j.RequiresUserInteraction,
		j.ReleaseVersionID,
		j.EntryPointPath,
		j.OrganizationUnitID,
		j.OrganizationUnitFQN,
		j.Reference,
		j.ProcessType,
		j.TargetRuntime,
		j.ProfilingOptions,
		j.ResumeOnSameContext,
		j.LocalSystemAccount,
		j.OrchestratorUserIdentity,
		j.RemoteControlAccess,
		j.StartingTriggerID,
		j.MaxExpectedRunningTimeSeconds,
		j.ServerlessJobType,
		j.ParentJobKey,
		j.ResumeTime,
		j.LastModificationTime,
		j.ErrorCode,
		j.FpsProperties,
		j.TraceID,
		j.ParentSpanID,
		j.RootSpanID,
		j.ParentContext,
		j.ProjectKey,
		j.CreatorUserKey,
		j.ParentOperationID,
		j.EnableAutopilotHealing,
		j.FpsContext,
		j.AutoHealStatus,
		j.AutopilotForRobots,
	}
}
