package transform

import (
	"strings"

	"github.com/google/uuid"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
)

// JobOptions controls identity assignment for job rows.
type JobOptions struct {
	// FolderID is used when a record carries no OrganizationUnitId.
	FolderID int64
	// NewID generates row ids. Defaults to uuid.NewString.
	NewID func() string
	// NaturalKey uses the upstream Key as the row id when present.
	NaturalKey bool
}

// Jobs normalizes raw jobs. Unless NaturalKey is set every record receives a
// fresh id, so persisting the same upstream job twice yields two rows.
func Jobs(raw []model.RawJob, opts JobOptions) ([]model.Job, []Issue) {
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	out := make([]model.Job, 0, len(raw))
	var found issues

	for i := range raw {
		r := &raw[i]
		recordID := ""
		if r.Key != nil {
			recordID = string(*r.Key)
		}

		job := model.Job{
			ID:                            jobID(r, opts.NaturalKey, newID),
			FolderID:                      r.OrganizationUnitID,
			KeyUUID:                       text(r.Key),
			FolderKey:                     text(r.FolderKey),
			State:                         text(r.State),
			SubState:                      text(r.SubState),
			JobPriority:                   text(r.JobPriority),
			SpecificPriorityValue:         r.SpecificPriorityValue,
			Source:                        text(r.Source),
			SourceType:                    text(r.SourceType),
			BatchExecutionKey:             text(r.BatchExecutionKey),
			Info:                          text(r.Info),
			StartingScheduleID:            r.StartingScheduleID,
			ReleaseName:                   text(r.ReleaseName),
			Type:                          text(r.Type),
			InputFile:                     text(r.InputFile),
			EnvironmentVariables:          text(r.EnvironmentVariables),
			OutputFile:                    text(r.OutputFile),
			HostMachineName:               text(r.HostMachineName),
			HasMediaRecorded:              flag(r.HasMediaRecorded),
			HasVideoRecorded:              flag(r.HasVideoRecorded),
			PersistenceID:                 text(r.PersistenceID),
			ResumeVersion:                 r.ResumeVersion,
			StopStrategy:                  text(r.StopStrategy),
			RuntimeType:                   text(r.RuntimeType),
			RequiresUserInteraction:       flag(r.RequiresUserInteraction),
			ReleaseVersionID:              r.ReleaseVersionID,
			EntryPointPath:                text(r.EntryPointPath),
			OrganizationUnitID:            r.OrganizationUnitID,
			OrganizationUnitFQN:           text(r.OrganizationUnitFullyQualifiedName),
			Reference:                     text(r.Reference),
			ProcessType:                   text(r.ProcessType),
			TargetRuntime:                 text(r.TargetRuntime),
			ResumeOnSameContext:           flag(r.ResumeOnSameContext),
			LocalSystemAccount:            text(r.LocalSystemAccount),
			OrchestratorUserIdentity:      text(r.OrchestratorUserIdentity),
			RemoteControlAccess:           text(r.RemoteControlAccess),
			StartingTriggerID:             text(r.StartingTriggerID),
			MaxExpectedRunningTimeSeconds: r.MaxExpectedRunningTimeSeconds,
			ServerlessJobType:             text(r.ServerlessJobType),
			ParentJobKey:                  text(r.ParentJobKey),
			ErrorCode:                     text(r.ErrorCode),
			TraceID:                       text(r.TraceID),
			ParentSpanID:                  text(r.ParentSpanID),
			RootSpanID:                    text(r.RootSpanID),
			ProjectKey:                    text(r.ProjectKey),
			CreatorUserKey:                text(r.CreatorUserKey),
			ParentOperationID:             text(r.ParentOperationID),
			EnableAutopilotHealing:        flag(r.EnableAutopilotHealing),
			AutoHealStatus:                text(r.AutoHealStatus),
			AutopilotForRobots:            text(r.AutopilotForRobots),
		}
		if job.FolderID == nil && opts.FolderID != 0 {
			folderID := opts.FolderID
			job.FolderID = &folderID
		}

		job.StartTime = timestampField(&found, recordID, "StartTime", r.StartTime)
		job.EndTime = timestampField(&found, recordID, "EndTime", r.EndTime)
		job.CreationTime = timestampField(&found, recordID, "CreationTime", r.CreationTime)
		job.ResumeTime = timestampField(&found, recordID, "ResumeTime", r.ResumeTime)
		job.LastModificationTime = timestampField(&found, recordID, "LastModificationTime", r.LastModificationTime)

		job.ResourceOverwrites = jsonField(&found, recordID, "ResourceOverwrites", r.ResourceOverwrites)
		job.InputArguments = jsonField(&found, recordID, "InputArguments", r.InputArguments)
		job.OutputArguments = jsonField(&found, recordID, "OutputArguments", r.OutputArguments)
		job.ProfilingOptions = jsonField(&found, recordID, "ProfilingOptions", r.ProfilingOptions)
		job.FpsProperties = jsonField(&found, recordID, "FpsProperties", r.FpsProperties)
		job.ParentContext = jsonField(&found, recordID, "ParentContext", r.ParentContext)
		job.FpsContext = jsonField(&found, recordID, "FpsContext", r.FpsContext)

		out = append(out, job)
	}

	return out, found
}

func jobID(r *model.RawJob, natural bool, newID func() string) string {
	if natural && r.Key != nil {
		if key := strings.TrimSpace(string(*r.Key)); key != "" {
			return key
		}
	}
	return newID()
}

func jsonField(found *issues, recordID, field string, raw []byte) *string {
	s, err := jsonText(raw)
	if err != nil {
		found.add(recordID, field, err)
		return nil
	}
	return s
}
