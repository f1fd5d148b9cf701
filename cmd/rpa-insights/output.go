package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
)

func writeSummary(w io.Writer, r *model.SyncResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "mode:\t%s\n", r.Mode)
	fmt.Fprintf(tw, "state:\t%s\n", r.State)
	if r.AbortReason != "" {
		fmt.Fprintf(tw, "reason:\t%s\n", r.AbortReason)
	}
	fmt.Fprintf(tw, "folders:\t%d (%d failed)\n", len(r.Partitions), len(r.FailedPartitions()))
	fmt.Fprintf(tw, "fetched:\t%d\n", r.RecordsFetched)
	fmt.Fprintf(tw, "persisted:\t%d\n", r.RecordsPersisted)
	if r.CountBefore != nil && r.CountAfter != nil {
		fmt.Fprintf(tw, "queue item rows:\t%d -> %d\n", *r.CountBefore, *r.CountAfter)
	}
	fmt.Fprintf(tw, "duration:\t%s\n", r.Duration().Round(time.Millisecond))

	for _, p := range r.FailedPartitions() {
		fmt.Fprintf(tw, "failed folder:\t%s (%d)\t%s\t%v\n", p.FolderName, p.FolderID, p.FailedStage, p.Err)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func writeConfiguration(w io.Writer, c model.Configuration) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "id:\t%d\n", c.ID)
	fmt.Fprintf(tw, "endpoint:\t%s\n", c.Endpoint)
	fmt.Fprintf(tw, "client_id:\t%s\n", c.ClientID)
	fmt.Fprintf(tw, "client_secret:\t%s\n", c.ClientSecret)
	fmt.Fprintf(tw, "organization:\t%s\n", c.Organization)
	fmt.Fprintf(tw, "tenant:\t%s\n", c.Tenant)
	fmt.Fprintf(tw, "scope:\t%s\n", c.Scope)
	if !c.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "created_at:\t%s\n", c.CreatedAt.UTC().Format(time.RFC3339))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}
