// Defines progress reporting interfaces and implementations.

package export

import (
	"fmt"
	"io"
	"time"
)

// Stats contains statistics about an export run.
type Stats struct {
	Databases  int           `json:"databases"`
	Rows       int           `json:"rows"`
	Files      int           `json:"files"`
	SoftErrors int           `json:"soft_errors"`
	Duration   time.Duration `json:"duration"`
}

// ProgressReporter is the interface for reporting export progress.
type ProgressReporter interface {
	OnStart(databases int)
	OnProgress(current int, item string)
	OnWarning(msg string)
	OnComplete(stats Stats)
}

// CLIProgress writes progress to stdout/stderr.
type CLIProgress struct {
	Out io.Writer
	Err io.Writer
}

// OnStart is called once child databases have been discovered.
func (p *CLIProgress) OnStart(databases int) {
	_, _ = fmt.Fprintf(p.Out, "Found %d child databases\n\n", databases)
}

// OnProgress is called for each database processed.
func (p *CLIProgress) OnProgress(current int, item string) {
	_, _ = fmt.Fprintf(p.Out, "[%d] %s\n", current, item)
}

// OnWarning is called for non-fatal issues.
func (p *CLIProgress) OnWarning(msg string) {
	_, _ = fmt.Fprintf(p.Err, "Warning: %s\n", msg)
}

// OnComplete is called when the export finishes.
func (p *CLIProgress) OnComplete(stats Stats) {
	_, _ = fmt.Fprintf(p.Out, "\nComplete!\n")
	_, _ = fmt.Fprintf(p.Out, "---------\n")
	_, _ = fmt.Fprintf(p.Out, "Databases: %d\n", stats.Databases)
	_, _ = fmt.Fprintf(p.Out, "Rows:      %d\n", stats.Rows)
	_, _ = fmt.Fprintf(p.Out, "Files:     %d\n", stats.Files)
	if stats.SoftErrors > 0 {
		_, _ = fmt.Fprintf(p.Out, "Warnings:  %d\n", stats.SoftErrors)
	}
	_, _ = fmt.Fprintf(p.Out, "Duration:  %s\n", stats.Duration.Round(time.Millisecond))
}

// NullProgress discards all progress updates.
type NullProgress struct{}

// OnStart is called once child databases have been discovered.
func (p *NullProgress) OnStart(databases int) {}

// OnProgress is called for each database processed.
func (p *NullProgress) OnProgress(current int, item string) {}

// OnWarning is called for non-fatal issues.
func (p *NullProgress) OnWarning(msg string) {}

// OnComplete is called when the export finishes.
func (p *NullProgress) OnComplete(stats Stats) {}
