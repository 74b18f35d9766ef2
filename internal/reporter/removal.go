package reporter

import (
	"fmt"
	"time"

	"github.com/fenilsonani/appsweep/internal/discovery"
	"github.com/fenilsonani/appsweep/internal/remover"
	"github.com/fenilsonani/appsweep/internal/ui/styles"
	"github.com/fenilsonani/appsweep/pkg/utils"
)

// RemovalRequest describes a removal batch before it runs.
type RemovalRequest struct {
	App       string
	Artifacts []discovery.CandidateArtifact
	Mode      remover.Mode
	DryRun    bool
}

// Selected returns the artifacts the user opted in to remove.
func (req *RemovalRequest) Selected() []discovery.CandidateArtifact {
	selected := make([]discovery.CandidateArtifact, 0, len(req.Artifacts))
	for _, a := range req.Artifacts {
		if a.Selected {
			selected = append(selected, a)
		}
	}
	return selected
}

// SelectedSize returns the total size of the selected artifacts.
func (req *RemovalRequest) SelectedSize() int64 {
	var total int64
	for _, a := range req.Artifacts {
		if a.Selected {
			total += a.Size
		}
	}
	return total
}

// RemovalSummary aggregates the outcomes of a removal batch.
type RemovalSummary struct {
	App       string
	Mode      remover.Mode
	DryRun    bool
	Attempted int
	Removed   int
	Failed    int
	FreedSize int64
	Outcomes  []remover.Outcome
}

// Summarize folds per-item outcomes into batch totals. Freed size counts
// only items that were actually removed.
func Summarize(req *RemovalRequest, outcomes []remover.Outcome) *RemovalSummary {
	sizes := make(map[string]int64, len(req.Artifacts))
	for _, a := range req.Artifacts {
		sizes[a.Path] = a.Size
	}

	summary := &RemovalSummary{
		App:       req.App,
		Mode:      req.Mode,
		DryRun:    req.DryRun,
		Attempted: len(outcomes),
		Outcomes:  outcomes,
	}
	for _, outcome := range outcomes {
		if outcome.Success {
			summary.Removed++
			summary.FreedSize += sizes[outcome.Path]
		} else {
			summary.Failed++
		}
	}
	return summary
}

// Errors returns the removal errors in outcome order.
func (s *RemovalSummary) Errors() []*remover.RemovalError {
	var errs []*remover.RemovalError
	for _, outcome := range s.Outcomes {
		if outcome.Err != nil {
			errs = append(errs, outcome.Err)
		}
	}
	return errs
}

type outcomeReport struct {
	Path    string `json:"path" yaml:"path"`
	Success bool   `json:"success" yaml:"success"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ReportRemoval renders a removal batch result.
func (r *Reporter) ReportRemoval(summary *RemovalSummary) error {
	switch r.format {
	case FormatTable:
		return r.removalTable(summary)
	case FormatSummary:
		return r.removalSummary(summary)
	case FormatJSON, FormatYAML:
		report := struct {
			Timestamp          string          `json:"timestamp" yaml:"timestamp"`
			App                string          `json:"application" yaml:"application"`
			Mode               string          `json:"mode" yaml:"mode"`
			DryRun             bool            `json:"dry_run" yaml:"dry_run"`
			Attempted          int             `json:"attempted" yaml:"attempted"`
			Removed            int             `json:"removed" yaml:"removed"`
			Failed             int             `json:"failed" yaml:"failed"`
			FreedSize          int64           `json:"freed_size" yaml:"freed_size"`
			FreedSizeFormatted string          `json:"freed_size_formatted" yaml:"freed_size_formatted"`
			Outcomes           []outcomeReport `json:"outcomes" yaml:"outcomes"`
		}{
			Timestamp:          time.Now().Format(time.RFC3339),
			App:                summary.App,
			Mode:               summary.Mode.String(),
			DryRun:             summary.DryRun,
			Attempted:          summary.Attempted,
			Removed:            summary.Removed,
			Failed:             summary.Failed,
			FreedSize:          summary.FreedSize,
			FreedSizeFormatted: utils.FormatBytes(summary.FreedSize),
			Outcomes:           make([]outcomeReport, 0, len(summary.Outcomes)),
		}
		for _, outcome := range summary.Outcomes {
			item := outcomeReport{Path: outcome.Path, Success: outcome.Success}
			if outcome.Err != nil {
				item.Reason = outcome.Err.Reason.String()
				item.Error = outcome.Err.Error()
			}
			report.Outcomes = append(report.Outcomes, item)
		}
		return r.encode(report)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) removalTable(summary *RemovalSummary) error {
	for _, outcome := range summary.Outcomes {
		if outcome.Success {
			fmt.Fprintf(r.writer, " %s %s\n",
				styles.SuccessStyle.Render("✓"),
				truncate(outcome.Path, 72))
		} else {
			fmt.Fprintf(r.writer, " %s %s\n   %s\n",
				styles.ErrorStyle.Render("✗"),
				truncate(outcome.Path, 72),
				styles.DimStyle.Render(outcome.Err.UserMessage()))
		}
	}
	fmt.Fprintln(r.writer)
	return r.removalSummary(summary)
}

func (r *Reporter) removalSummary(summary *RemovalSummary) error {
	verb := "Removed"
	if summary.DryRun {
		verb = "Would remove"
		fmt.Fprintln(r.writer, styles.WarningStyle.Render("Dry run - nothing was deleted"))
	}

	fmt.Fprintf(r.writer, "%s %d of %d items, %s freed",
		verb, summary.Removed, summary.Attempted, utils.FormatBytes(summary.FreedSize))
	if summary.Mode == remover.ModeTrash && !summary.DryRun {
		fmt.Fprint(r.writer, " (moved to trash)")
	}
	fmt.Fprintln(r.writer)

	if errs := summary.Errors(); len(errs) > 0 {
		fmt.Fprintln(r.writer)
		fmt.Fprint(r.writer, remover.FormatErrorSummary(errs))
	}
	return nil
}
