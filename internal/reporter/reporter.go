// Package reporter renders applications, discovered artifacts, orphan
// groups, and removal outcomes in the CLI's output formats.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/appsweep/internal/apps"
	"github.com/fenilsonani/appsweep/internal/discovery"
	"github.com/fenilsonani/appsweep/internal/ui/styles"
	"github.com/fenilsonani/appsweep/pkg/utils"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// ParseFormat converts a flag value into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "summary":
		return FormatSummary, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

type appReport struct {
	Name     string `json:"name" yaml:"name"`
	BundleID string `json:"bundle_id" yaml:"bundle_id"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`
	Path     string `json:"path" yaml:"path"`
}

type artifactReport struct {
	Path          string `json:"path" yaml:"path"`
	Category      string `json:"category" yaml:"category"`
	Size          int64  `json:"size" yaml:"size"`
	SizeFormatted string `json:"size_formatted" yaml:"size_formatted"`
	Protected     bool   `json:"protected" yaml:"protected"`
	Selected      bool   `json:"selected" yaml:"selected"`
}

type orphanReport struct {
	Identifier    string           `json:"identifier" yaml:"identifier"`
	Items         int              `json:"items" yaml:"items"`
	Size          int64            `json:"size" yaml:"size"`
	SizeFormatted string           `json:"size_formatted" yaml:"size_formatted"`
	LastAccess    string           `json:"last_access,omitempty" yaml:"last_access,omitempty"`
	Artifacts     []artifactReport `json:"artifacts" yaml:"artifacts"`
}

// ReportApps renders the installed-application list.
func (r *Reporter) ReportApps(applications []apps.Application) error {
	switch r.format {
	case FormatTable:
		return r.appsTable(applications)
	case FormatSummary:
		_, err := fmt.Fprintf(r.writer, "%d applications installed\n", len(applications))
		return err
	case FormatJSON, FormatYAML:
		report := struct {
			Timestamp string      `json:"timestamp" yaml:"timestamp"`
			Total     int         `json:"total" yaml:"total"`
			Apps      []appReport `json:"applications" yaml:"applications"`
		}{
			Timestamp: time.Now().Format(time.RFC3339),
			Total:     len(applications),
			Apps:      make([]appReport, 0, len(applications)),
		}
		for _, app := range applications {
			report.Apps = append(report.Apps, appReport{
				Name:     app.Name,
				BundleID: app.BundleID,
				Version:  app.Version,
				Path:     app.BundlePath,
			})
		}
		return r.encode(report)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) appsTable(applications []apps.Application) error {
	header := fmt.Sprintf("%-36s %-42s %s", "Name", "Bundle ID", "Version")
	fmt.Fprintln(r.writer, styles.BoldStyle.Render(header))
	fmt.Fprintln(r.writer, strings.Repeat("─", len(header)))

	for _, app := range applications {
		fmt.Fprintf(r.writer, "%-36s %-42s %s\n",
			truncate(app.Name, 36),
			truncate(app.BundleID, 42),
			app.Version)
	}

	fmt.Fprintf(r.writer, "\n%d applications\n", len(applications))
	return nil
}

// ReportArtifacts renders the artifacts discovered for a single application.
func (r *Reporter) ReportArtifacts(app apps.Application, artifacts []discovery.CandidateArtifact) error {
	switch r.format {
	case FormatTable:
		return r.artifactsTable(app, artifacts)
	case FormatSummary:
		var total int64
		protected := 0
		for _, a := range artifacts {
			total += a.Size
			if a.Protected {
				protected++
			}
		}
		_, err := fmt.Fprintf(r.writer, "%s: %d artifacts (%s), %d protected\n",
			app.Name, len(artifacts), utils.FormatBytes(total), protected)
		return err
	case FormatJSON, FormatYAML:
		report := struct {
			Timestamp string           `json:"timestamp" yaml:"timestamp"`
			App       appReport        `json:"application" yaml:"application"`
			Total     int64            `json:"total_size" yaml:"total_size"`
			Artifacts []artifactReport `json:"artifacts" yaml:"artifacts"`
		}{
			Timestamp: time.Now().Format(time.RFC3339),
			App: appReport{
				Name:     app.Name,
				BundleID: app.BundleID,
				Version:  app.Version,
				Path:     app.BundlePath,
			},
			Artifacts: make([]artifactReport, 0, len(artifacts)),
		}
		for _, a := range artifacts {
			report.Total += a.Size
			report.Artifacts = append(report.Artifacts, toArtifactReport(a))
		}
		return r.encode(report)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) artifactsTable(app apps.Application, artifacts []discovery.CandidateArtifact) error {
	fmt.Fprintln(r.writer, styles.TitleStyle.Render(fmt.Sprintf("Artifacts for %s", app.Name)))

	var total int64
	for _, a := range artifacts {
		marker := styles.CheckedBox()
		if a.Protected {
			marker = styles.LockedBox()
		} else if !a.Selected {
			marker = styles.UncheckedBox()
		}

		fmt.Fprintf(r.writer, " %s %-64s %10s  %s\n",
			marker,
			truncate(a.Path, 64),
			styles.SizeStyle.Render(utils.FormatBytes(a.Size)),
			styles.CategoryStyle.Render(a.Category.DisplayName()))
		total += a.Size
	}

	fmt.Fprintf(r.writer, "\nTotal: %d artifacts, %s\n", len(artifacts), utils.FormatBytes(total))
	return nil
}

// ReportOrphans renders grouped orphaned artifacts.
func (r *Reporter) ReportOrphans(groups []discovery.OrphanGroup) error {
	switch r.format {
	case FormatTable:
		return r.orphansTable(groups)
	case FormatSummary:
		var total int64
		for _, g := range groups {
			total += g.TotalSize
		}
		_, err := fmt.Fprintf(r.writer, "%d orphaned identifiers, %s reclaimable\n",
			len(groups), utils.FormatBytes(total))
		return err
	case FormatJSON, FormatYAML:
		report := struct {
			Timestamp string         `json:"timestamp" yaml:"timestamp"`
			Total     int64          `json:"total_size" yaml:"total_size"`
			Groups    []orphanReport `json:"orphans" yaml:"orphans"`
		}{
			Timestamp: time.Now().Format(time.RFC3339),
			Groups:    make([]orphanReport, 0, len(groups)),
		}
		for _, g := range groups {
			report.Total += g.TotalSize
			report.Groups = append(report.Groups, toOrphanReport(g))
		}
		return r.encode(report)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) orphansTable(groups []discovery.OrphanGroup) error {
	header := fmt.Sprintf("%-44s %6s %12s  %s", "Identifier", "Items", "Size", "Last Used")
	fmt.Fprintln(r.writer, styles.BoldStyle.Render(header))
	fmt.Fprintln(r.writer, strings.Repeat("─", len(header)))

	var total int64
	for _, g := range groups {
		lastUsed := styles.DimStyle.Render("unknown")
		if !g.LastAccess.IsZero() {
			lastUsed = g.LastAccess.Format("2006-01-02")
		}

		fmt.Fprintf(r.writer, "%-44s %6d %12s  %s\n",
			truncate(g.Identifier, 44),
			len(g.Artifacts),
			utils.FormatBytes(g.TotalSize),
			lastUsed)
		total += g.TotalSize
	}

	fmt.Fprintf(r.writer, "\nTotal: %s across %d identifiers\n", utils.FormatBytes(total), len(groups))
	return nil
}

func toArtifactReport(a discovery.CandidateArtifact) artifactReport {
	return artifactReport{
		Path:          a.Path,
		Category:      string(a.Category),
		Size:          a.Size,
		SizeFormatted: utils.FormatBytes(a.Size),
		Protected:     a.Protected,
		Selected:      a.Selected,
	}
}

func toOrphanReport(g discovery.OrphanGroup) orphanReport {
	report := orphanReport{
		Identifier:    g.Identifier,
		Items:         len(g.Artifacts),
		Size:          g.TotalSize,
		SizeFormatted: utils.FormatBytes(g.TotalSize),
		Artifacts:     make([]artifactReport, 0, len(g.Artifacts)),
	}
	if !g.LastAccess.IsZero() {
		report.LastAccess = g.LastAccess.Format(time.RFC3339)
	}
	for _, a := range g.Artifacts {
		report.Artifacts = append(report.Artifacts, toArtifactReport(a))
	}
	return report
}

func (r *Reporter) encode(report interface{}) error {
	switch r.format {
	case FormatJSON:
		encoder := json.NewEncoder(r.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case FormatYAML:
		encoder := yaml.NewEncoder(r.writer)
		defer encoder.Close()
		return encoder.Encode(report)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-(max-3):]
}

// SaveToFile writes a report rendered by fn to path.
func SaveToFile(path string, format OutputFormat, fn func(*Reporter) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return fn(New(file, format))
}
