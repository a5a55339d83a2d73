package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/bft-labs/spritebench/internal/adapters/metrics"
	"github.com/bft-labs/spritebench/pkg/spritebench"
)

// report is the serialized form of a benchmark run.
type report struct {
	TargetFPS float64     `json:"target_fps" yaml:"target_fps"`
	Results   []reportRow `json:"results" yaml:"results"`
}

type reportRow struct {
	Test          string  `json:"test" yaml:"test"`
	Source        string  `json:"source" yaml:"source"`
	Backend       string  `json:"backend" yaml:"backend"`
	Generator     string  `json:"generator" yaml:"generator"`
	RunID         string  `json:"run_id" yaml:"run_id"`
	Status        string  `json:"status" yaml:"status"`
	ObjectCount   float64 `json:"object_count" yaml:"object_count"`
	ComputeTimeMs float64 `json:"compute_time_ms" yaml:"compute_time_ms"`
	Probes        int     `json:"probes" yaml:"probes"`
	Exact         bool    `json:"exact" yaml:"exact"`
	DurationMs    int64   `json:"duration_ms" yaml:"duration_ms"`
	Error         string  `json:"error,omitempty" yaml:"error,omitempty"`
}

func newReport(targetFPS float64, outcomes []spritebench.Outcome) report {
	r := report{TargetFPS: targetFPS, Results: make([]reportRow, 0, len(outcomes))}
	for _, o := range outcomes {
		row := reportRow{
			Test:          o.TestKey.String(),
			Source:        o.Source,
			Backend:       o.Backend,
			Generator:     o.Generator,
			RunID:         o.RunID,
			Status:        metrics.Outcome(o.Err),
			ObjectCount:   o.Result.ObjectCount,
			ComputeTimeMs: o.Result.ComputeTimeMs,
			Probes:        o.Result.Probes,
			Exact:         o.Result.Exact,
			DurationMs:    o.Duration.Milliseconds(),
		}
		if o.Err != nil {
			row.Error = o.Err.Error()
		}
		r.Results = append(r.Results, row)
	}
	return r
}

func writeReport(w io.Writer, format string, r report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "", "table":
		_, err := fmt.Fprintln(w, renderTable(r))
		return err
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	okStyle     = cellStyle.Foreground(lipgloss.Color("10"))
	failStyle   = cellStyle.Foreground(lipgloss.Color("9"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

const (
	colTest = iota
	colObjects
	colCompute
	colProbes
	colStatus
)

func renderTable(r report) string {
	rows := make([][]string, 0, len(r.Results))
	for _, row := range r.Results {
		objects, compute, probes := "-", "-", "-"
		if row.Error == "" {
			objects = strconv.FormatFloat(row.ObjectCount, 'f', 1, 64)
			compute = strconv.FormatFloat(row.ComputeTimeMs, 'f', 1, 64)
			probes = strconv.Itoa(row.Probes)
		}
		status := row.Status
		if row.Exact {
			status = "exact"
		}
		rows = append(rows, []string{row.Test, objects, compute, probes, status})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("TEST", "OBJECTS", "COMPUTE MS", "PROBES", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == colStatus && rows[row][colStatus] == metrics.OutcomeOK,
				col == colStatus && rows[row][colStatus] == "exact":
				return okStyle
			case col == colStatus:
				return failStyle
			case col == colObjects, col == colCompute, col == colProbes:
				return numberStyle
			}
			return cellStyle
		})

	title := titleStyle.Render(fmt.Sprintf("Capacity at %s fps", strconv.FormatFloat(r.TargetFPS, 'f', -1, 64)))
	out := lipgloss.JoinVertical(lipgloss.Left, title, t.String())
	for _, row := range r.Results {
		if row.Error != "" {
			out += "\n" + failStyle.UnsetPadding().Render(row.Test+": "+row.Error)
		}
	}
	return out
}
