package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/pipeline"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/schedule"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunOutput summarizes a scrape or update run across sites.
type RunOutput struct {
	Season  string             `json:"season"`
	Players int                `json:"players"`
	Failed  int                `json:"failed"`
	Results []*pipeline.Result `json:"results"`
}

// ScheduleOutput summarizes one schedule export.
type ScheduleOutput struct {
	Source  string           `json:"source"`
	Matches int              `json:"matches"`
	Record  schedule.Record  `json:"record"`
	Series  []schedule.Point `json:"series"`
}

// WriteRunOutput writes a run summary in the specified format.
func WriteRunOutput(w io.Writer, out *RunOutput, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, out)
	case FormatText:
		return writeRunText(w, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteScheduleOutput writes a schedule summary in the specified format.
func WriteScheduleOutput(w io.Writer, out *ScheduleOutput, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, out)
	case FormatText:
		return writeScheduleText(w, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeRunText(w io.Writer, out *RunOutput) error {
	fmt.Fprintf(w, "Season %s\n\n", out.Season)
	for _, r := range out.Results {
		if r.Error != "" {
			fmt.Fprintf(w, "  %-16s FAILED: %s\n", r.Site, r.Error)
			continue
		}
		fmt.Fprintf(w, "  %-16s %2d players", r.Site, r.Players)
		if r.Strategy != "" {
			fmt.Fprintf(w, "  (%s)", r.Strategy)
		}
		fmt.Fprintf(w, "  stats %d  rated %d\n", r.StatsMatched, r.Rated)
	}

	fmt.Fprintf(w, "\nTotal: %d players across %d sites", out.Players, len(out.Results)-out.Failed)
	if out.Failed > 0 {
		fmt.Fprintf(w, ", %d failed", out.Failed)
	}
	fmt.Fprintln(w)
	return nil
}

func writeScheduleText(w io.Writer, out *ScheduleOutput) error {
	fmt.Fprintf(w, "%s: %d matches, record %s\n", out.Source, out.Matches, out.Record)
	for _, p := range out.Series {
		date := "--"
		if !p.Date.IsZero() {
			date = p.Date.Format("01-02-2006")
		}
		fmt.Fprintf(w, "  %s  %+d\n", date, p.Score)
	}
	return nil
}
