package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/pipeline"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/schedule"
)

func sampleRun() *RunOutput {
	return &RunOutput{
		Season:  "2025-26",
		Players: 11,
		Failed:  1,
		Results: []*pipeline.Result{
			{Site: "ucla", School: "UCLA Bruins", Strategy: "anchor", Players: 11, StatsMatched: 9, Rated: 8},
			{Site: "penn_state", Error: "no players extracted"},
		},
	}
}

func TestWriteRunOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRunOutput(&buf, sampleRun(), FormatText); err != nil {
		t.Fatal(err)
	}
	text := buf.String()

	for _, want := range []string{"Season 2025-26", "ucla", "(anchor)", "FAILED: no players extracted", "1 failed"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestWriteRunOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRunOutput(&buf, sampleRun(), FormatJSON); err != nil {
		t.Fatal(err)
	}

	var decoded RunOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Season != "2025-26" || len(decoded.Results) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Results[1].Error != "no players extracted" {
		t.Errorf("Error = %q", decoded.Results[1].Error)
	}
}

func TestWriteRunOutput_UnknownFormat(t *testing.T) {
	if err := WriteRunOutput(&bytes.Buffer{}, sampleRun(), OutputFormat("yaml")); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestWriteScheduleOutput_Text(t *testing.T) {
	out := &ScheduleOutput{
		Source:  "schedule.csv",
		Matches: 3,
		Record:  schedule.Record{Wins: 2, Losses: 1},
		Series: []schedule.Point{
			{Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), Score: 1},
			{Date: time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC), Score: 2},
			{Date: time.Date(2026, 1, 24, 0, 0, 0, 0, time.UTC), Score: 1},
		},
	}

	var buf bytes.Buffer
	if err := WriteScheduleOutput(&buf, out, FormatText); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	if !strings.Contains(text, "record 2-1") {
		t.Errorf("output missing record:\n%s", text)
	}
	if !strings.Contains(text, "01-17-2026  +2") {
		t.Errorf("output missing series step:\n%s", text)
	}
}
