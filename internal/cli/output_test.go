package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sbruckner/seminar-events/internal/event"
)

func sampleResult() *RunResult {
	events := []*event.Event{
		{
			SeminarID:   "finance_seminar",
			SeminarName: "Finance Seminar Series",
			Title:       "Talk X",
			Speaker:     "Dr. A",
			Date:        "2025-11-04",
			TimeInfo:    "14:15–15:45",
			Location:    "HoF E.01",
			DetailsURL:  "https://example.org/talk-x",
		},
		{
			SeminarID:   "imfs",
			SeminarName: "IMFS Policy Lecture",
			Title:       "Policy Lecture",
			Date:        "2025-11-27",
		},
	}
	return &RunResult{
		ScrapedAt:  time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC),
		Sources:    []string{"finance_seminar", "imfs"},
		EventCount: len(events),
		Events:     events,
	}
}

func TestWriteOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "2025-11-04  Talk X - Dr. A (Finance Seminar Series)") {
		t.Errorf("missing event line in:\n%s", out)
	}
	if !strings.Contains(out, "2025-11-27  Policy Lecture (IMFS Policy Lecture)") {
		t.Errorf("speakerless event line malformed in:\n%s", out)
	}
	if !strings.Contains(out, "Total: 2 events across 2 series") {
		t.Errorf("missing total line in:\n%s", out)
	}
	if strings.Contains(out, "Location:") {
		t.Error("detail lines should only appear in verbose mode")
	}
}

func TestWriteOutput_TextVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, true); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Time: 14:15–15:45", "Location: HoF E.01", "Details: https://example.org/talk-x"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteOutput_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	result := &RunResult{Events: []*event.Event{}}
	if err := WriteOutput(&buf, result, FormatText, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No events found.") {
		t.Errorf("empty run should say so, got:\n%s", buf.String())
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatJSON, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	var decoded RunResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.EventCount != 2 || len(decoded.Events) != 2 {
		t.Errorf("round trip lost events: %+v", decoded)
	}
	if decoded.Events[0].Title != "Talk X" {
		t.Errorf("first event = %+v", decoded.Events[0])
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), OutputFormat("xml"), false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
