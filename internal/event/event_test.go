package event

import (
	"testing"
)

func TestKey(t *testing.T) {
	evt := &Event{SeminarID: "macro_seminar", Title: "Talk X", Date: "2025-11-04"}
	want := "macro_seminar|Talk X|2025-11-04"
	if got := evt.Key(); got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestDedupe_FirstWins(t *testing.T) {
	first := &Event{SeminarID: "imfs", Title: "Policy Lecture", Date: "2025-11-27", Speaker: "Jane Doe"}
	second := &Event{SeminarID: "imfs", Title: "Policy Lecture", Date: "2025-11-27", Speaker: "Someone Else"}
	other := &Event{SeminarID: "qep", Title: "Policy Lecture", Date: "2025-11-27", Speaker: "Jane Doe"}

	unique := Dedupe([]*Event{first, second, other})

	if len(unique) != 2 {
		t.Fatalf("Dedupe returned %d events, want 2", len(unique))
	}
	if unique[0] != first {
		t.Error("Dedupe should keep the first occurrence")
	}
	if unique[0].Speaker != "Jane Doe" {
		t.Errorf("surviving speaker = %q, want the first-seen value", unique[0].Speaker)
	}
	if unique[1] != other {
		t.Error("events from a different seminar are not duplicates")
	}
}

func TestSortByDate(t *testing.T) {
	a := &Event{SeminarID: "a", Title: "late", Date: "2025-12-01"}
	b := &Event{SeminarID: "b", Title: "early", Date: "2025-11-04"}
	c := &Event{SeminarID: "c", Title: "tie one", Date: "2025-11-18"}
	d := &Event{SeminarID: "d", Title: "tie two", Date: "2025-11-18"}

	events := []*Event{a, c, b, d}
	SortByDate(events)

	for i := 1; i < len(events); i++ {
		if events[i-1].Date > events[i].Date {
			t.Fatalf("events not sorted at %d: %s > %s", i, events[i-1].Date, events[i].Date)
		}
	}

	// Equal dates keep their input order.
	if events[1] != c || events[2] != d {
		t.Errorf("tie order not stable: got %q then %q", events[1].Title, events[2].Title)
	}
}
