package store

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_String(t *testing.T) {
	d := Date{Year: 2025, Month: time.January, Day: 8}
	if got := d.String(); got != "2025-01-08" {
		t.Errorf("String() = %q, want %q", got, "2025-01-08")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-01-08", Date{2025, time.January, 8}, false},
		{"2025-12-31", Date{2025, time.December, 31}, false},
		{"2025-02-30", Date{}, true},
		{"2025-1-8", Date{}, true},
		{"08/01/2025", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Due *Date `json:"due,omitempty"`
	}

	d := Date{2025, time.January, 8}
	data, err := json.Marshal(wrapper{Due: &d})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"due":"2025-01-08"}` {
		t.Errorf("marshal = %s", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"due":"2025-03-15"}`), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Due == nil || !w.Due.Equal(Date{2025, time.March, 15}) {
		t.Errorf("unmarshal = %v", w.Due)
	}

	if err := json.Unmarshal([]byte(`{"due":"not a date"}`), &w); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestDate_AddDaysAndBefore(t *testing.T) {
	d := Date{2025, time.January, 30}

	if got := d.AddDays(2); !got.Equal(Date{2025, time.February, 1}) {
		t.Errorf("AddDays(2) = %v", got)
	}
	if got := d.AddDays(-30); !got.Equal(Date{2024, time.December, 31}) {
		t.Errorf("AddDays(-30) = %v", got)
	}

	if !d.Before(Date{2025, time.February, 1}) {
		t.Error("Jan 30 should be before Feb 1")
	}
	if d.Before(Date{2025, time.January, 30}) {
		t.Error("a date is not before itself")
	}
	if d.Before(Date{2024, time.December, 31}) {
		t.Error("Jan 30 2025 is not before Dec 31 2024")
	}
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2025, time.January, 8, 23, 59, 59, 0, time.UTC)
	if got := DateOf(late); !got.Equal(Date{2025, time.January, 8}) {
		t.Errorf("DateOf = %v", got)
	}
}
