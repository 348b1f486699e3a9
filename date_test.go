package stocklog

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-01-10", want: NewDate(2025, time.January, 10)},
		{in: "2025-1-9", want: NewDate(2025, time.January, 9)},
		{in: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{in: "2025-13-01", wantErr: true},
		{in: "not-a-date", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q): want error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	a := day("2025-03-01")
	b := day("2025-03-02")
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before: %s vs %s", a, b)
	}
	if !b.After(a) || a.After(b) {
		t.Errorf("After: %s vs %s", a, b)
	}
	if a.Before(a) || a.After(a) {
		t.Error("a date must not be before or after itself")
	}
}

func TestDateAddCrossesMonthEnd(t *testing.T) {
	got := day("2025-01-31").Add(1)
	if want := day("2025-02-01"); got != want {
		t.Errorf("Add(1) = %s, want %s", got, want)
	}
	got = day("2025-03-01").Add(-1)
	if want := day("2025-02-28"); got != want {
		t.Errorf("Add(-1) = %s, want %s", got, want)
	}
}

func TestDateMonthKey(t *testing.T) {
	if got := day("2025-07-04").MonthKey(); got != "2025-07" {
		t.Errorf("MonthKey() = %q, want %q", got, "2025-07")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	in := day("2025-12-31")
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2025-12-31"` {
		t.Errorf("marshal = %s", data)
	}
	var out Date
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}

func TestZeroDate(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Error("zero value must report IsZero")
	}
	if day("2025-01-01").IsZero() {
		t.Error("real date must not report IsZero")
	}
}
