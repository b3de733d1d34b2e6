package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0µs"},
		{999 * time.Microsecond, "999µs"},
		{1500 * time.Microsecond, "1.5ms"},
		{999 * time.Millisecond, "999.0ms"},
		{2500 * time.Millisecond, "2.5s"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Fatalf("FormatDuration(%v): got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestRunCollectsEveryPart(t *testing.T) {
	boom := errors.New("boom")
	rep := Run("Packet Decoder", "abc", time.Millisecond,
		Part{Name: "one", Run: func(in string) (string, error) { return strings.ToUpper(in), nil }},
		Part{Name: "two", Run: func(string) (string, error) { return "", boom }},
		Part{Name: "three", Run: func(in string) (string, error) { return in + in, nil }},
	)
	if len(rep.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(rep.Results))
	}
	if rep.Results[0].Output != "ABC" || rep.Results[2].Output != "abcabc" {
		t.Fatalf("unexpected outputs: %+v", rep.Results)
	}
	if !errors.Is(rep.Results[1].Err, boom) || !rep.Failed() {
		t.Fatalf("expected part two failure to be recorded")
	}

	var buf bytes.Buffer
	if err := rep.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	text := buf.String()
	for _, want := range []string{"Packet Decoder (input 1.0ms)", "ABC", "error: boom", "abcabc"} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
}

func TestWriteTimingFooter(t *testing.T) {
	rep := Report{
		Title: "Packet Decoder",
		Load:  2 * time.Millisecond,
		Total: 10 * time.Millisecond,
		Results: []Result{
			{Name: "one", Output: "16", Duration: 3 * time.Millisecond},
			{Name: "two", Output: "15", Duration: 1500 * time.Microsecond},
		},
	}
	if rep.Problem() != 4500*time.Microsecond {
		t.Fatalf("problem: got %v", rep.Problem())
	}
	if rep.Overhead() != 3500*time.Microsecond {
		t.Fatalf("overhead: got %v", rep.Overhead())
	}

	var buf bytes.Buffer
	if err := rep.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[3] != strings.Repeat("─", 60) {
		t.Fatalf("unexpected rule: %q", lines[3])
	}
	want := "Time - total: 10.0ms  problem: 4.5ms  input: 2.0ms  overhead: 3.5ms"
	if lines[4] != want {
		t.Fatalf("footer: got %q want %q", lines[4], want)
	}
}

func TestOverheadNeverNegative(t *testing.T) {
	rep := Report{
		Load:    time.Millisecond,
		Total:   time.Millisecond,
		Results: []Result{{Name: "one", Duration: 2 * time.Millisecond}},
	}
	if rep.Overhead() != 0 {
		t.Fatalf("overhead: got %v", rep.Overhead())
	}
	var buf bytes.Buffer
	if err := rep.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "total: 3.0ms") {
		t.Fatalf("total should cover load and parts:\n%s", buf.String())
	}
}
