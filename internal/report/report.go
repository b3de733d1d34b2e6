// Package report times puzzle parts and renders their results.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Part is one named computation over the puzzle input.
type Part struct {
	Name string
	Run  func(input string) (string, error)
}

// Result is the outcome of one part.
type Result struct {
	Name     string        `json:"name"`
	Output   string        `json:"output,omitempty"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// Report collects the results of a run. Total is the wall time of the
// whole run as measured by the caller; when it is unset the footer shows
// load plus part time.
type Report struct {
	Title   string
	Load    time.Duration
	Total   time.Duration
	Results []Result
}

const ruleWidth = 60

// Run executes each part in order. A failing part does not stop the others.
func Run(title, input string, load time.Duration, parts ...Part) Report {
	rep := Report{Title: title, Load: load, Results: make([]Result, 0, len(parts))}
	for _, p := range parts {
		start := time.Now()
		out, err := p.Run(input)
		rep.Results = append(rep.Results, Result{
			Name:     p.Name,
			Output:   out,
			Err:      err,
			Duration: time.Since(start),
		})
	}
	return rep
}

// Failed reports whether any part returned an error.
func (r Report) Failed() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return true
		}
	}
	return false
}

// Problem sums the time spent inside the parts.
func (r Report) Problem() time.Duration {
	var sum time.Duration
	for _, res := range r.Results {
		sum += res.Duration
	}
	return sum
}

// Overhead is the part of Total spent neither loading input nor running
// parts. It never goes below zero.
func (r Report) Overhead() time.Duration {
	rest := r.total() - r.Problem() - r.Load
	if rest < 0 {
		return 0
	}
	return rest
}

func (r Report) total() time.Duration {
	if floor := r.Load + r.Problem(); r.Total < floor {
		return floor
	}
	return r.Total
}

// Write renders the report as aligned text followed by a timing footer.
func (r Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s (input %s)\n", r.Title, FormatDuration(r.Load)); err != nil {
		return err
	}
	for _, res := range r.Results {
		out := res.Output
		if res.Err != nil {
			out = "error: " + res.Err.Error()
		}
		if _, err := fmt.Fprintf(w, "  %-10s %-8s %s\n", res.Name, FormatDuration(res.Duration), out); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("─", ruleWidth)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Time - total: %s  problem: %s  input: %s  overhead: %s\n",
		FormatDuration(r.total()), FormatDuration(r.Problem()), FormatDuration(r.Load), FormatDuration(r.Overhead()))
	return err
}

// FormatDuration renders d as whole microseconds below 1ms and with one
// decimal place in ms or s above that.
func FormatDuration(d time.Duration) string {
	micros := d.Microseconds()
	switch {
	case micros < 1_000:
		return fmt.Sprintf("%dµs", micros)
	case micros < 1_000_000:
		return fmt.Sprintf("%.1fms", float64(micros)/1_000)
	default:
		return fmt.Sprintf("%.1fs", float64(micros)/1_000_000)
	}
}
