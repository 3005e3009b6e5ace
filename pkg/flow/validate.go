package flow

import (
	"fmt"
	"math"
)

// Validation messages for conditions without a count.
const (
	MsgMissingData = "invalid graph data: missing nodes or links"
	MsgNoNodes     = "no nodes found"
	MsgNoLinks     = "no links found"
)

// Report is the outcome of [Validate]. Errors block rendering; warnings are
// advisory and never affect IsValid.
type Report struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// HasWarnings reports whether any advisory problems were found.
func (r Report) HasWarnings() bool { return len(r.Warnings) > 0 }

func newReport() Report {
	return Report{Errors: []string{}, Warnings: []string{}}
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate inspects g for structural problems. It never panics and never
// returns an error; every problem lands in the report.
//
// Checks, in reporting order:
//
//  1. Missing data (nil graph, nil Nodes or nil Links): a single error,
//     no further checks.
//  2. Empty node list, empty link list: one error each.
//  3. Dangling links (an endpoint names no node): error with count.
//  4. Non-positive link values (including NaN): error with count.
//  5. Orphaned nodes (no incident link): warning with count.
//  6. Self-loops (source equals target): warning with count.
//
// Validate does not assume g came from [Ingest]; checks 3 and 4 cannot fire
// for pipeline output but guard graphs from other producers.
func Validate(g *Graph) Report {
	r := newReport()
	if g == nil || g.Nodes == nil || g.Links == nil {
		r.errorf("%s", MsgMissingData)
		return r
	}

	if len(g.Nodes) == 0 {
		r.errorf("%s", MsgNoNodes)
	}
	if len(g.Links) == 0 {
		r.errorf("%s", MsgNoLinks)
	}

	names := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		names[n.Name] = struct{}{}
	}

	linked := make(map[string]struct{}, len(g.Nodes))
	var dangling, nonPositive, selfLoops int
	for _, e := range g.Links {
		linked[e.Source] = struct{}{}
		linked[e.Target] = struct{}{}

		_, okS := names[e.Source]
		_, okT := names[e.Target]
		if !okS || !okT {
			dangling++
		}
		if e.Value <= 0 || math.IsNaN(e.Value) {
			nonPositive++
		}
		if e.IsSelfLoop() {
			selfLoops++
		}
	}

	var orphans int
	for _, n := range g.Nodes {
		if _, ok := linked[n.Name]; !ok {
			orphans++
		}
	}

	if dangling > 0 {
		r.errorf("%d link(s) reference missing nodes", dangling)
	}
	if nonPositive > 0 {
		r.errorf("%d link(s) with non-positive values", nonPositive)
	}
	if orphans > 0 {
		r.warnf("%d orphaned node(s) with no links", orphans)
	}
	if selfLoops > 0 {
		r.warnf("%d self-referencing link(s)", selfLoops)
	}

	r.IsValid = len(r.Errors) == 0
	return r
}
