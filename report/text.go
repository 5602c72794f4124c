// ABOUTME: Plain-text reporter for collection results
// ABOUTME: Prints the final object table and, optionally, the region table

// Package report renders the outcome of a collection cycle.
package report

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prateek/g1sim/gc"
)

const (
	colorMoved = "\x1b[32m"
	colorReset = "\x1b[0m"
)

// Text writes one "id start end" line per surviving object.
type Text struct {
	W       io.Writer
	Color   bool // highlight relocated objects with ANSI colors
	Regions bool // append the region table
	Stats   bool // append cycle statistics
}

// Report implements gc.Reporter
func (t *Text) Report(_ context.Context, res *gc.Result) error {
	for _, obj := range res.Heap.Objects() {
		line := fmt.Sprintf("%d %d %d", obj.ID, obj.Start, obj.End)
		if rel, moved := res.Moved(obj.ID); moved {
			line += fmt.Sprintf(" (moved from %d-%d)", rel.From.Start, rel.From.End)
			if t.Color {
				line = colorMoved + line + colorReset
			}
		}
		if _, err := fmt.Fprintln(t.W, line); err != nil {
			return err
		}
	}

	if t.Regions {
		if err := t.writeRegions(res); err != nil {
			return err
		}
	}
	if t.Stats {
		s := res.Stats
		_, err := fmt.Fprintf(t.W, "\nobjects=%d live=%d swept=%d reclaimed=%dB moved=%d moved_bytes=%dB\n",
			s.Objects, s.Live, s.Swept, s.ReclaimedBytes, s.Moved, s.MovedBytes)
		return err
	}
	return nil
}

func (t *Text) writeRegions(res *gc.Result) error {
	tw := tabwriter.NewWriter(t.W, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\nregion\tbase\tfree\ttotal\tobjects\n")
	for _, r := range res.Regions.Regions() {
		ids := make([]uint64, 0, len(r.Objects()))
		for _, o := range r.Objects() {
			ids = append(ids, uint64(o.ID))
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%v\n", r.Index, r.Base(), r.Free, r.Total, ids)
	}
	return tw.Flush()
}
