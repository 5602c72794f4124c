// ABOUTME: Integration tests for the complete g1sim system
// ABOUTME: Loads heap descriptions from testdata and runs full collection cycles

package g1sim_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/prateek/g1sim/gc"
	"github.com/prateek/g1sim/heap"
	"github.com/prateek/g1sim/heapdump"
	"github.com/prateek/g1sim/report"
)

var wantFinalHeap = []heap.Object{
	{ID: 1, Start: 10, End: 14},
	{ID: 3, Start: 30, End: 37},
	{ID: 5, Start: 15, End: 17},
}

func TestEndToEndAllFormats(t *testing.T) {
	files := []string{
		"testdata/example.json",
		"testdata/example.yaml",
		"testdata/example.txt",
	}

	for _, path := range files {
		t.Run(path, func(t *testing.T) {
			dump, err := heapdump.OpenFile(path)
			if err != nil {
				t.Fatalf("Failed to parse dump: %v", err)
			}

			res, err := gc.New().Collect(context.Background(), dump)
			if err != nil {
				t.Fatalf("Collect failed: %v", err)
			}

			got := res.Heap.Objects()
			if len(got) != len(wantFinalHeap) {
				t.Fatalf("Expected %d objects, got %v", len(wantFinalHeap), got)
			}
			for i := range got {
				if got[i] != wantFinalHeap[i] {
					t.Errorf("Object %d: expected %+v, got %+v", wantFinalHeap[i].ID, wantFinalHeap[i], got[i])
				}
			}
		})
	}
}

func TestEndToEndStats(t *testing.T) {
	dump, err := heapdump.OpenFile("testdata/example.json")
	if err != nil {
		t.Fatalf("Failed to parse dump: %v", err)
	}

	res, err := gc.New().Collect(context.Background(), dump)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	want := gc.Stats{
		Objects:        5,
		Live:           3,
		Swept:          2,
		ReclaimedBytes: 15,
		EmptyRegions:   13,
		Moved:          3,
		MovedBytes:     16,
	}
	if res.Stats != want {
		t.Errorf("Expected stats %+v, got %+v", want, res.Stats)
	}

	// Regions 0, 2 and 4 were vacated by the moves but never used as targets
	for _, idx := range []int{0, 2, 4} {
		if !res.Regions.Region(idx).Empty() {
			t.Errorf("Expected region %d to be empty, free=%d", idx, res.Regions.Region(idx).Free)
		}
	}
}

func TestEndToEndReport(t *testing.T) {
	dump, err := heapdump.OpenFile("testdata/example.txt")
	if err != nil {
		t.Fatalf("Failed to parse dump: %v", err)
	}

	var buf bytes.Buffer
	if err := gc.Run(context.Background(), dump, &report.Text{W: &buf}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := "1 10 14 (moved from 0-4)\n" +
		"3 30 37 (moved from 20-27)\n" +
		"5 15 17 (moved from 40-42)\n"
	if buf.String() != want {
		t.Errorf("Unexpected report:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestEndToEndExplain(t *testing.T) {
	dump, err := heapdump.OpenFile("testdata/example.json")
	if err != nil {
		t.Fatalf("Failed to parse dump: %v", err)
	}

	paths := heap.PathsToRoots(dump.Pointers(), dump.Roots(), 5, 3)
	if len(paths) != 1 {
		t.Fatalf("Expected 1 path, got %v", paths)
	}

	want := []heap.ObjID{5, 3, 1}
	for i, id := range paths[0].IDs {
		if id != want[i] {
			t.Errorf("Expected path %v, got %v", want, paths[0].IDs)
			break
		}
	}
}
