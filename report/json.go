// ABOUTME: JSON reporter for collection results
// ABOUTME: Emits the final heap in the same shape the JSON parser reads

package report

import (
	"context"
	"encoding/json"
	"io"

	"github.com/prateek/g1sim/gc"
	"github.com/prateek/g1sim/heap"
)

// JSON writes the final object table as a JSON document.
type JSON struct {
	W      io.Writer
	Indent bool
}

type jsonReport struct {
	HeapSize  int          `json:"heap_size"`
	BlockSize int          `json:"block_size"`
	Objects   []jsonObject `json:"objects"`
	Stats     gc.Stats     `json:"stats"`
}

type jsonObject struct {
	ID    heap.ObjID `json:"id"`
	Start int        `json:"start"`
	End   int        `json:"end"`
	Moved bool       `json:"moved,omitempty"`
}

// Report implements gc.Reporter
func (j *JSON) Report(_ context.Context, res *gc.Result) error {
	out := jsonReport{
		HeapSize:  res.HeapSize,
		BlockSize: res.BlockSize,
		Objects:   make([]jsonObject, 0, res.Heap.Len()),
		Stats:     res.Stats,
	}
	for _, obj := range res.Heap.Objects() {
		_, moved := res.Moved(obj.ID)
		out.Objects = append(out.Objects, jsonObject{ID: obj.ID, Start: obj.Start, End: obj.End, Moved: moved})
	}

	enc := json.NewEncoder(j.W)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
