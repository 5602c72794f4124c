// ABOUTME: YAML parser for heap descriptions
// ABOUTME: Same document shape as the JSON format, with short pointer pairs allowed

package heapdump

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/prateek/g1sim/heap"
)

// YAML is a parser for YAML heap descriptions:
//
//	heap_size: 160
//	objects:
//	  - {id: 1, start: 0, end: 4}
//	pointers:
//	  - [1, 2]
//	roots: [1]
type YAML struct{}

type yamlDump struct {
	HeapSize int            `yaml:"heap_size"`
	Objects  []yamlObject   `yaml:"objects"`
	Pointers [][]heap.ObjID `yaml:"pointers"`
	Roots    []heap.ObjID   `yaml:"roots"`
}

type yamlObject struct {
	ID    *heap.ObjID `yaml:"id"`
	Start *int        `yaml:"start"`
	End   *int        `yaml:"end"`
}

// Name identifies the format
func (p *YAML) Name() string { return "yaml" }

// CanParse checks for a top-level objects key in the preview
func (p *YAML) CanParse(r io.Reader) bool {
	buf := make([]byte, detectSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false
	}
	if n == 0 {
		return false
	}

	var test map[string]interface{}
	if err := yaml.Unmarshal(buf[:n], &test); err != nil {
		// The preview of a large document may stop mid-node
		return n == len(buf) && (bytes.HasPrefix(buf, []byte("objects:")) || bytes.Contains(buf, []byte("\nobjects:")))
	}
	_, ok := test["objects"]
	return ok
}

// Parse reads the YAML dump
func (p *YAML) Parse(r io.Reader) (*Dump, error) {
	var doc yamlDump
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}

	dump := &Dump{
		Size:  doc.HeapSize,
		Heap:  make([]heap.Object, 0, len(doc.Objects)),
		Edges: make([]heap.PointerEdge, 0, len(doc.Pointers)),
		Root:  heap.Roots{IDs: doc.Roots},
	}

	for i, obj := range doc.Objects {
		if obj.ID == nil {
			return nil, fmt.Errorf("object at index %d missing id", i)
		}
		if obj.Start == nil || obj.End == nil {
			return nil, fmt.Errorf("object %d missing start or end address", *obj.ID)
		}
		dump.Heap = append(dump.Heap, heap.Object{ID: *obj.ID, Start: *obj.Start, End: *obj.End})
	}
	for i, pair := range doc.Pointers {
		if len(pair) != 2 {
			return nil, fmt.Errorf("pointer at index %d: want [source, target], got %v", i, pair)
		}
		dump.Edges = append(dump.Edges, heap.PointerEdge{Source: pair[0], Target: pair[1]})
	}
	if dump.Root.IDs == nil {
		dump.Root.IDs = []heap.ObjID{}
	}

	return dump, nil
}

func init() {
	Register(&YAML{})
}
