// ABOUTME: Line-oriented text parser for heap descriptions
// ABOUTME: One directive per line: heap, object, pointer, or root

package heapdump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/google/shlex"

	"github.com/prateek/g1sim/heap"
)

// Text parses descriptions such as
//
//	# heap of 160 bytes
//	heap 160
//	object 1 0 4     # id start end
//	object 2 5 14
//	pointer 1 2      # source target
//	root 1
//
// Words are split shell-style, so "#" starts a comment.
type Text struct{}

var textDirectives = map[string]int{
	"heap":    1,
	"object":  3,
	"pointer": 2,
	"root":    -1, // one or more ids
}

// Name identifies the format
func (p *Text) Name() string { return "text" }

// CanParse checks that the first directive in the preview is known
func (p *Text) CanParse(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words, err := shlex.Split(scanner.Text())
		if err != nil {
			return false
		}
		if len(words) == 0 {
			continue
		}
		_, ok := textDirectives[words[0]]
		return ok
	}
	return false
}

// Parse reads the text dump
func (p *Text) Parse(r io.Reader) (*Dump, error) {
	dump := &Dump{Root: heap.Roots{IDs: []heap.ObjID{}}}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		words, err := shlex.Split(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(words) == 0 {
			continue
		}

		directive, args := words[0], words[1:]
		want, ok := textDirectives[directive]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown directive %q", lineNo, directive)
		}
		if (want < 0 && len(args) == 0) || (want >= 0 && len(args) != want) {
			return nil, fmt.Errorf("line %d: %s takes %s, got %d", lineNo, directive, arity(want), len(args))
		}

		nums := make([]int, len(args))
		for i, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("line %d: %q is not a non-negative integer", lineNo, a)
			}
			nums[i] = n
		}

		switch directive {
		case "heap":
			dump.Size = nums[0]
		case "object":
			dump.Heap = append(dump.Heap, heap.Object{ID: heap.ObjID(nums[0]), Start: nums[1], End: nums[2]})
		case "pointer":
			dump.Edges = append(dump.Edges, heap.PointerEdge{Source: heap.ObjID(nums[0]), Target: heap.ObjID(nums[1])})
		case "root":
			for _, n := range nums {
				dump.Root.IDs = append(dump.Root.IDs, heap.ObjID(n))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return dump, nil
}

func arity(n int) string {
	switch n {
	case -1:
		return "at least 1 argument"
	case 1:
		return "1 argument"
	}
	return strconv.Itoa(n) + " arguments"
}

func init() {
	Register(&Text{})
}
