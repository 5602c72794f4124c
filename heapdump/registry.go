// ABOUTME: Registry for heap description parsers
// ABOUTME: Manages parser plugins and selects appropriate parser for dumps

package heapdump

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	// ErrNoParser is returned when no parser can handle the dump format
	ErrNoParser = errors.New("no parser found for dump format")
)

// detectSize is how much of a dump parsers may inspect in CanParse
const detectSize = 4096

// parserRegistry holds registered parsers
type parserRegistry struct {
	mu      sync.RWMutex
	parsers []Parser
}

// Global registry instance
var registry = &parserRegistry{
	parsers: make([]Parser, 0),
}

// Register adds a parser to the registry
func Register(p Parser) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.parsers = append(registry.parsers, p)
}

// Open reads a heap description and returns the parsed dump.
// Compressed input is unwrapped first; then each registered parser is tried
// in registration order until one recognises the format.
func Open(r io.Reader) (*Dump, error) {
	plain, closeFn, err := decompress(r)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	br := bufio.NewReaderSize(plain, detectSize)
	preview, err := br.Peek(detectSize)
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for _, parser := range registry.parsers {
		if parser.CanParse(bytes.NewReader(preview)) {
			dump, err := parser.Parse(br)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", parser.Name(), err)
			}
			return dump, nil
		}
	}

	return nil, ErrNoParser
}

// OpenFile reads the heap description stored at path
func OpenFile(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dump, err := Open(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dump, nil
}
