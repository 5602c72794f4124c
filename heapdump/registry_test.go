// ABOUTME: Tests for the parser registry system
// ABOUTME: Validates parser registration, selection, and compressed input

package heapdump

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// mockParser is a test parser implementation
type mockParser struct {
	name string
}

func (p *mockParser) Name() string { return p.name }

func (p *mockParser) CanParse(r io.Reader) bool {
	// Check if first line contains parser name
	buf := make([]byte, 100)
	n, _ := r.Read(buf)
	return strings.Contains(string(buf[:n]), p.name)
}

func (p *mockParser) Parse(r io.Reader) (*Dump, error) {
	return &Dump{Size: len(p.name)}, nil
}

// swapRegistry installs an empty registry for the duration of the test
func swapRegistry(t *testing.T) {
	t.Helper()
	saved := registry
	registry = &parserRegistry{
		parsers: make([]Parser, 0),
	}
	t.Cleanup(func() { registry = saved })
}

func TestRegister(t *testing.T) {
	swapRegistry(t)

	Register(&mockParser{name: "parser1"})
	Register(&mockParser{name: "parser2"})

	if len(registry.parsers) != 2 {
		t.Errorf("Expected 2 parsers registered, got %d", len(registry.parsers))
	}
}

func TestOpen(t *testing.T) {
	swapRegistry(t)

	Register(&mockParser{name: "json"})
	Register(&mockParser{name: "text"})

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "JSON file",
			content: "json dump data",
			wantErr: false,
		},
		{
			name:    "Text file",
			content: "text dump data",
			wantErr: false,
		},
		{
			name:    "Unknown format",
			content: "unknown format",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(strings.NewReader(tt.content))

			if tt.wantErr && !errors.Is(err, ErrNoParser) {
				t.Errorf("Expected ErrNoParser, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestParserSelection(t *testing.T) {
	swapRegistry(t)

	// First match in registration order wins
	Register(&mockParser{name: "specific"})
	Register(&mockParser{name: "spec"})

	dump, err := Open(strings.NewReader("specific format data"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if dump.Size != len("specific") {
		t.Errorf("Expected the first registered parser to win, got size %d", dump.Size)
	}
}

func TestThreadSafeRegistry(t *testing.T) {
	swapRegistry(t)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			Register(&mockParser{name: string(rune('a' + id))})
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	if len(registry.parsers) != 10 {
		t.Errorf("Expected 10 parsers after concurrent registration, got %d", len(registry.parsers))
	}
}

func TestOpenDetectsBuiltinFormats(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"JSON", `{"heap_size": 160, "objects": [{"id": 1, "start": 0, "end": 4}, {"id": 2, "start": 5, "end": 14}], "pointers": [{"source": 2, "target": 1}], "roots": [1]}`},
		{"Text", exampleText},
		{"YAML", exampleYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dump, err := Open(strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if dump.HeapSize() != 160 || len(dump.Objects()) != 2 || len(dump.Pointers()) != 1 {
				t.Errorf("Unexpected dump: %+v", dump)
			}
		})
	}
}

func TestOpenCompressed(t *testing.T) {
	compressors := map[string]func(w io.Writer) io.WriteCloser{
		"gzip": func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) },
		"zstd": func(w io.Writer) io.WriteCloser {
			zw, err := zstd.NewWriter(w)
			if err != nil {
				t.Fatalf("zstd writer: %v", err)
			}
			return zw
		},
		"lz4": func(w io.Writer) io.WriteCloser { return lz4.NewWriter(w) },
	}

	for name, newWriter := range compressors {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			w := newWriter(&buf)
			if _, err := io.WriteString(w, exampleText); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			dump, err := Open(&buf)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if len(dump.Objects()) != 2 {
				t.Errorf("Expected 2 objects, got %d", len(dump.Objects()))
			}
		})
	}
}

func TestOpenReportsParserName(t *testing.T) {
	_, err := Open(strings.NewReader("object 1 0\n"))
	if err == nil || !strings.HasPrefix(err.Error(), "text: ") {
		t.Errorf("Expected error prefixed with parser name, got %v", err)
	}
}
