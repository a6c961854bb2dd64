package sample

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeSampleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSourceLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Sample
	}{
		{
			name:    "newline separated",
			content: "1\n2\n3\n",
			want:    Sample{1, 2, 3},
		},
		{
			name:    "mixed whitespace keeps order",
			content: "5.5 -1\t2e3\n\n  0.25",
			want:    Sample{5.5, -1, 2000, 0.25},
		},
		{
			name:    "stops at first unparsable token",
			content: "1 2 abc 3 4",
			want:    Sample{1, 2},
		},
		{
			name:    "non finite token stops reading",
			content: "1 NaN 2",
			want:    Sample{1},
		},
		{
			name:    "token longer than the scan buffer stops reading",
			content: "1 2 " + strings.Repeat("x", 70000) + " 3",
			want:    Sample{1, 2},
		},
		{
			name:    "empty file",
			content: "",
			want:    Sample{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSampleFile(t, tt.content)
			got, err := NewFileSource(path).Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Load() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	_, err := NewFileSource(path).Load(context.Background())
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !errors.Is(err, ErrIO) {
		t.Errorf("Load() error = %v, want ErrIO", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want wrapped os.ErrNotExist", err)
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Path != path || ioErr.Op != "open" {
		t.Errorf("Load() error = %#v, want IOError for %s", err, path)
	}
}

func TestReaderSource(t *testing.T) {
	src := &ReaderSource{Name: "test", Reader: strings.NewReader("3 1 2")}
	got, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := (Sample{3, 1, 2}); !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestLoadHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &ReaderSource{Name: "test", Reader: strings.NewReader("1 2 3")}
	if _, err := src.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestOpen(t *testing.T) {
	if got := Open(StdinPath).String(); got != "stdin" {
		t.Errorf("Open(-) = %v, want stdin", got)
	}
	if got := Open("data.txt").String(); got != "data.txt" {
		t.Errorf("Open(data.txt) = %v, want data.txt", got)
	}
}

func TestSliceSourceCopies(t *testing.T) {
	values := []float64{1, 2, 3}
	got, err := SliceSource(values).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got[0] = 100
	if values[0] != 1 {
		t.Errorf("Load() shares memory with the input slice")
	}
}
