package sample

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math"
	"os"
	"strconv"

	"k8s.io/klog/v2"
)

// StdinPath selects standard input in Open.
const StdinPath = "-"

var (
	_ Source = &FileSource{}
	_ Source = &ReaderSource{}
)

// FileSource reads whitespace separated numbers from a text file.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (f *FileSource) Load(ctx context.Context) (Sample, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: f.Path, Err: err}
	}
	defer file.Close()

	return parse(ctx, file, f.Path)
}

func (f *FileSource) String() string {
	return f.Path
}

// ReaderSource parses numbers from an arbitrary reader, such as standard input.
// The reader is consumed by the first Load.
type ReaderSource struct {
	Name   string
	Reader io.Reader
}

func (r *ReaderSource) Load(ctx context.Context) (Sample, error) {
	return parse(ctx, r.Reader, r.Name)
}

func (r *ReaderSource) String() string {
	return r.Name
}

// Open returns the source for a command line argument: "-" is standard input,
// anything else is a file path.
func Open(path string) Source {
	if path == StdinPath {
		return &ReaderSource{Name: "stdin", Reader: os.Stdin}
	}
	return NewFileSource(path)
}

// parse collects numbers until end of input or the first token that is not a
// finite real number, whichever comes first. The remaining input is ignored.
func parse(ctx context.Context, r io.Reader, name string) (Sample, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	data := Sample{}
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		token := scanner.Text()
		value, err := strconv.ParseFloat(token, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			klog.V(2).Infof("Stop reading %s at token %d %q, not a finite number", name, len(data)+1, token)
			return data, nil
		}
		data = append(data, value)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			klog.V(2).Infof("Stop reading %s at token %d, token too long", name, len(data)+1)
			return data, nil
		}
		return nil, &IOError{Op: "read", Path: name, Err: err}
	}
	klog.V(4).Infof("Read %d values from %s", len(data), name)
	return data, nil
}
