package nwb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

var cborDecMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
		MaxArrayElements:  1 << 27,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

// File is an open NWB data file. The handle stays open until Close, so
// objects read from it remain valid while checks run.
type File struct {
	path string
	f    *os.File
}

// Open opens the file at path for reading.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &File{path: path, f: f}, nil
}

// Path returns the path the file was opened with.
func (f *File) Path() string { return f.path }

// Read decodes the object tree. CBOR and YAML encodings are told apart by the
// first byte: a CBOR document always starts with a map header.
func (f *File) Read() (*NWBFile, error) {
	if _, err := f.f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	root, err := Decode(f.f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return root, nil
}

// Close releases the underlying handle.
func (f *File) Close() error {
	return f.f.Close()
}

// Decode reads a YAML or CBOR encoded file from r.
func Decode(r io.Reader) (*NWBFile, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(1)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file")
		}
		return nil, err
	}

	var doc document
	if isCBORMap(head[0]) {
		if err := cborDecMode.NewDecoder(br).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode cbor: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(br)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("empty file")
			}
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}

	b := &builder{types: DefaultTypes()}
	return b.file(&doc)
}

// isCBORMap reports whether c is the initial byte of a CBOR map
// (major type 5, definite or indefinite length).
func isCBORMap(c byte) bool {
	return c>>5 == 5 && (c&0x1f <= 27 || c&0x1f == 31)
}
