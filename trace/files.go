package trace

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Compression is the encoding of a trace file, chosen by its extension.
type Compression int

const (
	None Compression = iota
	Snappy
	LZ4
)

// CompressionOf returns the encoding implied by path's extension: ".sz" or
// ".snappy" for snappy framing, ".lz4" for LZ4 frames, plain text otherwise.
func CompressionOf(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sz", ".snappy":
		return Snappy
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

type readCloser struct {
	io.Reader
	file *os.File
}

func (r readCloser) Close() error {
	return r.file.Close()
}

// Open opens a trace file for reading, decompressing it if needed.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch CompressionOf(path) {
	case Snappy:
		return readCloser{Reader: snappy.NewReader(file), file: file}, nil
	case LZ4:
		return readCloser{Reader: lz4.NewReader(file), file: file}, nil
	default:
		return file, nil
	}
}

type writeCloser struct {
	io.WriteCloser
	file *os.File
}

// Close flushes the encoder before closing the file.
func (w writeCloser) Close() error {
	if err := w.WriteCloser.Close(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// Create creates a trace file for writing, compressing it if its extension
// asks for it. Existing files are truncated.
func Create(path string) (io.WriteCloser, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	switch CompressionOf(path) {
	case Snappy:
		return writeCloser{WriteCloser: snappy.NewBufferedWriter(file), file: file}, nil
	case LZ4:
		return writeCloser{WriteCloser: lz4.NewWriter(file), file: file}, nil
	default:
		return file, nil
	}
}
