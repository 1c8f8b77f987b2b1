package deckicon

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"
)

// ExportFileName is the name of the exported icon.
const ExportFileName = "streamdeck-icon.png"

// PipeName selects the standard output as export destination.
const PipeName = "-"

// Sink receives the encoded icon.
type Sink interface {
	Save(name string, data []byte) error
}

// FileSink saves the icon in Dir. The file is written under a temporary
// name and renamed once complete, so a failed export never leaves a
// partial file behind.
type FileSink struct {
	Dir string
}

// Path returns the destination path of a file called name.
func (s FileSink) Path(name string) string {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}

// Save implements Sink.
func (s FileSink) Save(name string, data []byte) (err error) {
	dst := s.Path(name)

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("unable to write the destination file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("unable to write the destination file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// WriterSink writes the icon to W, ignoring the file name.
type WriterSink struct {
	W io.Writer
}

// Save implements Sink.
func (s WriterSink) Save(_ string, data []byte) error {
	_, err := s.W.Write(data)
	return err
}

// NewSink returns the sink for an output destination: PipeName writes to
// the standard output, which has to be redirected to a pipe or a file,
// anything else is a directory created on demand.
func NewSink(out string) (Sink, error) {
	if out == PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return WriterSink{W: os.Stdout}, nil
	}
	if out == "" {
		out = "."
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return nil, fmt.Errorf("unable to create the destination directory: %w", err)
	}
	return FileSink{Dir: out}, nil
}
