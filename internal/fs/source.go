package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SourceKind tells whether the text came from a named file or from stdin.
type SourceKind int

const (
	SourceStdin SourceKind = iota
	SourceFile
)

// Source describes where input text originated.
type Source struct {
	Kind SourceKind
	// Path is empty for stdin.
	Path string
	// DisplayName is substituted into header and footer templates.
	DisplayName string
}

// FileSource returns a Source for path, naming it by its base name.
func FileSource(path string) Source {
	return Source{Kind: SourceFile, Path: path, DisplayName: filepath.Base(path)}
}

// StdinSource returns the Source used when no path was given.
func StdinSource() Source {
	return Source{Kind: SourceStdin, DisplayName: "<stdin>"}
}

// IsFile reports whether header and footer framing applies.
func (s Source) IsFile() bool {
	return s.Kind == SourceFile
}

// InputError wraps a failure to read the input source.
type InputError struct {
	Source Source
	Err    error
}

func (e *InputError) Error() string {
	if e.Source.IsFile() {
		return fmt.Sprintf("cannot read %s: %v", e.Source.Path, e.Err)
	}
	return fmt.Sprintf("cannot read standard input: %v", e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ReadSource returns all bytes of src. stdin is consulted only for SourceStdin.
func ReadSource(src Source, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if src.IsFile() {
		data, err = os.ReadFile(src.Path)
	} else {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return nil, &InputError{Source: src, Err: err}
	}
	return data, nil
}
