// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"errors"
	"fmt"
)

var (
	//nolint:staticcheck // printed verbatim to the user
	ErrNoAudioFiles   = errors.New("No supported audio files found.")
	ErrFileProcessing = errors.New("file processing failed")
	ErrPath           = errors.New("path outside base directory")
)

// PathError reports an input file that does not live under the discovery
// base directory, so it has no mirrored output path.
type PathError struct {
	Path    string
	BaseDir string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%q is not under %q", e.Path, e.BaseDir)
}

func (e *PathError) Unwrap() error { return ErrPath }

// FileError is the failure carried by an Outcome. It matches
// ErrFileProcessing as well as the underlying cause.
type FileError struct {
	Stage string
	Err   error
}

func (e *FileError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() []error {
	return []error{ErrFileProcessing, e.Err}
}

func stageError(stage string, err error) error {
	return &FileError{Stage: stage, Err: err}
}
