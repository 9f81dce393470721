// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputPath mirrors inputFile's position under baseDir into outputRoot
// with a .wav extension and creates the parent directory. Creating a
// directory that already exists is not an error, so concurrent callers
// are safe.
func OutputPath(inputFile, baseDir, outputRoot string) (string, error) {
	rel, err := filepath.Rel(baseDir, inputFile)
	if err != nil || escapes(rel) {
		return "", &PathError{Path: inputFile, BaseDir: baseDir}
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".wav"
	out := filepath.Join(outputRoot, rel)

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	return out, nil
}
