// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ik5/audbatch/internal/config"
)

// Supported input extensions (lowercase, with leading dot).
var audioExtensions = map[string]bool{
	".wav":  true,
	".flac": true,
	".mp3":  true,
	".ogg":  true,
	".m4a":  true,
	".aiff": true,
	".wma":  true,
}

// FileTask is one input file. RelPath is relative to the discovery base
// directory.
type FileTask struct {
	Path    string
	RelPath string
}

// Discovery is the result of Discover.
type Discovery struct {
	// BaseDir is the input directory, or the parent of a single input file.
	BaseDir string
	// FromDir is false when the input path named a single file.
	FromDir bool
	Tasks   []FileTask
}

// IsAudioFile reports whether path has a supported extension.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discover lists the audio files under root sorted by path. A root that is
// a file yields exactly that file, whatever its extension. An empty task
// list is not an error here; the caller decides.
func Discover(root string, recursive bool) (Discovery, error) {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		return Discovery{}, fmt.Errorf("%w: input path: %v", config.ErrConfiguration, err)
	}

	if !info.IsDir() {
		base := filepath.Dir(root)
		return Discovery{
			BaseDir: base,
			Tasks:   []FileTask{{Path: root, RelPath: filepath.Base(root)}},
		}, nil
	}

	var tasks []FileTask
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsAudioFile(path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		tasks = append(tasks, FileTask{Path: path, RelPath: rel})
		return nil
	})
	if err != nil {
		return Discovery{}, fmt.Errorf("%w: scanning %q: %v", config.ErrConfiguration, root, err)
	}

	slices.SortFunc(tasks, func(a, b FileTask) int {
		return strings.Compare(a.Path, b.Path)
	})

	return Discovery{BaseDir: root, FromDir: true, Tasks: tasks}, nil
}

// ExcludeDir drops tasks located inside outDir when outDir is nested
// strictly below inputRoot, so a rerun does not pick up its own earlier
// output. An outDir equal to inputRoot, above it, or elsewhere leaves the
// tasks untouched: excluding there would drop every input.
func ExcludeDir(tasks []FileTask, inputRoot, outDir string) []FileTask {
	absRoot, err := filepath.Abs(inputRoot)
	if err != nil {
		return tasks
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil || !isWithin(absRoot, absOut) {
		return tasks
	}

	kept := tasks[:0:0]
	for _, task := range tasks {
		abs, err := filepath.Abs(task.Path)
		if err == nil && isWithin(absOut, abs) {
			continue
		}
		kept = append(kept, task)
	}

	return kept
}

// isWithin reports whether path lies strictly below dir. Both must be
// absolute and clean.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && !escapes(rel)
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel)
}
