package grep

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// stdinName is the display name of standard input.
const stdinName = "(standard input)"

// source is one text input to search.
type source struct {
	name  string
	stdin bool
}

// resolveSources expands the command-line paths into the ordered list of
// inputs. Paths that cannot be searched are reported on diag and skipped.
func resolveSources(opts Options, diag *log.Logger) []source {
	paths := opts.Paths
	if len(paths) == 0 {
		if !opts.Recursive {
			return []source{{name: stdinName, stdin: true}}
		}
		paths = []string{"."}
	}

	var sources []source
	for _, path := range paths {
		if path == "-" {
			sources = append(sources, source{name: stdinName, stdin: true})
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			diag.Printf("%s: %v", path, pathError(err))
			continue
		}
		if !info.IsDir() {
			sources = append(sources, source{name: path})
			continue
		}
		if !opts.Recursive {
			diag.Printf("%s: Is a directory", path)
			continue
		}

		_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				diag.Printf("%s: %v", p, pathError(err))
				return nil
			}
			if d.Type().IsRegular() {
				sources = append(sources, source{name: p})
			}
			return nil
		})
	}
	return sources
}

// open returns a reader for src. The caller closes it.
func (src source) open(stdin io.Reader) (io.ReadCloser, error) {
	if src.stdin {
		return io.NopCloser(stdin), nil
	}
	return os.Open(src.name)
}

// pathError strips the operation and path from err, leaving the cause:
// "open x: permission denied" becomes "permission denied".
func pathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
