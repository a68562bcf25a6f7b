package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExtension is the file suffix collected from directories.
const SourceExtension = ".go"

// Unit is one source file handed to the pipeline.
type Unit struct {
	Path   string
	Source []byte
}

// CollectUnits reads the given files and every source file below the given
// directories. Directory entries starting with "." or "_", or named
// testdata, are skipped. Units come back sorted by path with duplicates
// removed.
func CollectUnits(paths []string) ([]Unit, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		files = append(files, clean)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("driver: %w", err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(p) == SourceExtension {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("driver: traverse %s: %w", path, err)
		}
	}
	sort.Strings(files)

	units := make([]Unit, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("driver: read %s: %w", file, err)
		}
		units = append(units, Unit{Path: file, Source: data})
	}
	return units, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata"
}
