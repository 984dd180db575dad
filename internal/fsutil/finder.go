// Package fsutil provides file system helpers for locating .arc sources.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExtension is the file extension of architecture description
// sources.
const SourceExtension = ".arc"

// FindSourceFiles resolves a path to the list of .arc files it denotes: a
// file path yields itself, a directory is searched recursively. The list
// is sorted so compilation order is deterministic.
func FindSourceFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !strings.HasSuffix(path, SourceExtension) {
			return nil, fmt.Errorf("%s is not a %s file", path, SourceExtension)
		}
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), SourceExtension) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
