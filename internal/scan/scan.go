// Package scan discovers source files under a root folder and loads their
// content with an encoding fallback chain. It produces the ordered input
// the block builder consumes: lexicographically sorted by relative path,
// each file tagged with the relative directory it lives in.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SupportedExtensions maps recognized file extensions to a display name
// for the format. Files with other extensions are skipped during the walk.
var SupportedExtensions = map[string]string{
	".py":   "Python",
	".js":   "JavaScript",
	".html": "HTML",
	".css":  "CSS",
	".java": "Java",
	".cpp":  "C++",
	".c":    "C",
	".rb":   "Ruby",
	".go":   "Go",
	".rs":   "Rust",
	".sql":  "SQL",
	".sh":   "Shell",
	".json": "JSON",
	".xml":  "XML",
	".md":   "Markdown",
	".txt":  "Text",
}

// File is one discovered source file. FolderKey is the slash-separated
// directory path relative to the scan root, empty for files at the root.
type File struct {
	Path      string // absolute path on disk
	RelPath   string // slash-separated path relative to the root
	Name      string // base name
	Ext       string // lowercase extension including the dot
	FolderKey string
}

// Scan walks root recursively and returns every supported file sorted by
// relative path. An unreadable root is an error; unreadable subdirectories
// are skipped.
func Scan(root string) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source folder %s is not a directory", root)
	}

	var files []File
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // skip unreadable subtrees
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if _, ok := SupportedExtensions[ext]; !ok {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		folder := ""
		if dir := filepath.ToSlash(filepath.Dir(rel)); dir != "." {
			folder = dir
		}
		files = append(files, File{
			Path:      path,
			RelPath:   rel,
			Name:      d.Name(),
			Ext:       ext,
			FolderKey: folder,
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, walkErr)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}
