package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"harvester/internal/domain/consts"
	"harvester/internal/parsing"
)

// ListInfo describes one named list on disk.
type ListInfo struct {
	Name  string
	Path  string
	Count int
}

// ListPath returns the file for a (sanitized) list name.
func ListPath(dir, name string) string {
	return filepath.Join(dir, parsing.SanitizeListName(name)+consts.ListFileExt)
}

// ListNames returns the names of every list in dir, sorted.
func ListNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read lists directory %q: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasSuffix(n, consts.ListFileExt) || strings.HasPrefix(n, consts.TempTag) {
			continue
		}
		names = append(names, strings.TrimSuffix(n, consts.ListFileExt))
	}
	slices.Sort(names)
	return names, nil
}

// DescribeLists returns name, path and URL count for every list in dir.
func DescribeLists(dir string) ([]ListInfo, error) {
	names, err := ListNames(dir)
	if err != nil {
		return nil, err
	}

	infos := make([]ListInfo, 0, len(names))
	for _, n := range names {
		p := ListPath(dir, n)
		lines, err := ReadFileLines(p)
		if err != nil {
			return nil, err
		}
		infos = append(infos, ListInfo{Name: n, Path: p, Count: len(lines)})
	}
	return infos, nil
}

// CreateList creates an empty list. Existing lists are left alone.
func CreateList(dir, name string) (string, error) {
	p := ListPath(dir, name)
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	if err := WriteLinesAtomic(p, nil, consts.PermsListFile); err != nil {
		return "", err
	}
	return p, nil
}

// AddToList appends URLs to a list, creating it if needed. URLs already present are skipped.
func AddToList(dir, name string, urls ...string) (added int, err error) {
	p := ListPath(dir, name)

	existing, err := ReadFileLines(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, err
	}

	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || slices.Contains(existing, u) {
			continue
		}
		existing = append(existing, u)
		added++
	}
	if added == 0 {
		if _, err := os.Stat(p); err == nil {
			return 0, nil
		}
	}
	if err := WriteLinesAtomic(p, existing, consts.PermsListFile); err != nil {
		return 0, err
	}
	return added, nil
}

// DeleteList removes a list file.
func DeleteList(dir, name string) error {
	p := ListPath(dir, name)
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("failed to delete list %q: %w", name, err)
	}
	return nil
}
