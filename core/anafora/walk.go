package anafora

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/FocuswithJustin/anafora-eval/core/errors"
)

// DefaultXMLNameRegex matches any file ending in ".xml".
const DefaultXMLNameRegex = `[.]xml$`

// Unit is one document unit of a corpus: a sub-directory and the annotation
// files in it whose names match the walk pattern.
type Unit struct {
	Root   string
	SubDir string
	Names  []string
}

// Path joins the unit's root, sub-directory and the given file name.
func (u Unit) Path(name string) string {
	return filepath.Join(u.Root, u.SubDir, name)
}

// Walk visits every directory below root and returns one Unit for each
// directory containing at least one file whose name matches nameRegex.
// Files directly in root are not a unit. Units are ordered by sub-directory
// and names within a unit are sorted, so the first name is the
// lexicographically smallest.
func Walk(root string, nameRegex *regexp.Regexp) ([]Unit, error) {
	byDir := make(map[string][]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !nameRegex.MatchString(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		byDir[rel] = append(byDir[rel], d.Name())
		return nil
	})
	if err != nil {
		return nil, errors.NewIO("walk", root, err)
	}

	units := make([]Unit, 0, len(byDir))
	for subDir, names := range byDir {
		sort.Strings(names)
		units = append(units, Unit{Root: root, SubDir: subDir, Names: names})
	}
	sort.Slice(units, func(i, j int) bool { return units[i].SubDir < units[j].SubDir })
	return units, nil
}
