package store

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/semilin/kmdata/internal/model"
)

// Catalog maps resource names of one category to the paths of the files holding them
type Catalog map[string]string

// Names returns the resource names in the catalog in ascending order
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// ResourceName derives the name a file is cataloged under: its base name with the last extension removed.
// Returns false if the stem is empty, which is the case for dotfiles like ".gitkeep".
func ResourceName(path string) (string, bool) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." {
		return "", false
	}
	return stem, true
}

// BuildCatalog reads the immediate entries of dir and catalogs every file by its ResourceName.
// Subdirectories are ignored. Files without a usable name are skipped and reported to onSkip.
// If two files yield the same name, the one sorting later by file name wins and the other is reported as skipped.
// Returns model.ErrDirectoryRead if dir cannot be listed.
func BuildCatalog(dir string, category model.Category, onSkip model.SkipFunc) (Catalog, error) {
	// sorted by file name
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, model.NewPathError(model.ErrDirectoryRead, dir, err)
	}

	cat := make(Catalog, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := ResourceName(e.Name())
		if !ok {
			onSkip.Report(model.Skip{Category: category, Name: e.Name(), Reason: model.ErrNoStem})
			continue
		}
		path := filepath.Join(dir, e.Name())
		if prev, found := cat[name]; found {
			onSkip.Report(model.Skip{Category: category, Name: filepath.Base(prev), Reason: model.ErrDuplicateName})
		}
		cat[name] = path
	}
	return cat, nil
}
