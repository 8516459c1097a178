package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/semilin/kmdata/internal/config"
	"github.com/semilin/kmdata/internal/model"
	"github.com/semilin/kmdata/internal/store"
	"github.com/spf13/viper"
)

const unknownSize = "?"

type ListEntry struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

// List prints the installed resources of one category, or of all enabled categories if category is empty
func List(ctx context.Context, category, format string) error {
	if !IsValidOutputFormat(format) {
		Stderrf("%v", ErrInvalidOutputFormat)
		return ErrInvalidOutputFormat
	}
	cats, err := categoriesToList(category)
	if err != nil {
		Stderrf("%v", err)
		return err
	}

	s, err := openStore(ctx, true)
	if err != nil {
		return err
	}

	if category != "" && !s.Enabled(cats[0]) {
		Stderrf("%s are disabled by the %q setting", cats[0].Dir(), config.KeyCategories)
	}
	entries := listEntries(s, cats)
	switch format {
	case OutputFormatJSON:
		return printJSON(entries)
	default:
		printEntries(entries)
	}
	return nil
}

// ListNames returns the names installed for category c. It neither downloads nor creates anything,
// a missing data directory yields no names.
func ListNames(ctx context.Context, c model.Category) ([]string, error) {
	opts, err := StoreOptions(false)
	if err != nil {
		return nil, err
	}
	if opts.Categories != nil && !slices.Contains(opts.Categories, c) {
		return nil, nil
	}
	dir := opts.DataDir
	if dir == "" {
		dir, err = store.Locate()
		if err != nil {
			return nil, err
		}
	}
	catDir := filepath.Join(dir, c.Dir())
	if _, err := os.Stat(catDir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	catalog, err := store.BuildCatalog(catDir, c, nil)
	if err != nil {
		return nil, err
	}
	return catalog.Names(), nil
}

func categoriesToList(category string) ([]model.Category, error) {
	if category == "" {
		return model.Categories, nil
	}
	c, err := model.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return []model.Category{c}, nil
}

func listEntries(s *store.Store, cats []model.Category) []ListEntry {
	entries := make([]ListEntry, 0)
	for _, c := range cats {
		for _, name := range s.Names(c) {
			path, err := s.Lookup(c, name)
			if err != nil {
				continue
			}
			e := ListEntry{Name: name, Category: c.String(), Path: path, Size: -1}
			if fi, err := os.Stat(path); err == nil {
				e.Size = fi.Size()
			}
			entries = append(entries, e)
		}
	}
	return entries
}

func printEntries(entries []ListEntry) {
	colWidth := columnWidth()
	table := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(table, "NAME\tCATEGORY\tSIZE\n")
	for _, e := range entries {
		size := unknownSize
		if e.Size >= 0 {
			size = humanize.Bytes(uint64(e.Size))
		}
		_, _ = fmt.Fprintf(table, "%s\t%s\t%s\n", elideString(e.Name, colWidth), e.Category, size)
	}
	_ = table.Flush()
}

func elideString(value string, colWidth int) string {
	if len(value) < colWidth {
		return value
	}

	var elidedValue string
	for i, rn := range value {
		elidedValue += string(rn)
		if i >= (colWidth - 4) {
			return elidedValue + "..."
		}
	}
	return value + "..."
}

func columnWidth() int {
	cw := viper.GetInt(config.KeyColumnWidth)
	if cw <= 0 {
		cw = config.DefaultColumnWidth
	}
	return cw
}
