package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCategory = errors.New("invalid category")

// Category is one of the fixed kinds of resource kept in the data directory.
// It determines the subdirectory a resource lives in and how its bytes are decoded.
type Category int

const (
	Corpus = Category(iota + 1)
	Keyboard
	Layout
)

const (
	FormatMsgpack = "msgpack"
	FormatJSON    = "json"
)

// Categories lists all categories in the order they are bootstrapped
var Categories = []Category{Corpus, Keyboard, Layout}

var categoryDirs = map[Category]string{
	Corpus:   "corpora",
	Keyboard: "metrics",
	Layout:   "layouts",
}

var categoryAliases = map[string]Category{
	"corpora":   Corpus,
	"corpus":    Corpus,
	"metrics":   Keyboard,
	"keyboard":  Keyboard,
	"keyboards": Keyboard,
	"layouts":   Layout,
	"layout":    Layout,
}

func (c Category) String() string {
	switch c {
	case Corpus:
		return "corpus"
	case Keyboard:
		return "keyboard"
	case Layout:
		return "layout"
	default:
		return fmt.Sprintf("unknown category: %d", int(c))
	}
}

// Dir returns the name of the data subdirectory holding resources of this category
func (c Category) Dir() string {
	return categoryDirs[c]
}

// Format returns the serialization format of files in this category
func (c Category) Format() string {
	if c == Layout {
		return FormatJSON
	}
	return FormatMsgpack
}

func (c Category) Valid() bool {
	_, ok := categoryDirs[c]
	return ok
}

// ParseCategory accepts both the directory name and the singular form, case-insensitively
func ParseCategory(s string) (Category, error) {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %s. Valid categories are %s", ErrInvalidCategory, s, strings.Join(CategoryDirNames(), ", "))
}

// CategoryDirNames returns the subdirectory names of all categories, in bootstrap order
func CategoryDirNames() []string {
	var res []string
	for _, c := range Categories {
		res = append(res, c.Dir())
	}
	return res
}
