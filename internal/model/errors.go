package model

import (
	"errors"
	"fmt"
)

var (
	ErrNoHomeDirectory = errors.New("could not determine user's home directory")
	ErrDirectoryCreate = errors.New("could not create data directory")
	ErrDirectoryRead   = errors.New("could not read data directory")
	ErrFileRead        = errors.New("could not read data file")
	ErrFileWrite       = errors.New("could not write data file")
	ErrNotFound        = errors.New("resource not found")
	ErrDeserialization = errors.New("could not deserialize resource")
	ErrNetwork         = errors.New("could not download resource listing")
)

// reasons for skipped entries, see Skip
var (
	ErrNoStem        = errors.New("file name has no usable stem")
	ErrDuplicateName = errors.New("shadowed by another file with the same name")
	ErrFetchFailed   = errors.New("could not download file")
	ErrInvalidEntry  = errors.New("invalid listing entry")
)

// PathError records a filesystem failure of kind Kind (one of ErrDirectoryCreate, ErrDirectoryRead,
// ErrFileRead, ErrFileWrite) on Path
type PathError struct {
	Kind error
	Path string
	Err  error
}

func NewPathError(kind error, path string, err error) *PathError {
	return &PathError{Kind: kind, Path: path, Err: err}
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%v %s: %v", e.Kind, e.Path, e.Err)
}

func (e *PathError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

type NotFoundError struct {
	Category Category
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find %s called `%s`", e.Category, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DeserializeError means the file at Path exists but its bytes are not valid Format data
type DeserializeError struct {
	Format string
	Path   string
	Err    error
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("error deserializing %s data from %s: %v", e.Format, e.Path, e.Err)
}

func (e *DeserializeError) Unwrap() []error {
	return []error{ErrDeserialization, e.Err}
}

type NetworkError struct {
	Category Category
	URL      string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%v for %s from %s: %v", ErrNetwork, e.Category, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}

// Skip describes an entry that a best-effort step left out without failing
type Skip struct {
	Category Category
	Name     string
	Reason   error
}

func (s Skip) String() string {
	return fmt.Sprintf("skipped %s %s: %v", s.Category, s.Name, s.Reason)
}

// SkipFunc receives the entries skipped by a best-effort step. A nil SkipFunc discards them.
type SkipFunc func(Skip)

func (f SkipFunc) Report(s Skip) {
	if f != nil {
		f(s)
	}
}
