package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/semilin/kmdata/internal/model"
	"github.com/semilin/kmdata/internal/utils"
)

// Bootstrapper populates a data directory which does not exist yet
//
//go:generate mockery --name Bootstrapper --outpkg mocks --output mocks
type Bootstrapper interface {
	// Bootstrap downloads resources into dataDir. Entries it leaves out on purpose are reported to onSkip.
	Bootstrap(ctx context.Context, dataDir string, onSkip model.SkipFunc) error
}

type Options struct {
	// DataDir overrides the directory returned by Locate
	DataDir string
	// Categories limits the categories that are cataloged. Nil means all categories
	Categories []model.Category
	// Bootstrap is run before anything else if it is not nil and the data directory does not exist
	Bootstrap Bootstrapper
	// OnSkip receives entries skipped while bootstrapping or cataloging
	OnSkip model.SkipFunc
}

// Store resolves resource names to files in the data directory and decodes them on demand.
// A Store is not modified after Open returns and decoded values are never cached.
type Store struct {
	dir      string
	catalogs map[model.Category]Catalog
}

// Open locates and creates the data directory, bootstraps it if requested and builds the catalogs
// of the enabled categories
func Open(ctx context.Context, opts Options) (*Store, error) {
	log := utils.GetLogger(ctx, "store")

	dir := opts.DataDir
	if dir == "" {
		var err error
		dir, err = Locate()
		if err != nil {
			return nil, err
		}
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, model.NewPathError(model.ErrDirectoryCreate, opts.DataDir, err)
	}

	onSkip := func(s model.Skip) {
		log.Debug(s.String(), "category", s.Category, "name", s.Name)
		opts.OnSkip.Report(s)
	}

	if opts.Bootstrap != nil {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			log.Info("data directory does not exist. Downloading resources", "dir", dir)
			err = opts.Bootstrap.Bootstrap(ctx, dir, onSkip)
			if err != nil {
				log.Error("could not bootstrap data directory", "error", err)
				return nil, err
			}
		}
	}

	err = CreateDirectories(dir)
	if err != nil {
		return nil, err
	}

	cats := opts.Categories
	if cats == nil {
		cats = model.Categories
	}
	s := &Store{
		dir:      dir,
		catalogs: make(map[model.Category]Catalog, len(cats)),
	}
	for _, c := range cats {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidCategory, c)
		}
		catalog, err := BuildCatalog(s.CategoryDir(c), c, onSkip)
		if err != nil {
			return nil, err
		}
		log.Debug("cataloged resources", "category", c, "count", len(catalog))
		s.catalogs[c] = catalog
	}
	return s, nil
}

// Dir returns the absolute path of the data directory
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) CategoryDir(c model.Category) string {
	return filepath.Join(s.dir, c.Dir())
}

// Enabled reports whether category c has been cataloged
func (s *Store) Enabled(c model.Category) bool {
	_, ok := s.catalogs[c]
	return ok
}

// Names returns the sorted names of all resources of category c. Empty if c is not enabled
func (s *Store) Names(c model.Category) []string {
	return s.catalogs[c].Names()
}

// Lookup returns the path of the file holding the named resource. It does not touch the file system.
// Returns *model.NotFoundError if there is no such resource.
func (s *Store) Lookup(c model.Category, name string) (string, error) {
	path, ok := s.catalogs[c][name]
	if !ok {
		return "", &model.NotFoundError{Category: c, Name: name}
	}
	return path, nil
}

// Load reads and decodes the named resource of category c. The result is a *model.CorpusData, *model.MetricData
// or *model.LayoutData. Errors are either model.ErrNotFound, model.ErrFileRead or model.ErrDeserialization.
func (s *Store) Load(c model.Category, name string) (any, error) {
	switch c {
	case model.Corpus:
		return s.Corpus(name)
	case model.Keyboard:
		return s.Metrics(name)
	case model.Layout:
		return s.Layout(name)
	default:
		return nil, &model.NotFoundError{Category: c, Name: name}
	}
}

func (s *Store) Corpus(name string) (*model.CorpusData, error) {
	path, raw, err := s.read(model.Corpus, name)
	if err != nil {
		return nil, err
	}
	var corpus model.CorpusData
	if err := decodeMsgpack(path, raw, &corpus); err != nil {
		return nil, err
	}
	return &corpus, nil
}

func (s *Store) Metrics(name string) (*model.MetricData, error) {
	path, raw, err := s.read(model.Keyboard, name)
	if err != nil {
		return nil, err
	}
	var md model.MetricData
	if err := decodeMsgpack(path, raw, &md); err != nil {
		return nil, err
	}
	return &md, nil
}

// Layout resolves name in the layouts catalog. Layouts and metric tables often share names ("qwerty"),
// the catalogs are kept apart.
func (s *Store) Layout(name string) (*model.LayoutData, error) {
	path, raw, err := s.read(model.Layout, name)
	if err != nil {
		return nil, err
	}
	return decodeLayout(path, raw)
}

func (s *Store) read(c model.Category, name string) (string, []byte, error) {
	path, err := s.Lookup(c, name)
	if err != nil {
		return "", nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return path, nil, model.NewPathError(model.ErrFileRead, path, err)
	}
	return path, raw, nil
}
