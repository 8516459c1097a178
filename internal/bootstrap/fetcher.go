package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/semilin/kmdata/internal/model"
	"github.com/semilin/kmdata/internal/store"
	"github.com/semilin/kmdata/internal/utils"
)

var _ store.Bootstrapper = (*Fetcher)(nil)

const (
	DefaultTimeout         = 8 * time.Second
	defaultDirPermissions  = 0775
	defaultFilePermissions = 0664
)

type Options struct {
	// Sources maps categories to the URLs of their file listings. Categories without a source are not downloaded
	Sources map[model.Category]string
	// Timeout applies to each request separately. Zero means DefaultTimeout
	Timeout time.Duration
	// CacheDir enables an on-disk http cache in the given directory if not empty
	CacheDir string
}

// Fetcher populates an empty data directory with files downloaded from remote listings
type Fetcher struct {
	client    *http.Client
	sources   map[model.Category]string
	userAgent string
}

func NewFetcher(opts Options) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Transport: newTransport(opts.CacheDir),
			Timeout:   timeout,
		},
		sources:   opts.Sources,
		userAgent: utils.UserAgent(),
	}
}

func newTransport(cacheDir string) http.RoundTripper {
	if cacheDir == "" {
		return http.DefaultTransport
	}
	dir := filepath.Join(cacheDir, "http-cache")
	if err := os.MkdirAll(dir, defaultDirPermissions); err != nil {
		utils.GetLogger(context.Background(), "bootstrap").Warn("http cache disabled", "dir", dir, "error", err)
		return http.DefaultTransport
	}
	return httpcache.NewTransport(diskcache.New(dir))
}

// Bootstrap downloads the files of all categories into their subdirectories of dataDir, in the order of model.Categories.
// Files which cannot be downloaded are skipped. Failing to get a listing aborts with *model.NetworkError, failing to
// write a file aborts with model.ErrFileWrite. A category's directory is only created once its listing is received.
func (f *Fetcher) Bootstrap(ctx context.Context, dataDir string, onSkip model.SkipFunc) error {
	for _, c := range model.Categories {
		url, ok := f.sources[c]
		if !ok || url == "" {
			continue
		}
		err := f.downloadCategory(ctx, c, url, filepath.Join(dataDir, c.Dir()), onSkip)
		if err != nil {
			return err
		}
	}
	return nil
}

// List retrieves and parses the file listing of category c from url
func (f *Fetcher) List(ctx context.Context, c model.Category, url string) ([]Entry, error) {
	raw, err := f.get(ctx, url)
	if err != nil {
		return nil, &model.NetworkError{Category: c, URL: url, Err: err}
	}
	entries, err := ParseListing(raw)
	if err != nil {
		return nil, &model.NetworkError{Category: c, URL: url, Err: err}
	}
	return entries, nil
}

func (f *Fetcher) downloadCategory(ctx context.Context, c model.Category, url, dir string, onSkip model.SkipFunc) error {
	log := utils.GetLogger(ctx, "bootstrap")
	entries, err := f.List(ctx, c, url)
	if err != nil {
		log.Error("could not get file listing", "category", c, "url", url, "error", err)
		return err
	}
	log.Debug("received file listing", "category", c, "entries", len(entries))

	err = os.MkdirAll(dir, defaultDirPermissions)
	if err != nil {
		return model.NewPathError(model.ErrDirectoryCreate, dir, err)
	}

	for _, e := range entries {
		if !e.isFile() || e.DownloadURL == "" || !utils.IsPlainFileName(e.Name) {
			onSkip.Report(model.Skip{Category: c, Name: e.Name, Reason: model.ErrInvalidEntry})
			continue
		}
		content, err := f.get(ctx, e.DownloadURL)
		if err != nil {
			log.Warn("could not download file", "category", c, "name", e.Name, "error", err)
			onSkip.Report(model.Skip{Category: c, Name: e.Name, Reason: fmt.Errorf("%w: %w", model.ErrFetchFailed, err)})
			continue
		}
		path := filepath.Join(dir, e.Name)
		err = utils.AtomicWriteFile(path, content, defaultFilePermissions)
		if err != nil {
			return model.NewPathError(model.ErrFileWrite, path, err)
		}
		log.Info("downloaded file", "category", c, "filename", path)
	}
	return nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("received unexpected HTTP response from remote server: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
