package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/semilin/kmdata/internal/model"
)

// RemoteRepo is a fake of a GitHub-like contents API serving one listing per category.
// Listings are served under /<category dir>/ and file contents under /raw/<category dir>/<name>
type RemoteRepo struct {
	Server *httptest.Server

	mu         sync.Mutex
	files      map[model.Category]map[string][]byte
	failing    map[string]bool
	listings   map[model.Category][]byte
	brokenList map[model.Category]bool
	stall      map[model.Category]time.Duration
	stallFiles map[string]time.Duration
	userAgents []string
}

func NewRemoteRepo(t testing.TB) *RemoteRepo {
	r := &RemoteRepo{
		files:      make(map[model.Category]map[string][]byte),
		failing:    make(map[string]bool),
		listings:   make(map[model.Category][]byte),
		brokenList: make(map[model.Category]bool),
		stall:      make(map[model.Category]time.Duration),
		stallFiles: make(map[string]time.Duration),
	}
	r.Server = httptest.NewServer(http.HandlerFunc(r.serve))
	t.Cleanup(r.Server.Close)
	return r
}

func (r *RemoteRepo) AddFile(c model.Category, name string, content []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.files[c] == nil {
		r.files[c] = make(map[string][]byte)
	}
	r.files[c][name] = content
}

// FailFile makes requests for the content of the named file fail with 500
func (r *RemoteRepo) FailFile(c model.Category, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failing[c.Dir()+"/"+name] = true
}

// SetListing replaces the generated listing of category c with raw
func (r *RemoteRepo) SetListing(c model.Category, raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[c] = raw
}

// FailListing makes requests for the listing of category c fail with 500
func (r *RemoteRepo) FailListing(c model.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.brokenList[c] = true
}

// StallListing delays the listing response of category c by d, or until the client gives up
func (r *RemoteRepo) StallListing(c model.Category, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stall[c] = d
}

// StallFile delays the response for the content of the named file by d, or until the client gives up
func (r *RemoteRepo) StallFile(c model.Category, name string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stallFiles[c.Dir()+"/"+name] = d
}

func (r *RemoteRepo) ListingURL(c model.Category) string {
	return r.Server.URL + "/" + c.Dir() + "/"
}

// Sources returns the listing URLs of all categories
func (r *RemoteRepo) Sources() map[model.Category]string {
	res := make(map[model.Category]string)
	for _, c := range model.Categories {
		res[c] = r.ListingURL(c)
	}
	return res
}

func (r *RemoteRepo) UserAgents() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.userAgents)
}

func (r *RemoteRepo) serve(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.userAgents = append(r.userAgents, req.UserAgent())
	r.mu.Unlock()

	path := strings.TrimPrefix(req.URL.Path, "/")
	if rest, ok := strings.CutPrefix(path, "raw/"); ok {
		r.serveFile(w, req, rest)
		return
	}
	for _, c := range model.Categories {
		if path == c.Dir()+"/" {
			r.serveListing(w, req, c)
			return
		}
	}
	http.NotFound(w, req)
}

func (r *RemoteRepo) serveListing(w http.ResponseWriter, req *http.Request, c model.Category) {
	r.mu.Lock()
	d := r.stall[c]
	broken := r.brokenList[c]
	raw, custom := r.listings[c]
	var names []string
	for n := range r.files[c] {
		names = append(names, n)
	}
	r.mu.Unlock()

	if d > 0 {
		select {
		case <-req.Context().Done():
			return
		case <-time.After(d):
		}
	}

	if broken {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !custom {
		slices.Sort(names)
		type entry struct {
			Name        string `json:"name"`
			Type        string `json:"type"`
			DownloadURL string `json:"download_url"`
		}
		entries := []entry{}
		for _, n := range names {
			entries = append(entries, entry{Name: n, Type: "file", DownloadURL: r.Server.URL + "/raw/" + c.Dir() + "/" + n})
		}
		raw, _ = json.Marshal(entries)
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func (r *RemoteRepo) serveFile(w http.ResponseWriter, req *http.Request, rest string) {
	r.mu.Lock()
	d := r.stallFiles[rest]
	r.mu.Unlock()
	if d > 0 {
		select {
		case <-req.Context().Done():
			return
		case <-time.After(d):
		}
	}

	dir, name, _ := strings.Cut(rest, "/")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing[rest] {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	for c, files := range r.files {
		if c.Dir() != dir {
			continue
		}
		if content, ok := files[name]; ok {
			_, _ = w.Write(content)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}
