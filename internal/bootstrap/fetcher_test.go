package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/semilin/kmdata/internal/model"
	"github.com/semilin/kmdata/internal/store"
	"github.com/semilin/kmdata/internal/testutils"
	"github.com/semilin/kmdata/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPopulatedRemote(t *testing.T) *testutils.RemoteRepo {
	r := testutils.NewRemoteRepo(t)
	r.AddFile(model.Corpus, "english.bin", testutils.MarshalMsgpack(t, testutils.SampleCorpus()))
	r.AddFile(model.Corpus, "french.bin", testutils.MarshalMsgpack(t, testutils.SampleCorpus()))
	r.AddFile(model.Keyboard, "ansi.bin", testutils.MarshalMsgpack(t, testutils.SampleMetrics()))
	layout, _ := json.Marshal(testutils.SampleLayout())
	r.AddFile(model.Layout, "qwerty.json", layout)
	return r
}

func collectSkips(skips *[]model.Skip) model.SkipFunc {
	return func(s model.Skip) { *skips = append(*skips, s) }
}

func TestFetcher_Bootstrap(t *testing.T) {
	r := newPopulatedRemote(t)
	dir := filepath.Join(t.TempDir(), "keymeow")
	f := NewFetcher(Options{Sources: r.Sources()})

	var skips []model.Skip
	err := f.Bootstrap(context.Background(), dir, collectSkips(&skips))
	require.NoError(t, err)
	assert.Empty(t, skips)

	assert.Equal(t, []string{"english.bin", "french.bin"}, testutils.FileNames(t, filepath.Join(dir, "corpora")))
	assert.Equal(t, []string{"ansi.bin"}, testutils.FileNames(t, filepath.Join(dir, "metrics")))
	assert.Equal(t, []string{"qwerty.json"}, testutils.FileNames(t, filepath.Join(dir, "layouts")))

	content, err := os.ReadFile(filepath.Join(dir, "corpora", "english.bin"))
	require.NoError(t, err)
	assert.Equal(t, testutils.MarshalMsgpack(t, testutils.SampleCorpus()), content)

	uas := r.UserAgents()
	assert.Len(t, uas, 7)
	for _, ua := range uas {
		assert.Equal(t, utils.UserAgent(), ua)
	}
}

func TestFetcher_Bootstrap_MissingSource(t *testing.T) {
	r := newPopulatedRemote(t)
	dir := filepath.Join(t.TempDir(), "keymeow")
	f := NewFetcher(Options{Sources: map[model.Category]string{model.Layout: r.ListingURL(model.Layout)}})

	err := f.Bootstrap(context.Background(), dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"layouts"}, testutils.FileNames(t, dir))
}

func TestFetcher_Bootstrap_InvalidEntries(t *testing.T) {
	r := testutils.NewRemoteRepo(t)
	r.AddFile(model.Layout, "qwerty.json", []byte(`{"name":"qwerty"}`))
	raw := `[
		{"name":"docs","type":"dir","download_url":null},
		{"name":"../evil.json","type":"file","download_url":"` + r.Server.URL + `/raw/layouts/qwerty.json"},
		{"name":"nourl.json","type":"file","download_url":null},
		{"name":"qwerty.json","type":"file","download_url":"` + r.Server.URL + `/raw/layouts/qwerty.json"}
	]`
	r.SetListing(model.Layout, []byte(raw))
	root := t.TempDir()
	dir := filepath.Join(root, "keymeow")
	f := NewFetcher(Options{Sources: map[model.Category]string{model.Layout: r.ListingURL(model.Layout)}})

	var skips []model.Skip
	err := f.Bootstrap(context.Background(), dir, collectSkips(&skips))
	require.NoError(t, err)

	assert.Equal(t, []string{"qwerty.json"}, testutils.FileNames(t, filepath.Join(dir, "layouts")))
	assert.NoFileExists(t, filepath.Join(dir, "evil.json"))
	assert.Equal(t, []model.Skip{
		{Category: model.Layout, Name: "docs", Reason: model.ErrInvalidEntry},
		{Category: model.Layout, Name: "../evil.json", Reason: model.ErrInvalidEntry},
		{Category: model.Layout, Name: "nourl.json", Reason: model.ErrInvalidEntry},
	}, skips)
}

func TestFetcher_Bootstrap_FileTimeout(t *testing.T) {
	// given: a remote where one file does not respond within the client timeout
	r := newPopulatedRemote(t)
	r.StallFile(model.Corpus, "french.bin", 2*time.Second)
	dir := filepath.Join(t.TempDir(), "keymeow")
	f := NewFetcher(Options{Sources: map[model.Category]string{model.Corpus: r.ListingURL(model.Corpus)}, Timeout: 300 * time.Millisecond})

	// when: bootstrapping
	var skips []model.Skip
	err := f.Bootstrap(context.Background(), dir, collectSkips(&skips))

	// then: the stalled file is skipped and the others are written
	require.NoError(t, err)
	assert.Equal(t, []string{"english.bin"}, testutils.FileNames(t, filepath.Join(dir, "corpora")))
	if assert.Len(t, skips, 1) {
		assert.Equal(t, model.Corpus, skips[0].Category)
		assert.Equal(t, "french.bin", skips[0].Name)
		assert.ErrorIs(t, skips[0].Reason, model.ErrFetchFailed)
	}
}

func TestFetcher_Bootstrap_Non200Success(t *testing.T) {
	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		_, _ = w.Write([]byte(`{"name":"qwerty"}`))
	}))
	defer files.Close()
	r := testutils.NewRemoteRepo(t)
	r.SetListing(model.Layout, []byte(`[{"name":"qwerty.json","type":"file","download_url":"`+files.URL+`/qwerty.json"}]`))
	dir := filepath.Join(t.TempDir(), "keymeow")
	f := NewFetcher(Options{Sources: map[model.Category]string{model.Layout: r.ListingURL(model.Layout)}})

	var skips []model.Skip
	err := f.Bootstrap(context.Background(), dir, collectSkips(&skips))

	require.NoError(t, err)
	assert.Empty(t, skips)
	content, err := os.ReadFile(filepath.Join(dir, "layouts", "qwerty.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"qwerty"}`, string(content))
}

func TestFetcher_Bootstrap_FileWriteFailed(t *testing.T) {
	r := newPopulatedRemote(t)
	dir := t.TempDir()
	// a directory in place of the file makes the write fail
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "corpora", "english.bin", "blocker"), 0775))
	f := NewFetcher(Options{Sources: r.Sources()})

	err := f.Bootstrap(context.Background(), dir, nil)
	assert.ErrorIs(t, err, model.ErrFileWrite)
	var pErr *model.PathError
	if assert.ErrorAs(t, err, &pErr) {
		assert.Equal(t, filepath.Join(dir, "corpora", "english.bin"), pErr.Path)
	}
	assert.NoDirExists(t, filepath.Join(dir, "metrics"))
}

func TestFetcher_WithHttpCache(t *testing.T) {
	r := newPopulatedRemote(t)
	dir := filepath.Join(t.TempDir(), "keymeow")
	cacheDir := t.TempDir()
	f := NewFetcher(Options{Sources: r.Sources(), CacheDir: cacheDir})

	err := f.Bootstrap(context.Background(), dir, nil)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(cacheDir, "http-cache"))
	assert.Equal(t, []string{"ansi.bin"}, testutils.FileNames(t, filepath.Join(dir, "metrics")))
}

func TestOpen_WithBootstrap(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		r := newPopulatedRemote(t)
		dir := filepath.Join(t.TempDir(), "keymeow")

		s, err := store.Open(context.Background(), store.Options{DataDir: dir, Bootstrap: NewFetcher(Options{Sources: r.Sources()})})
		require.NoError(t, err)
		assert.Equal(t, []string{"english", "french"}, s.Names(model.Corpus))
		assert.Equal(t, []string{"ansi"}, s.Names(model.Keyboard))
		assert.Equal(t, []string{"qwerty"}, s.Names(model.Layout))

		l, err := s.Layout("qwerty")
		require.NoError(t, err)
		assert.Equal(t, testutils.SampleLayout(), l)
	})

	t.Run("listing times out", func(t *testing.T) {
		r := newPopulatedRemote(t)
		r.StallListing(model.Corpus, 10*time.Second)
		dir := filepath.Join(t.TempDir(), "keymeow")
		f := NewFetcher(Options{Sources: r.Sources(), Timeout: 200 * time.Millisecond})

		s, err := store.Open(context.Background(), store.Options{DataDir: dir, Bootstrap: f})
		assert.Nil(t, s)
		assert.ErrorIs(t, err, model.ErrNetwork)
		var nErr *model.NetworkError
		if assert.ErrorAs(t, err, &nErr) {
			assert.Equal(t, model.Corpus, nErr.Category)
			assert.Equal(t, r.ListingURL(model.Corpus), nErr.URL)
		}
		assert.NoDirExists(t, dir)
	})

	t.Run("listing fails after first category", func(t *testing.T) {
		r := newPopulatedRemote(t)
		r.FailListing(model.Keyboard)
		dir := filepath.Join(t.TempDir(), "keymeow")
		f := NewFetcher(Options{Sources: r.Sources()})

		_, err := store.Open(context.Background(), store.Options{DataDir: dir, Bootstrap: f})
		assert.ErrorIs(t, err, model.ErrNetwork)
		assert.NoDirExists(t, filepath.Join(dir, "layouts"))

		// the partially bootstrapped directory is usable and not bootstrapped again
		s, err := store.Open(context.Background(), store.Options{DataDir: dir, Bootstrap: f})
		require.NoError(t, err)
		assert.Equal(t, []string{"english", "french"}, s.Names(model.Corpus))
		assert.Empty(t, s.Names(model.Keyboard))
		assert.Empty(t, s.Names(model.Layout))
	})

	t.Run("one file fails to download", func(t *testing.T) {
		r := newPopulatedRemote(t)
		r.FailFile(model.Corpus, "french.bin")
		dir := filepath.Join(t.TempDir(), "keymeow")
		f := NewFetcher(Options{Sources: r.Sources()})

		var skips []model.Skip
		s, err := store.Open(context.Background(), store.Options{DataDir: dir, Bootstrap: f, OnSkip: collectSkips(&skips)})
		require.NoError(t, err)
		assert.NoFileExists(t, filepath.Join(dir, "corpora", "french.bin"))
		assert.FileExists(t, filepath.Join(dir, "corpora", "english.bin"))
		assert.FileExists(t, filepath.Join(dir, "metrics", "ansi.bin"))
		assert.FileExists(t, filepath.Join(dir, "layouts", "qwerty.json"))
		assert.Equal(t, []string{"english"}, s.Names(model.Corpus))

		if assert.Len(t, skips, 1) {
			assert.Equal(t, model.Corpus, skips[0].Category)
			assert.Equal(t, "french.bin", skips[0].Name)
			assert.True(t, errors.Is(skips[0].Reason, model.ErrFetchFailed))
			assert.True(t, strings.Contains(skips[0].Reason.Error(), "500"))
		}

		s, err = store.Open(context.Background(), store.Options{DataDir: dir})
		require.NoError(t, err)
		assert.Equal(t, []string{"english"}, s.Names(model.Corpus))
		assert.Equal(t, []string{"ansi"}, s.Names(model.Keyboard))
		assert.Equal(t, []string{"qwerty"}, s.Names(model.Layout))
		_, err = s.Corpus("french")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
