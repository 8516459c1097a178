package testutils

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/semilin/kmdata/internal/model"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	dirPermissions  = 0775
	filePermissions = 0664
)

// WriteResource writes data to <root>/<category dir>/<fileName>, creating directories as needed,
// and returns the full path of the file
func WriteResource(t testing.TB, root string, c model.Category, fileName string, data []byte) string {
	t.Helper()
	dir := filepath.Join(root, c.Dir())
	require.NoError(t, os.MkdirAll(dir, dirPermissions))
	path := filepath.Join(dir, fileName)
	require.NoError(t, os.WriteFile(path, data, filePermissions))
	return path
}

func MarshalMsgpack(t testing.TB, v any) []byte {
	t.Helper()
	b, err := msgpack.Marshal(v)
	require.NoError(t, err)
	return b
}

// FileNames returns the sorted names of the entries of dir
func FileNames(t testing.TB, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func SampleCorpus() *model.CorpusData {
	return &model.CorpusData{
		CharList:  [][]model.Char{{'a', 'A'}, {'b', 'B'}, {'c', 'C'}},
		Chars:     []uint32{120, 30, 45},
		Bigrams:   []uint32{1, 12, 8, 3, 0, 7, 9, 2, 4},
		Skipgrams: []uint32{2, 6, 4, 1, 1, 5, 3, 0, 2},
		Trigrams:  make([]uint32, 27),
	}
}

func SampleMetrics() *model.MetricData {
	return &model.MetricData{
		Metrics: []model.Metric{
			{Name: "Same Finger Bigram", ShortName: "sfb", Goal: "minimize"},
			{Name: "Alternation", ShortName: "alt", Goal: "maximize"},
		},
		Strokes: []model.StrokeData{
			{Nstroke: []uint16{0, 10}, Amounts: []model.MetricAmount{{Metric: 0, Amount: 1}}},
			{Nstroke: []uint16{0, 6}, Amounts: []model.MetricAmount{{Metric: 1, Amount: 0.5}}},
		},
		Keyboard: model.KeyboardData{
			Name: "ansi",
			Keys: []model.KeyPosition{{X: 0, Y: 0, Finger: 0}, {X: 1, Y: 0, Finger: 1}, {X: 0.25, Y: 1, Finger: 0}},
		},
	}
}

func SampleLayout() *model.LayoutData {
	return &model.LayoutData{
		Name:     "qwerty",
		Authors:  []string{"Christopher Latham Sholes"},
		Year:     1873,
		Keyboard: "ansi",
		Matrix:   []string{"qwertyuiop", "asdfghjkl;", "zxcvbnm,./"},
	}
}

// ReplaceStdout redirects os.Stdout into a pipe. The returned getter restores os.Stdout on its first call
// and returns everything written in between. The restore func is safe to defer in addition.
func ReplaceStdout() (restore func(), get func() string) {
	return replaceFile(&os.Stdout)
}

// ReplaceStderr works like ReplaceStdout for os.Stderr
func ReplaceStderr() (restore func(), get func() string) {
	return replaceFile(&os.Stderr)
}

func replaceFile(f **os.File) (func(), func() string) {
	old := *f
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	*f = w
	outC := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	restored := false
	restore := func() {
		if restored {
			return
		}
		restored = true
		*f = old
		_ = w.Close()
	}
	var out *string
	get := func() string {
		if out == nil {
			restore()
			s := <-outC
			out = &s
		}
		return *out
	}
	return restore, get
}
