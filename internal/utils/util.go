package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const AppName = "kmdata"

var KmdataVersion = "n/a"

// GetVersion returns KmdataVersion without the leading 'v' if it is a valid semantic version,
// or as is otherwise
func GetVersion() string {
	v, err := semver.NewVersion(KmdataVersion)
	if err != nil {
		return KmdataVersion
	}
	return strings.TrimPrefix(v.Original(), "v")
}

// UserAgent returns the value of the User-Agent header sent with all outgoing requests
func UserAgent() string {
	return AppName + "/" + GetVersion()
}

// RemoveBOM strips a UTF-8 Byte-Order-Mark from the beginning of data
func RemoveBOM(data []byte) []byte {
	if len(data) > 2 && data[0] == 0xef && data[1] == 0xbb && data[2] == 0xbf {
		data = data[3:]
	}
	return data
}

// IsPlainFileName reports whether name can be used as-is as the name of a file inside a directory,
// i.e. it is not empty, not "." or "..", and contains no path separators
func IsPlainFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}

// ConvertToNativeLineEndings converts all instances of '\n' to native line endings for the platform.
// Assumes that line endings are normalized, i.e. there are no '\r' or "\r\n" line endings in the data
func ConvertToNativeLineEndings(b []byte) []byte {
	return convertToNativeLineEndings(b)
}

func EncodeJSONWithoutEscapeHTML(v any) ([]byte, error) {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("unexpected encoding error %w", err)
	}
	return buffer.Bytes(), nil
}

// AtomicWriteFile writes data to the named file quasi-atomically, creating it if necessary.
// On unix-like systems, the function uses github.com/google/renameio.
// On Windows, it writes a temporary file next to the target and renames it with os.Rename(),
// which is believed to be atomic on NTFS.
func AtomicWriteFile(name string, data []byte, perm os.FileMode) error {
	return atomicWriteFile(name, data, perm)
}

func ParseAsList(list, separator string, trim bool) []string {
	ret := make([]string, 0)

	for _, entry := range strings.Split(list, separator) {
		if trim {
			entry = strings.TrimSpace(entry)
		}
		if entry != "" {
			ret = append(ret, entry)
		}
	}
	return ret
}

type ctxKey string

const CtxKeyLogger = ctxKey("logger")

// GetLogger returns the logger that is valid in the context
// If component is not empty, the logger is extended with the field "where" having that value.
func GetLogger(ctx context.Context, component string) *slog.Logger {
	cv := ctx.Value(CtxKeyLogger)
	l, ok := cv.(*slog.Logger)
	if !ok || l == nil {
		l = slog.Default()
	}
	if component != "" {
		l = l.With("where", component)
	}
	return l
}
