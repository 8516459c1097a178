// Package cli contains implementations of CLI commands. The command code is supposed contain only logic specific to
// the CLI and delegate reusable stuff to the store and bootstrap packages.
// Commands in cli package should print results in human-readable format to stdout.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/semilin/kmdata/internal/bootstrap"
	"github.com/semilin/kmdata/internal/config"
	"github.com/semilin/kmdata/internal/model"
	"github.com/semilin/kmdata/internal/store"
	"github.com/semilin/kmdata/internal/utils"
	"github.com/spf13/viper"
)

const (
	DefaultListSeparator = ","

	OutputFormatPlain = "plain"
	OutputFormatJSON  = "json"
)

var ErrInvalidOutputFormat = errors.New("invalid output format. Valid formats are " + OutputFormatPlain + " and " + OutputFormatJSON)

func IsValidOutputFormat(format string) bool {
	return format == OutputFormatPlain || format == OutputFormatJSON
}

// Stderrf prints a message to os.Stderr, followed by newline
func Stderrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
	_, _ = fmt.Fprintln(os.Stderr)
}

// StoreOptions assembles store options from the current viper settings.
// The bootstrap fetcher is only set up if withDownload is true and downloads are enabled in the settings.
func StoreOptions(withDownload bool) (store.Options, error) {
	var opts store.Options

	dataDir := viper.GetString(config.KeyDataDir)
	if dataDir != "" {
		expanded, err := homedir.Expand(dataDir)
		if err != nil {
			return opts, fmt.Errorf("%w: %v", model.ErrNoHomeDirectory, err)
		}
		opts.DataDir = expanded
	}

	for _, s := range utils.ParseAsList(viper.GetString(config.KeyCategories), DefaultListSeparator, true) {
		c, err := model.ParseCategory(s)
		if err != nil {
			return opts, err
		}
		opts.Categories = append(opts.Categories, c)
	}

	if withDownload && viper.GetBool(config.KeyDownload) {
		cacheDir := ""
		if viper.GetBool(config.KeyHttpCache) {
			cacheDir = config.CacheDir
		}
		opts.Bootstrap = bootstrap.NewFetcher(bootstrap.Options{
			Sources:  downloadSources(),
			Timeout:  viper.GetDuration(config.KeyTimeout),
			CacheDir: cacheDir,
		})
	}

	if viper.GetBool(config.KeyVerbose) {
		opts.OnSkip = func(s model.Skip) {
			Stderrf("warning: %v", s)
		}
	}
	return opts, nil
}

func downloadSources() map[model.Category]string {
	return map[model.Category]string{
		model.Corpus:   viper.GetString(config.KeySourceCorpora),
		model.Keyboard: viper.GetString(config.KeySourceMetrics),
		model.Layout:   viper.GetString(config.KeySourceLayouts),
	}
}

func openStore(ctx context.Context, withDownload bool) (*store.Store, error) {
	opts, err := StoreOptions(withDownload)
	if err != nil {
		Stderrf("Invalid configuration: %v", err)
		return nil, err
	}
	s, err := store.Open(ctx, opts)
	if err != nil {
		printOpenError(err)
		return nil, err
	}
	return s, nil
}

func printOpenError(err error) {
	switch {
	case errors.Is(err, model.ErrNoHomeDirectory):
		Stderrf("%v. Set the data directory explicitly with --data-dir or %s_DATADIR", err, strings.ToUpper(config.EnvPrefix))
	case errors.Is(err, model.ErrNetwork):
		Stderrf("Could not download resources: %v\nCheck your connection or run with --no-download", err)
	default:
		Stderrf("Could not open data directory: %v", err)
	}
}

// printLoadError explains why a resource could not be loaded
func printLoadError(c model.Category, name string, err error) {
	var pErr *model.PathError
	switch {
	case errors.Is(err, model.ErrNotFound):
		Stderrf("%s `%s` is not installed. Run `%s list %s` to see what is available", c, name, utils.AppName, c.Dir())
	case errors.Is(err, model.ErrDeserialization):
		Stderrf("%s `%s` is installed but corrupt: %v", c, name, err)
	case errors.As(err, &pErr):
		Stderrf("Could not read %s `%s` from %s: %v", c, name, pErr.Path, pErr.Err)
	default:
		Stderrf("Could not load %s `%s`: %v", c, name, err)
	}
}

func printJSON(v any) error {
	data, err := utils.EncodeJSONWithoutEscapeHTML(v)
	if err != nil {
		Stderrf("%v", err)
		return err
	}
	_, _ = os.Stdout.Write(utils.ConvertToNativeLineEndings(data))
	return nil
}
