package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	KeyLog             = "log"
	KeyLogLevel        = "logLevel"
	KeyDataDir         = "dataDir"
	KeyDownload        = "download"
	KeyTimeout         = "timeout"
	KeyHttpCache       = "httpCache"
	KeyCategories      = "categories"
	KeyVerbose         = "verbose"
	KeyColumnWidth     = "columnWidth"
	KeySourceCorpora   = "sources.corpora"
	KeySourceMetrics   = "sources.metrics"
	KeySourceLayouts   = "sources.layouts"
	EnvPrefix          = "kmdata"
	DefaultTimeout     = 8 * time.Second
	DefaultColumnWidth = 40
	DefaultCorporaURL  = "https://api.github.com/repos/semilin/km_corpora/contents/"
	DefaultMetricsURL  = "https://api.github.com/repos/semilin/km_metric_data/contents/"
	DefaultLayoutsURL  = "https://api.github.com/repos/semilin/km_layouts/contents/"
)

var HomeDir string
var ConfigDir string

// CacheDir is where the http cache for bootstrap downloads is kept. Empty if the user cache directory
// cannot be determined
var CacheDir string

func InitConfig() {
	var err error
	HomeDir, err = homedir.Dir()
	if err != nil {
		// the data directory locator reports this properly when it is actually needed
		HomeDir = ""
	}
	ConfigDir = filepath.Join(HomeDir, ".kmdata")

	if cd, err := os.UserCacheDir(); err == nil {
		CacheDir = filepath.Join(cd, "kmdata")
	}
}

func InitViper() {
	viper.SetDefault(KeyLog, false)
	viper.SetDefault(KeyLogLevel, "INFO")
	viper.SetDefault(KeyDataDir, "")
	viper.SetDefault(KeyDownload, true)
	viper.SetDefault(KeyTimeout, DefaultTimeout)
	viper.SetDefault(KeyHttpCache, false)
	viper.SetDefault(KeyCategories, "")
	viper.SetDefault(KeyVerbose, false)
	viper.SetDefault(KeyColumnWidth, DefaultColumnWidth)
	viper.SetDefault(KeySourceCorpora, DefaultCorporaURL)
	viper.SetDefault(KeySourceMetrics, DefaultMetricsURL)
	viper.SetDefault(KeySourceLayouts, DefaultLayoutsURL)

	viper.SetConfigType("json")
	viper.SetConfigName("config")
	if HomeDir != "" {
		viper.AddConfigPath(ConfigDir)
	}
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; do nothing and rely on defaults
		} else {
			panic("cannot read config: " + err.Error())
		}
	}
	// the environment variables have to match pattern "kmdata_<viper variable>", lower or uppercase
	viper.SetEnvPrefix(EnvPrefix)

	_ = viper.BindEnv(KeyLog)         // env variable name = KMDATA_LOG
	_ = viper.BindEnv(KeyLogLevel)    // env variable name = KMDATA_LOGLEVEL
	_ = viper.BindEnv(KeyDataDir)     // env variable name = KMDATA_DATADIR
	_ = viper.BindEnv(KeyDownload)    // env variable name = KMDATA_DOWNLOAD
	_ = viper.BindEnv(KeyTimeout)     // env variable name = KMDATA_TIMEOUT
	_ = viper.BindEnv(KeyHttpCache)   // env variable name = KMDATA_HTTPCACHE
	_ = viper.BindEnv(KeyCategories)  // env variable name = KMDATA_CATEGORIES
	_ = viper.BindEnv(KeyColumnWidth) // env variable name = KMDATA_COLUMNWIDTH
}
