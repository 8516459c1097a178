package cli

import (
	"fmt"

	"github.com/semilin/kmdata/internal/config"
	"github.com/semilin/kmdata/internal/utils"
	"github.com/spf13/viper"
)

func Version() {
	fmt.Printf("%s version %s\n", utils.AppName, utils.GetVersion())
	cf := viper.ConfigFileUsed()
	if cf == "" {
		cf = fmt.Sprintf("No config.json file found in '%s'. Using default settings", config.ConfigDir)
	}
	fmt.Printf("Configuration file used: %s\n", cf)
}
