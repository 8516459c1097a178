package main

import (
	"github.com/semilin/kmdata/cmd"
	"github.com/semilin/kmdata/internal/config"
)

func init() {
	config.InitConfig()
	config.InitViper()
}

func main() {
	cmd.Execute()
}
