package cmd

import (
	"fmt"
	"os"

	"github.com/cfglab/condlint/lint"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfig = `name: condlint
rules: {}
# Declare the cfg names (and, per name, the allowed values) your project
# uses. A name with no values accepts any value, or none at all.
expected:
  feature: []
`

// initCmd: condlint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new condlint configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		path := cfgFile
		if path == "" {
			path = lint.DefaultConfigFileName
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = lint.DefaultConfigFileName
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(defaultConfig)
	return err
}
