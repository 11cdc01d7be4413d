package cmd

import (
	"strings"

	"github.com/ThomasCrouzet/snapmatrix/internal/logging"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool

	// configReadErr holds the failure to read an existing config file.
	// Commands report it instead of running on defaults.
	configReadErr error
)

// Keys that can be set from SNAPMATRIX_* environment variables.
var envKeys = []string{
	"output",
	"format",
	"theme",
	"direction",
	"family",
	"catalog.kernel_order",
	"catalog.file",
	"pipeline.timeout",
	"pipeline.upload.enabled",
}

var rootCmd = &cobra.Command{
	Use:   "snapmatrix",
	Short: "Generate snapshot-restore test pipelines across instances and kernels",
	Long: `snapmatrix enumerates every (source instance, source kernel) to
(destination instance, destination kernel) snapshot restore worth testing,
and renders the matrix as a Buildkite pipeline: create snapshots, wait,
then restore each one on its destination agent.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetVerbose(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: snapmatrix.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
}

func initConfig() {
	logging.SetVerbose(verbose)
	configReadErr = nil

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("snapmatrix")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("SNAPMATRIX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, k := range envKeys {
		_ = viper.BindEnv(k)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return
		}
		file := viper.ConfigFileUsed()
		if file == "" {
			file = "snapmatrix.yml"
		}
		logging.WithFields(logrus.Fields{"file": file, "error": err}).Debug("reading config")
		configReadErr = &model.ConfigError{
			Field:      "config",
			Message:    err.Error(),
			Suggestion: "fix the YAML syntax in " + file,
		}
		return
	}
	logging.WithFields(logrus.Fields{"file": viper.ConfigFileUsed()}).Debug("config loaded")
}
