// internal/commands/root.go
package benchcsv

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/mwiater/benchcsv/internal/appconfig"
	"github.com/mwiater/benchcsv/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// app carries the state shared by one command tree: the --config value and
// the configuration resolved for the running command.
type app struct {
	cfgFile string
	config  appconfig.Config
}

// NewRootCmd builds the benchcsv command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	d := appconfig.Defaults()

	rootCmd := &cobra.Command{
		Use:          "benchcsv",
		Short:        "benchcsv — convert benchmark result JSON into CSV",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			a.config = cfg

			var console io.Writer = os.Stdout
			if cfg.Quiet {
				console = nil
			}
			if err := logging.InitWithConsole(cfg.LogFilePath(), console); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logging.SetDebug(cfg.Debug)
			logging.Debug("Using configuration %+v", cfg)
			return nil
		},
	}
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., benchcsv.json)")
	rootCmd.PersistentFlags().String("dir", d.Dir, "directory holding the benchmark files")
	rootCmd.PersistentFlags().String("suffix", d.Suffix, "file name suffix that marks benchmark files")
	rootCmd.PersistentFlags().String("logFile", d.LogFile, "also append log output to this file")
	rootCmd.PersistentFlags().Bool("debug", d.Debug, "enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", d.Quiet, "suppress progress logging on stdout")

	rootCmd.AddCommand(newConsolidateCmd(a), newConvertCmd(a), newShowConfigCmd(a))
	return rootCmd
}

// Execute runs the command tree and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	err := NewRootCmd().Execute()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig merges flags > environment > config file > defaults.
func (a *app) loadConfig(cmd *cobra.Command) (appconfig.Config, error) {
	v := viper.New()
	for key, value := range appconfig.DefaultValues() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(appconfig.EnvPrefix)
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return appconfig.Config{}, fmt.Errorf("bind flags: %w", err)
	}

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
			// Only a config file the user asked for has to exist.
			if !missing || cmd.Flags().Changed("config") {
				return appconfig.Config{}, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	var cfg appconfig.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return appconfig.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ConfigPath = a.cfgFile
	if err := cfg.Validate(); err != nil {
		return appconfig.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
