package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/radscene/foundation/core/error"
	mdwlog "github.com/msto63/radscene/foundation/core/log"
	"github.com/msto63/radscene/pkg/core/config"
	"github.com/msto63/radscene/pkg/core/logging"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string
)

// Set up by PersistentPreRunE for every command
var (
	appConfig *config.Config
	appLogger *mdwlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "radscene",
	Short: "radscene - Radiance Szenen-Werkzeug",
	Long: `radscene liest Radiance Szenenbeschreibungen (.rad, .mat, .sky, ...)
und zerlegt sie in einzelne Primitive.

Befehle:
  parse    - Szenen parsen und als JSON, JSONL, YAML oder Tabelle ausgeben
  store    - Gespeicherte Parse-Laeufe verwalten
  view     - Interaktiver Scene Viewer
  version  - Versionsinformationen`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: $RADSCENE_CONFIG oder ./configs/radscene.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug-Ausgaben aktivieren")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log-Format: text, json, console, logfmt")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logCfg := logging.ConfigFromGeneral("radscene", cfg.General)
	if verbose {
		logCfg.Level = "debug"
	}
	if logFormat != "" {
		if _, err := mdwlog.ParseFormat(logFormat); err != nil {
			return mdwerror.Wrap(err, "invalid --log-format").
				WithCode(mdwerror.CodeInvalidConfig).
				WithDetail("field", "log-format")
		}
		logCfg.Format = logFormat
	}
	logCfg.Output = cmd.ErrOrStderr()
	logCfg.RequestID = uuid.NewString()

	appConfig = cfg
	appLogger = logging.NewLogger(logCfg).WithField("command", cmd.Name())
	appLogger.Debug("Configuration loaded", mdwlog.Fields{
		"config":     configSource(),
		"log_level":  logCfg.Level,
		"log_format": logCfg.Format,
	})
	return nil
}

// loadConfig reads --config, then $RADSCENE_CONFIG and the default paths.
// Without any config file the built-in defaults apply.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}

	cfg, err := config.LoadFromEnv()
	if err == nil {
		return cfg, nil
	}
	if mdwerror.HasCode(err, mdwerror.CodeNotFound) && os.Getenv(config.EnvConfigPath) == "" {
		return config.Default(), nil
	}
	return nil, err
}

func configSource() string {
	switch {
	case cfgFile != "":
		return cfgFile
	case os.Getenv(config.EnvConfigPath) != "":
		return os.Getenv(config.EnvConfigPath)
	default:
		return "defaults"
	}
}

func componentLogger(name string) *logging.Logger {
	return logging.Wrap(appLogger, name)
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %v\n", err)
}
