// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the litreview CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litreview/internal/logging"
	"github.com/pdiddy/litreview/internal/secrets"
	"github.com/pdiddy/litreview/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	secretsDir = ".secrets/"
	envFile    = ".env"

	// viperKeyAnnotation marks a flag with the config key it overrides.
	viperKeyAnnotation = "litreview_config_key"
)

var (
	// cfg is the effective configuration: defaults, then config file,
	// then environment, then flags.
	cfg = types.DefaultConfig()

	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// rootCmd is the base command for the litreview CLI.
var rootCmd = &cobra.Command{
	Use:   "litreview",
	Short: "Literature review toolkit for machine learning in marine biomass estimation",
	Long: `litreview supports a systematic literature review: it filters an exported
bibliography by publication type, topic and keywords, models topics over the
abstracts, assigns application and methodology categories, searches scholarly
APIs for new candidates, and renders the review's figures and workbook.

Settings come from litreview.yaml (in . or ~/.config/litreview/), from
LITREVIEW_* environment variables, and from flags, in increasing priority.
API keys are read from .secrets/ and .env.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd)
		if err := loadConfig(); err != nil {
			return err
		}
		logger = logging.New(viper.GetString("log_level"), os.Stderr)
		slog.SetDefault(logger)

		s, err := secrets.Resolve(secretsDir, envFile)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		secrets.Apply(s, &cfg.Search)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./litreview.yaml or ~/.config/litreview/litreview.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	configKey(rootCmd.PersistentFlags(), "log-level", "log_level")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("litreview")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "litreview"))
		}
	}

	if err := loadDotEnv(envFile); err != nil {
		fmt.Fprintln(os.Stderr, "Ignoring", envFile+":", err)
	}
	viper.SetEnvPrefix("LITREVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := setDefaults(types.DefaultConfig()); err != nil {
		fmt.Fprintln(os.Stderr, "Invalid default config:", err)
	}
	viper.SetDefault("log_level", "warn")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadDotEnv exports the variables in path so LITREVIEW_* entries reach
// the config. Variables already set in the environment win. A missing file
// is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// setDefaults registers every leaf of defaults under its dotted key, so
// that environment variables and bound flags resolve against known keys.
func setDefaults(defaults types.PipelineConfig) error {
	data, err := yaml.Marshal(defaults)
	if err != nil {
		return err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	setDefaultTree("", tree)
	return nil
}

func setDefaultTree(prefix string, tree map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			setDefaultTree(key, sub)
			continue
		}
		viper.SetDefault(key, v)
	}
}

// loadConfig decodes the merged viper settings into cfg.
func loadConfig() error {
	loaded := types.DefaultConfig()
	err := viper.Unmarshal(&loaded, func(c *mapstructure.DecoderConfig) {
		c.TagName = "yaml"
		c.Squash = true
	})
	if err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	cfg = loaded
	return nil
}

// configKey ties a flag to a config key. The binding is made only for the
// command that runs, because several commands expose the same key.
func configKey(flags *pflag.FlagSet, name, key string) {
	if err := flags.SetAnnotation(name, viperKeyAnnotation, []string{key}); err != nil {
		panic(err)
	}
}

func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if keys, ok := f.Annotations[viperKeyAnnotation]; ok && len(keys) > 0 {
			_ = viper.BindPFlag(keys[0], f)
		}
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
