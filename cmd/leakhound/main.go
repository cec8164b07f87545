// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the leakhound CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/leakhound/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the leakhound CLI.
var rootCmd = &cobra.Command{
	Use:   "leakhound",
	Short: "Search the ICIJ Offshore Leaks database from the terminal",
	Long: `leakhound queries the ICIJ Offshore Leaks reconciliation API for entities,
officers, and intermediaries named in the Panama Papers, Paradise Papers,
Pandora Papers, Bahamas Leaks, and Offshore Leaks investigations.

Matches can be filtered by source, entity type, score, jurisdiction, and
leak period, exported as CSV, XLSX, or PDF reports, and kept as YAML
result files for later comparison. Every search lands in a local history
with named saved searches for re-running.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./leakhound.yaml or ~/.config/leakhound/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("leakhound")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "leakhound"))
		}
	}

	viper.SetDefault("search.timeout", 15*time.Second)
	viper.SetDefault("search.user_agent", "leakhound/"+version)
	viper.SetDefault("search.max_results", 20)
	viper.SetDefault("search.max_retries", 3)
	viper.SetDefault("history.path", "leakhound.db")
	viper.SetDefault("history.recent", 15)
	viper.SetDefault("export.dir", ".")

	viper.SetEnvPrefix("LEAKHOUND")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the runtime configuration from viper, which layers
// config-file values and LEAKHOUND_* environment overrides on the defaults.
func loadConfig() types.Config {
	return types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			MaxResults: viper.GetInt("search.max_results"),
			MaxRetries: viper.GetInt("search.max_retries"),
		},
		History: types.HistoryConfig{
			Path:   viper.GetString("history.path"),
			Recent: viper.GetInt("history.recent"),
		},
		Export: types.ExportConfig{
			Dir: viper.GetString("export.dir"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
