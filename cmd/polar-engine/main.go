// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the polar-engine CLI.
// Implements: prd001-conversion, prd002-merge, prd003-history (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the polar-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "polar-engine",
	Short: "Convert airfoil polar files into aeroelastic simulator tables",
	Long: `polar-engine converts a directory of airfoil polar files (fixed-layout
text tables from an aerodynamic-analysis tool) into the input-table format of
an aeroelastic simulator, then merges the converted tables into one
multi-table library file.

Each pipeline stage is a subcommand: convert processes source polars one file
at a time with per-file isolation, merge combines converted tables into a
library, and run executes both stages back to back. history queries past
runs.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./polar-engine.yaml or ~/.config/polar-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("polar-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "polar-engine"))
		}
	}

	viper.SetEnvPrefix("POLAR_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setting resolves one string setting: explicit flag first, then the config
// file / environment, then the built-in default.
func setting(cmd *cobra.Command, flag, key, fallback string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
