// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	debugCount int
	logLevel   string
	baseDir    string
	configFile string
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:               "certree",
	Short:             "manage a per-domain certificate trust hierarchy of root, intermediate and host certificates",
	PersistentPreRunE: preRunFn,
}

func init() {
	RootCmd.SilenceUsage = true
	RootCmd.PersistentFlags().CountVarP(&debugCount, "debug", "d", "enable debug mode")
	RootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info",
		"logging level; one of [trace, debug, info, warning, error, fatal]")
	RootCmd.PersistentFlags().StringVarP(&baseDir, "base-dir", "b", ".",
		"base directory holding the domains/ tree")
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "~/.certree.yml",
		"path to a yaml file with certificate subject defaults")
}

func preRunFn(_ *cobra.Command, _ []string) error {
	// setting log level
	switch {
	case debugCount > 0:
		log.SetLevel(log.DebugLevel)
	default:
		l, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}

		log.SetLevel(l)
	}

	// setting output to stderr, so that file paths printed to stdout can be parsed
	log.SetOutput(os.Stderr)

	// optional .env file with CERTREE_* subject defaults
	_ = godotenv.Load()

	var err error

	baseDir, err = homedir.Expand(baseDir)
	if err != nil {
		return err
	}
	baseDir, err = filepath.Abs(baseDir)
	if err != nil {
		return err
	}

	configFile, err = homedir.Expand(configFile)

	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
