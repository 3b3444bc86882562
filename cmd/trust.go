// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/certree/certree/trust"
	"github.com/certree/certree/types"
	"github.com/certree/certree/utils"
)

func init() {
	RootCmd.AddCommand(trustCmd)
	trustCmd.AddCommand(trustInstallCmd)
	trustCmd.AddCommand(trustCheckCmd)

	trustCmd.PersistentFlags().StringVarP(&domain, "domain", "", "", "domain whose root CA is handled")
	_ = trustCmd.MarkPersistentFlagRequired("domain")
}

var trustCmd = &cobra.Command{
	Use:   "trust",
	Short: "system trust store operations for a domain's root CA",
}

var trustInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "install the domain's root CA into the system trust store",
	RunE: func(_ *cobra.Command, _ []string) error {
		rootPEM, err := loadRootPEM()
		if err != nil {
			return err
		}

		return trust.NewInstaller().Install(trustStoreName(), rootPEM)
	},
}

var trustCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "check whether the domain's root CA is installed in the system trust store",
	RunE: func(_ *cobra.Command, _ []string) error {
		rootPEM, err := loadRootPEM()
		if err != nil {
			return err
		}

		ok, err := trust.NewInstaller().Installed(trustStoreName(), rootPEM)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("root CA of domain %s is not installed", domain)
		}

		log.Infof("root CA of domain %s is installed", domain)

		return nil
	},
}

func loadRootPEM() ([]byte, error) {
	paths := types.NewDomainPaths(baseDir, domain)

	rootPEM, err := utils.ReadFileContent(paths.RootCertAbsFilename())
	if err != nil {
		return nil, fmt.Errorf("domain %s has no root CA certificate: %w", domain, err)
	}

	return rootPEM, nil
}

func trustStoreName() string {
	return "certree-" + domain
}
