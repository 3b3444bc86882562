// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"errors"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/certree/certree/cert"
	cerrors "github.com/certree/certree/errors"
	"github.com/certree/certree/utils"
)

var (
	domain       string
	host         string
	altNames     []string
	parentDomain string

	country          string
	state            string
	locality         string
	organization     string
	organizationUnit string

	caOnly         bool
	nonInteractive bool
)

func init() {
	RootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&domain, "domain", "", "", "domain to generate the hierarchy for")
	generateCmd.Flags().StringVarP(&host, "host", "", "",
		"hostname token; '*' issues a wildcard certificate for the domain")
	generateCmd.Flags().StringSliceVarP(&altNames, "san", "", []string{},
		"additional subject alternative names; normalized like the hostname token")
	generateCmd.Flags().StringVarP(&parentDomain, "parent", "", "",
		"parent domain whose root and intermediate CAs are reused")
	generateCmd.Flags().StringVarP(&country, "country", "", "", "certificate subject Country")
	generateCmd.Flags().StringVarP(&state, "state", "", "", "certificate subject State/Province")
	generateCmd.Flags().StringVarP(&locality, "city", "", "", "certificate subject Locality")
	generateCmd.Flags().StringVarP(&organization, "org", "o", "", "certificate subject Organization")
	generateCmd.Flags().StringVarP(&organizationUnit, "ou", "", "", "certificate subject Organization Unit")
	generateCmd.Flags().BoolVarP(&caOnly, "ca-only", "", false,
		"only ensure the root and intermediate CAs, do not issue a host certificate")
	generateCmd.Flags().BoolVarP(&nonInteractive, "non-interactive", "", false,
		"never prompt for missing values, fail instead")
}

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "generate the root and intermediate CAs of a domain and optionally a host certificate",
	RunE:    generateFn,
}

func generateFn(_ *cobra.Command, _ []string) error {
	cfg, err := loadGenerateConfig()
	if err != nil {
		return err
	}

	if domain == "" {
		domain, err = promptedValue("domain (e.g. example.com)", errDomainRequired)
		if err != nil {
			return err
		}
		if domain == "" {
			return errDomainRequired
		}
	}

	if host == "" && !caOnly {
		host, err = promptedValue("hostname token (e.g. www or '*'; empty for CA only)",
			cerrors.ErrMissingHostname)
		if err != nil {
			return err
		}
	}

	svc := cert.NewService(baseDir, cfg)

	res, err := svc.Run(&cert.Request{
		Domain:   domain,
		Parent:   parentDomain,
		Host:     host,
		AltNames: altNames,
	})
	if err != nil {
		return err
	}

	if res.Stem == "" {
		log.Infof("CA tiers for domain %s are in place under %s", domain, res.Paths.DomainDir())
		return nil
	}

	log.Infof("issued %s; artifacts: %s, %s, %s",
		res.Fqdn,
		res.Paths.HostKeyAbsFilename(res.Stem),
		res.Paths.HostCertAbsFilename(res.Stem),
		res.Paths.HostFullchainAbsFilename(res.Stem))

	return nil
}

// loadGenerateConfig layers the subject defaults: built-ins, then the yaml
// config file, then CERTREE_* env vars, then explicit flags.
func loadGenerateConfig() (*cert.Config, error) {
	cfg, err := cert.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	fromEnv(&cfg.Country, "CERTREE_COUNTRY")
	fromEnv(&cfg.State, "CERTREE_STATE")
	fromEnv(&cfg.Locality, "CERTREE_CITY")
	fromEnv(&cfg.Organization, "CERTREE_ORG")
	fromEnv(&cfg.OrganizationUnit, "CERTREE_OU")

	applyOverride(&cfg.Country, country)
	applyOverride(&cfg.State, state)
	applyOverride(&cfg.Locality, locality)
	applyOverride(&cfg.Organization, organization)
	applyOverride(&cfg.OrganizationUnit, organizationUnit)

	return cfg, nil
}

var errDomainRequired = errors.New("a domain is required")

// promptedValue asks the user for a value on a terminal; in non-interactive
// mode (flag or no tty) it fails fast with the given error instead.
func promptedValue(prompt string, missing error) (string, error) {
	if nonInteractive || !utils.IsTerminal(os.Stdin.Fd()) {
		return "", missing
	}

	return utils.Prompt(os.Stdin, prompt)
}

func fromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func applyOverride(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
