// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"fmt"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/certree/certree/cert"
	"github.com/certree/certree/deploy"
	"github.com/certree/certree/types"
	"github.com/certree/certree/utils"
)

var (
	deployTarget string
	deployDir    string
	deployKey    string
	deployOwner  string
	deployChain  bool
)

func init() {
	RootCmd.AddCommand(deployCmd)

	deployCmd.Flags().StringVarP(&domain, "domain", "", "", "domain the host certificate belongs to")
	deployCmd.Flags().StringVarP(&host, "host", "", "", "hostname token the certificate was issued for")
	deployCmd.Flags().StringVarP(&deployTarget, "target", "t", "", "remote destination as user@host[:port]")
	deployCmd.Flags().StringVarP(&deployDir, "dest-dir", "", "/etc/ssl/private", "remote directory to copy the artifacts into")
	deployCmd.Flags().StringVarP(&deployKey, "identity", "i", "~/.ssh/id_rsa", "ssh identity file")
	deployCmd.Flags().StringVarP(&deployOwner, "owner", "", "", "remote owner (user or user:group) for the copied files")
	deployCmd.Flags().BoolVarP(&deployChain, "with-ca-chain", "", false, "also copy the domain's ca-chain.crt")

	_ = deployCmd.MarkFlagRequired("domain")
	_ = deployCmd.MarkFlagRequired("host")
	_ = deployCmd.MarkFlagRequired("target")
}

// deployCmd copies an issued key/cert/fullchain triple to a remote host.
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "copy issued certificate artifacts to a remote host over ssh",
	RunE:  deployFn,
}

func deployFn(_ *cobra.Command, _ []string) error {
	user, addr, err := splitTarget(deployTarget)
	if err != nil {
		return err
	}

	keyPath, err := homedir.Expand(deployKey)
	if err != nil {
		return err
	}

	paths := types.NewDomainPaths(baseDir, domain)
	stem := cert.FileStem(cert.HostFQDN(host, domain))

	files := []string{
		paths.HostKeyAbsFilename(stem),
		paths.HostCertAbsFilename(stem),
		paths.HostFullchainAbsFilename(stem),
	}
	if deployChain {
		files = append(files, paths.CaChainAbsFilename())
	}

	if !utils.FilesExist(files...) {
		return fmt.Errorf("artifacts for %s are incomplete under %s, generate them first", stem, paths.CertsDir())
	}

	d := deploy.NewDeployer(&deploy.Target{
		Addr:    addr,
		User:    user,
		KeyPath: keyPath,
		Dir:     deployDir,
		Owner:   deployOwner,
	})

	if err := d.Deploy(files...); err != nil {
		return err
	}

	log.Infof("deployed %d artifacts for %s to %s:%s", len(files), stem, addr, deployDir)

	return nil
}

func splitTarget(target string) (user, addr string, err error) {
	user, addr, found := strings.Cut(target, "@")
	if !found || user == "" || addr == "" {
		return "", "", fmt.Errorf("invalid target %q, expected user@host[:port]", target)
	}

	if !strings.Contains(addr, ":") {
		addr += ":22"
	}

	return user, addr, nil
}
