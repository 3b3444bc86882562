// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/certree/certree/utils"
)

func init() {
	RootCmd.AddCommand(inspectCmd)
}

// inspectCmd reports validity dates, subject and SANs of an existing
// certificate file. Pure read-only formatting.
var inspectCmd = &cobra.Command{
	Use:     "inspect <certificate-file>",
	Short:   "show subject, validity and SANs of a certificate file",
	Aliases: []string{"ins", "i"},
	Args:    cobra.ExactArgs(1),
	RunE:    inspectFn,
}

func inspectFn(_ *cobra.Command, args []string) error {
	b, err := utils.ReadFileContent(args[0])
	if err != nil {
		return err
	}

	block, _ := pem.Decode(b)
	if block == nil {
		return errors.New("no PEM block found in certificate file")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return err
	}

	sans := make([]string, 0, len(cert.DNSNames)+len(cert.IPAddresses))
	sans = append(sans, cert.DNSNames...)
	for _, ip := range cert.IPAddresses {
		sans = append(sans, ip.String())
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)

	table.AppendBulk([][]string{
		{"Common Name", cert.Subject.CommonName},
		{"Issuer", cert.Issuer.CommonName},
		{"Serial", cert.SerialNumber.String()},
		{"CA", fmt.Sprintf("%t", cert.IsCA)},
		{"Not Before", cert.NotBefore.Format("2006-01-02 15:04:05 MST")},
		{"Not After", fmt.Sprintf("%s (%s)",
			cert.NotAfter.Format("2006-01-02 15:04:05 MST"), humanize.Time(cert.NotAfter))},
		{"SANs", strings.Join(sans, ", ")},
	})

	table.Render()

	return nil
}
