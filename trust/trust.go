// Package trust manages installation and verification of a Root CA
// certificate in the operating system's trust store. It consumes only the
// Root certificate file produced by the cert package.
package trust

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Installer installs Root CA certificates into the Debian-style system trust
// store and triggers a store update.
type Installer struct {
	storeDir  string
	updateCmd []string
}

// NewInstaller returns an Installer for the local system trust store.
func NewInstaller() *Installer {
	return &Installer{
		storeDir:  "/usr/local/share/ca-certificates",
		updateCmd: []string{"update-ca-certificates"},
	}
}

// Install writes the Root CA PEM into the trust store under the given name
// and refreshes the store. Requires elevated privileges.
func (i *Installer) Install(name string, rootPEM []byte) error {
	if _, err := parsePEMCertificate(rootPEM); err != nil {
		return err
	}

	dst := i.storePath(name)

	log.Infof("installing root CA into trust store as %s", dst)

	if err := os.WriteFile(dst, rootPEM, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}

	return i.update()
}

// Installed reports whether the trust store holds this exact Root CA PEM
// under the given name.
func (i *Installer) Installed(name string, rootPEM []byte) (bool, error) {
	stored, err := os.ReadFile(i.storePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return bytes.Equal(bytes.TrimSpace(stored), bytes.TrimSpace(rootPEM)), nil
}

func (i *Installer) storePath(name string) string {
	return filepath.Join(i.storeDir, name+".crt")
}

func (i *Installer) update() error {
	out, err := exec.Command(i.updateCmd[0], i.updateCmd[1:]...).CombinedOutput() // skipcq: GSC-G204
	if err != nil {
		return fmt.Errorf("trust store update failed: %v: %s", err, out)
	}

	log.Debugf("trust store update: %s", out)

	return nil
}

// parsePEMCertificate decodes a PEM-encoded certificate and returns the
// parsed x509 certificate.
func parsePEMCertificate(pemData []byte) (*x509.Certificate, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("no PEM block found in certificate data")
	}
	if block.Type != "CERTIFICATE" {
		return nil, fmt.Errorf("unexpected PEM block type %q, expected CERTIFICATE", block.Type)
	}
	return x509.ParseCertificate(block.Bytes)
}
