package cert

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/certree/certree/utils"
)

// Certificate stores the combination of a PEM encoded certificate and its
// private key.
type Certificate struct {
	Cert []byte
	Key  []byte
}

// NewCertificateFromFile creates a new Certificate by loading cert and key
// from the respective files.
func NewCertificateFromFile(certFilePath, keyFilePath string) (*Certificate, error) {
	cert := &Certificate{}

	_, err := os.Stat(certFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed loading cert file %v", err)
	}
	cert.Cert, err = utils.ReadFileContent(certFilePath)
	if err != nil {
		return nil, err
	}

	_, err = os.Stat(keyFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed loading key file %v", err)
	}
	cert.Key, err = utils.ReadFileContent(keyFilePath)
	if err != nil {
		return nil, err
	}

	return cert, nil
}

// Write writes the cert and key to disk. The key file is written with mode
// 0600 since it is a long-lived secret, the certificate with 0644.
func (c *Certificate) Write(certPath, keyPath string) error {
	log.Debugf("writing cert file to %s", certPath)

	err := utils.CreateFile(certPath, string(c.Cert), 0o644)
	if err != nil {
		return err
	}

	log.Debugf("writing key file to %s", keyPath)

	return utils.CreateFile(keyPath, string(c.Key), 0o600)
}
