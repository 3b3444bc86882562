package cert

import (
	"github.com/certree/certree/types"
	"github.com/certree/certree/utils"
)

// LocalDirCertStorage is a certificate storage that stores certificates in
// the per-domain local directory tree.
type LocalDirCertStorage struct {
	paths *types.DomainPaths
}

// NewLocalDirCertStorage inits a new LocalDirCertStorage.
func NewLocalDirCertStorage(paths *types.DomainPaths) *LocalDirCertStorage {
	return &LocalDirCertStorage{
		paths: paths,
	}
}

// LoadRootCert loads the Root CA certificate and key from disk.
func (c *LocalDirCertStorage) LoadRootCert() (*Certificate, error) {
	return NewCertificateFromFile(c.paths.RootCertAbsFilename(), c.paths.RootKeyAbsFilename())
}

// LoadIntermediateCert loads the Intermediate CA certificate and key from disk.
func (c *LocalDirCertStorage) LoadIntermediateCert() (*Certificate, error) {
	return NewCertificateFromFile(c.paths.IntermediateCertAbsFilename(), c.paths.IntermediateKeyAbsFilename())
}

// StoreRootCert stores the given Root CA certificate and key on disk.
func (c *LocalDirCertStorage) StoreRootCert(cert *Certificate) error {
	// the ca dir might not exist yet on the very first run
	if err := utils.CreateDirectory(c.paths.CaDir(), 0o755); err != nil {
		return err
	}

	return cert.Write(c.paths.RootCertAbsFilename(), c.paths.RootKeyAbsFilename())
}

// StoreIntermediateCert stores the given Intermediate CA certificate and key on disk.
func (c *LocalDirCertStorage) StoreIntermediateCert(cert *Certificate) error {
	if err := utils.CreateDirectory(c.paths.IntermediateDir(), 0o755); err != nil {
		return err
	}

	return cert.Write(c.paths.IntermediateCertAbsFilename(), c.paths.IntermediateKeyAbsFilename())
}

// StoreHostCert stores the given host certificate and key on disk under the
// artifact stem.
func (c *LocalDirCertStorage) StoreHostCert(stem string, cert *Certificate) error {
	if err := utils.CreateDirectory(c.paths.CertsDir(), 0o755); err != nil {
		return err
	}

	return cert.Write(c.paths.HostCertAbsFilename(stem), c.paths.HostKeyAbsFilename(stem))
}

// StoreCaChain stores the trust-chain artifact (intermediate + root).
func (c *LocalDirCertStorage) StoreCaChain(chain []byte) error {
	return utils.CreateFile(c.paths.CaChainAbsFilename(), string(chain), 0o644)
}

// StoreHostFullchain stores the full-chain artifact of a host certificate.
func (c *LocalDirCertStorage) StoreHostFullchain(stem string, chain []byte) error {
	return utils.CreateFile(c.paths.HostFullchainAbsFilename(stem), string(chain), 0o644)
}

// RootState reports whether both Root CA key and certificate files exist.
func (c *LocalDirCertStorage) RootState() TierState {
	return tierStateFromFiles(c.paths.RootKeyAbsFilename(), c.paths.RootCertAbsFilename())
}

// IntermediateState reports whether both Intermediate CA key and certificate files exist.
func (c *LocalDirCertStorage) IntermediateState() TierState {
	return tierStateFromFiles(c.paths.IntermediateKeyAbsFilename(), c.paths.IntermediateCertAbsFilename())
}

// CaChainState reports whether the trust-chain artifact exists.
func (c *LocalDirCertStorage) CaChainState() TierState {
	return tierStateFromFiles(c.paths.CaChainAbsFilename())
}

func tierStateFromFiles(files ...string) TierState {
	if utils.FilesExist(files...) {
		return TierPresent
	}
	return TierMissing
}
