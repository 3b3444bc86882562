package cert

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/nightlyone/lockfile"
	log "github.com/sirupsen/logrus"
)

// Common name prefixes of the two CA tiers. The domain is appended, e.g.
// "Root CA.example.com".
const (
	RootCNPrefix         = "Root CA."
	IntermediateCNPrefix = "Intermediate CA."
)

const (
	lockRetries    = 50
	lockRetryDelay = 100 * time.Millisecond
)

// HierarchyManager idempotently ensures that Root and Intermediate CA
// material exists for a domain, generating it through the cryptographic
// provider only when absent.
type HierarchyManager struct {
	ca      CertificateAuthority
	storage CertStorage
	cfg     *Config
	domain  string
}

// NewHierarchyManager inits a HierarchyManager for a domain.
func NewHierarchyManager(ca CertificateAuthority, storage CertStorage, cfg *Config, domain string) *HierarchyManager {
	return &HierarchyManager{
		ca:      ca,
		storage: storage,
		cfg:     cfg,
		domain:  domain,
	}
}

// Ensure runs the Root and Intermediate transitions under the per-domain
// advisory lock, so two invocations racing on the same domain cannot both
// generate CA keys.
func (m *HierarchyManager) Ensure(lockPath string) error {
	unlock, err := lockDomain(lockPath)
	if err != nil {
		return err
	}
	defer unlock()

	if err := m.EnsureRoot(); err != nil {
		return err
	}

	return m.EnsureIntermediate()
}

// EnsureRoot makes sure Root CA material exists, generating a self-signed
// Root only when absent. Present material is loaded and reused, no
// cryptographic operation takes place.
func (m *HierarchyManager) EnsureRoot() error {
	if m.storage.RootState() == TierPresent {
		log.Debugf("root CA for domain %s already present, reusing", m.domain)

		rootCert, err := m.storage.LoadRootCert()
		if err != nil {
			return err
		}

		return m.ca.SetRootCert(rootCert)
	}

	log.Infof("creating root CA for domain %s", m.domain)

	rootCert, err := m.ca.GenerateRootCert(&CACSRInput{
		CommonName:       RootCNPrefix + m.domain,
		Country:          m.cfg.Country,
		State:            m.cfg.State,
		Locality:         m.cfg.Locality,
		Organization:     m.cfg.Organization,
		OrganizationUnit: m.cfg.OrganizationUnit,
		Expiry:           m.cfg.RootExpiry,
		KeySize:          m.cfg.RootKeySize,
	})
	if err != nil {
		return err
	}

	if err := m.storage.StoreRootCert(rootCert); err != nil {
		return err
	}

	return m.ca.SetRootCert(rootCert)
}

// EnsureIntermediate makes sure Intermediate CA material exists, generating
// and signing it with the Root only when absent. The trust-chain artifact
// (intermediate + root) is rebuilt whenever it is missing, even if the
// Intermediate itself was already present; this recovers a chain file lost
// in a partial prior run.
func (m *HierarchyManager) EnsureIntermediate() error {
	var intermediateCert *Certificate
	var err error

	if m.storage.IntermediateState() == TierPresent {
		log.Debugf("intermediate CA for domain %s already present, reusing", m.domain)

		intermediateCert, err = m.storage.LoadIntermediateCert()
		if err != nil {
			return err
		}
	} else {
		log.Infof("creating intermediate CA for domain %s", m.domain)

		intermediateCert, err = m.ca.GenerateIntermediateCert(&CACSRInput{
			CommonName:       IntermediateCNPrefix + m.domain,
			Country:          m.cfg.Country,
			State:            m.cfg.State,
			Locality:         m.cfg.Locality,
			Organization:     m.cfg.Organization,
			OrganizationUnit: m.cfg.OrganizationUnit,
			Expiry:           m.cfg.IntermediateExpiry,
			KeySize:          m.cfg.IntermediateKeySize,
		})
		if err != nil {
			return err
		}

		if err := m.storage.StoreIntermediateCert(intermediateCert); err != nil {
			return err
		}
	}

	if err := m.ca.SetIntermediateCert(intermediateCert); err != nil {
		return err
	}

	if m.storage.CaChainState() == TierMissing {
		log.Debugf("trust chain for domain %s absent, rebuilding", m.domain)

		rootCert, err := m.storage.LoadRootCert()
		if err != nil {
			return err
		}

		chain := make([]byte, 0, len(intermediateCert.Cert)+len(rootCert.Cert))
		chain = append(chain, intermediateCert.Cert...)
		chain = append(chain, rootCert.Cert...)

		return m.storage.StoreCaChain(chain)
	}

	return nil
}

// lockDomain takes the advisory lock guarding a domain's CA directory,
// retrying for a short while when another invocation holds it.
func lockDomain(path string) (func(), error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	lf, err := lockfile.New(absPath)
	if err != nil {
		return nil, err
	}

	for i := 0; ; i++ {
		err = lf.TryLock()
		if err == nil {
			break
		}

		if i >= lockRetries {
			return nil, fmt.Errorf("could not lock domain via %s: %v", absPath, err)
		}

		log.Debugf("domain lock %s busy, retrying", absPath)
		time.Sleep(lockRetryDelay)
	}

	return func() {
		if err := lf.Unlock(); err != nil {
			log.Errorf("failed to release domain lock %s: %v", absPath, err)
		}
	}, nil
}
