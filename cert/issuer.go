package cert

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	cerrors "github.com/certree/certree/errors"
)

// HostIssuer creates signed host certificates and their full-chain
// artifacts. Unlike the CA tiers, host issuance is not idempotent:
// re-issuing the same hostname always generates a fresh key pair and
// overwrites the previous artifacts.
type HostIssuer struct {
	ca      CertificateAuthority
	storage CertStorage
	cfg     *Config
	domain  string
}

// NewHostIssuer inits a HostIssuer for a domain.
func NewHostIssuer(ca CertificateAuthority, storage CertStorage, cfg *Config, domain string) *HostIssuer {
	return &HostIssuer{
		ca:      ca,
		storage: storage,
		cfg:     cfg,
		domain:  domain,
	}
}

// Issue generates a key pair and a certificate for the given hostname token
// with the given alternate names, signs it with the Intermediate CA and
// writes the key, certificate and full-chain artifacts. It returns the
// primary FQDN and the artifact file stem.
func (i *HostIssuer) Issue(host string, altNames []string) (fqdn, stem string, err error) {
	if i.storage.IntermediateState() != TierPresent {
		return "", "", fmt.Errorf("%w: domain %s", cerrors.ErrMissingIntermediateCA, i.domain)
	}

	fqdn = HostFQDN(host, i.domain)
	stem = FileStem(fqdn)
	sans := SANList(fqdn, altNames, i.domain)

	log.Infof("issuing certificate for %s (SANs: %q)", fqdn, sans)

	leaf, err := i.ca.GenerateHostCert(&HostCSRInput{
		Hosts:            sans,
		CommonName:       fqdn,
		Country:          i.cfg.Country,
		State:            i.cfg.State,
		Locality:         i.cfg.Locality,
		Organization:     i.cfg.Organization,
		OrganizationUnit: i.cfg.OrganizationUnit,
		Expiry:           i.cfg.HostExpiry,
		KeySize:          i.cfg.HostKeySize,
	})
	if err != nil {
		return "", "", err
	}

	if err := i.storage.StoreHostCert(stem, leaf); err != nil {
		return "", "", err
	}

	intermediateCert, err := i.storage.LoadIntermediateCert()
	if err != nil {
		return "", "", err
	}

	rootCert, err := i.storage.LoadRootCert()
	if err != nil {
		return "", "", err
	}

	// leaf, then intermediate, then root. TLS servers present the chain in
	// exactly this order, so it must be preserved.
	chain := make([]byte, 0, len(leaf.Cert)+len(intermediateCert.Cert)+len(rootCert.Cert))
	chain = append(chain, leaf.Cert...)
	chain = append(chain, intermediateCert.Cert...)
	chain = append(chain, rootCert.Cert...)

	if err := i.storage.StoreHostFullchain(stem, chain); err != nil {
		return "", "", err
	}

	return fqdn, stem, nil
}
