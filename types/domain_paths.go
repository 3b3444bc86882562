package types

import "path/filepath"

const (
	// DomainsDirName is the directory under the base dir that holds one
	// subdirectory per managed domain.
	DomainsDirName = "domains"

	CADirName           = "ca"
	IntermediateDirName = "intermediate"
	CertsDirName        = "certs"

	RootKeyFilename          = "ca.key"
	RootCertFilename         = "ca.crt"
	IntermediateKeyFilename  = "intermediate.key"
	IntermediateCertFilename = "intermediate.crt"
	CaChainFilename          = "ca-chain.crt"

	KeyFileSuffix       = ".key"
	CertFileSuffix      = ".crt"
	FullchainFileSuffix = "-fullchain.crt"

	lockFilename = ".certree.lock"
)

// DomainPaths resolves the on-disk layout of a single domain's certificate
// tree rooted at a base directory:
//
//	domains/<domain>/
//	  ca/            ca.key, ca.crt
//	  intermediate/  intermediate.key, intermediate.crt, ca-chain.crt
//	  certs/         <stem>.key, <stem>.crt, <stem>-fullchain.crt
//
// When a parent domain is set, ca/ and intermediate/ point into the parent's
// tree while certs/ stays under the child domain.
type DomainPaths struct {
	base     string
	domain   string
	caDomain string
}

// NewDomainPaths returns paths for a domain that owns its CA material.
func NewDomainPaths(base, domain string) *DomainPaths {
	return &DomainPaths{
		base:     base,
		domain:   domain,
		caDomain: domain,
	}
}

// NewDomainPathsWithParent returns paths for a domain that borrows CA and
// Intermediate material from a parent domain.
func NewDomainPathsWithParent(base, domain, parent string) *DomainPaths {
	return &DomainPaths{
		base:     base,
		domain:   domain,
		caDomain: parent,
	}
}

// Domain returns the domain name these paths belong to.
func (p *DomainPaths) Domain() string {
	return p.domain
}

// CaDomain returns the domain owning the CA material (the parent when set).
func (p *DomainPaths) CaDomain() string {
	return p.caDomain
}

// UsesParent reports whether CA material is borrowed from a parent domain.
func (p *DomainPaths) UsesParent() bool {
	return p.caDomain != p.domain
}

// DomainDir returns the directory of the domain itself.
func (p *DomainPaths) DomainDir() string {
	return filepath.Join(p.base, DomainsDirName, p.domain)
}

// CaDir returns the Root CA directory (the owning domain's).
func (p *DomainPaths) CaDir() string {
	return filepath.Join(p.base, DomainsDirName, p.caDomain, CADirName)
}

// IntermediateDir returns the Intermediate CA directory (the owning domain's).
func (p *DomainPaths) IntermediateDir() string {
	return filepath.Join(p.base, DomainsDirName, p.caDomain, IntermediateDirName)
}

// CertsDir returns the host certificates directory of the domain.
func (p *DomainPaths) CertsDir() string {
	return filepath.Join(p.DomainDir(), CertsDirName)
}

func (p *DomainPaths) RootKeyAbsFilename() string {
	return filepath.Join(p.CaDir(), RootKeyFilename)
}

func (p *DomainPaths) RootCertAbsFilename() string {
	return filepath.Join(p.CaDir(), RootCertFilename)
}

func (p *DomainPaths) IntermediateKeyAbsFilename() string {
	return filepath.Join(p.IntermediateDir(), IntermediateKeyFilename)
}

func (p *DomainPaths) IntermediateCertAbsFilename() string {
	return filepath.Join(p.IntermediateDir(), IntermediateCertFilename)
}

// CaChainAbsFilename returns the trust-chain artifact (intermediate + root).
func (p *DomainPaths) CaChainAbsFilename() string {
	return filepath.Join(p.IntermediateDir(), CaChainFilename)
}

func (p *DomainPaths) HostKeyAbsFilename(stem string) string {
	return filepath.Join(p.CertsDir(), stem+KeyFileSuffix)
}

func (p *DomainPaths) HostCertAbsFilename(stem string) string {
	return filepath.Join(p.CertsDir(), stem+CertFileSuffix)
}

// HostFullchainAbsFilename returns the leaf + intermediate + root artifact.
func (p *DomainPaths) HostFullchainAbsFilename(stem string) string {
	return filepath.Join(p.CertsDir(), stem+FullchainFileSuffix)
}

// LockAbsFilename returns the advisory lock file guarding the CA-owning
// domain's directory.
func (p *DomainPaths) LockAbsFilename() string {
	return filepath.Join(p.base, DomainsDirName, p.caDomain, lockFilename)
}
