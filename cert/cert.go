package cert

import (
	log "github.com/sirupsen/logrus"

	"github.com/certree/certree/types"
)

// Cert is a wrapper struct for the Certificate Authority and the Certificate Storage.
type Cert struct {
	CertificateAuthority
	CertStorage
}

// Request describes one hierarchy-generation invocation.
type Request struct {
	Domain string
	// Parent names a domain whose CA material is borrowed instead of
	// generating an own hierarchy. Optional.
	Parent string
	// Host is the hostname token to issue a certificate for. Empty means a
	// CA-only invocation, which is valid and terminal.
	Host     string
	AltNames []string
}

// Result reports what a Run produced.
type Result struct {
	Paths *types.DomainPaths
	// Fqdn and Stem are set when a host certificate was issued.
	Fqdn string
	Stem string
}

// Service drives the full generation flow for one domain: layout resolution,
// Root, Intermediate, then optional host issuance. Each step observes the
// filesystem state left by the previous one.
type Service struct {
	baseDir string
	cfg     *Config
}

// NewService inits a Service rooted at baseDir.
func NewService(baseDir string, cfg *Config) *Service {
	return &Service{
		baseDir: baseDir,
		cfg:     cfg,
	}
}

// Run executes the request. Errors are fatal and leave already-written files
// in place; re-running with the same parameters resumes from whatever tier
// is already present.
func (s *Service) Run(req *Request) (*Result, error) {
	paths, err := ResolveLayout(s.baseDir, req.Domain, req.Parent)
	if err != nil {
		return nil, err
	}

	ca := NewCA()
	storage := NewLocalDirCertStorage(paths)

	cert := &Cert{
		CertificateAuthority: ca,
		CertStorage:          storage,
	}

	if paths.UsesParent() {
		// both tiers are present by construction of the layout check
		if err := loadParentCA(cert); err != nil {
			return nil, err
		}
	} else {
		manager := NewHierarchyManager(cert, cert, s.cfg, req.Domain)
		if err := manager.Ensure(paths.LockAbsFilename()); err != nil {
			return nil, err
		}
	}

	res := &Result{Paths: paths}

	if req.Host == "" {
		log.Debugf("no hostname requested for domain %s, stopping after the CA tiers", req.Domain)
		return res, nil
	}

	issuer := NewHostIssuer(cert, cert, s.cfg, req.Domain)

	res.Fqdn, res.Stem, err = issuer.Issue(req.Host, req.AltNames)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// loadParentCA hands the borrowed Root and Intermediate material to the
// authority without touching the hierarchy manager.
func loadParentCA(cert *Cert) error {
	rootCert, err := cert.LoadRootCert()
	if err != nil {
		return err
	}

	if err := cert.SetRootCert(rootCert); err != nil {
		return err
	}

	intermediateCert, err := cert.LoadIntermediateCert()
	if err != nil {
		return err
	}

	return cert.SetIntermediateCert(intermediateCert)
}
