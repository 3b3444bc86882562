package cert

// CertificateAuthority is the interface satisfied by the cryptographic
// provider implementation. It is used to generate the self-signed Root
// certificate, the Intermediate certificate signed by the Root, and host
// certificates signed by the Intermediate.
type CertificateAuthority interface {
	// SetRootCert hands previously generated Root CA material to the provider.
	SetRootCert(cert *Certificate) error
	// SetIntermediateCert hands previously generated Intermediate CA material to the provider.
	SetIntermediateCert(cert *Certificate) error
	// GenerateRootCert generates a self-signed Root CA certificate and key based on the provided input.
	GenerateRootCert(input *CACSRInput) (*Certificate, error)
	// GenerateIntermediateCert generates an Intermediate CA certificate and key and signs it with the Root.
	GenerateIntermediateCert(input *CACSRInput) (*Certificate, error)
	// GenerateHostCert generates a host certificate and key and signs it with the Intermediate.
	GenerateHostCert(input *HostCSRInput) (*Certificate, error)
}
