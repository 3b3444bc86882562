package cert

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"time"

	"golang.org/x/crypto/ssh"

	cerrors "github.com/certree/certree/errors"
)

// CA is the x509-backed Certificate Authority implementation.
type CA struct {
	rootKey  crypto.PrivateKey
	rootCert *x509.Certificate

	intermediateKey  crypto.PrivateKey
	intermediateCert *x509.Certificate
}

// NewCA initializes a Certificate Authority.
func NewCA() *CA {
	return &CA{}
}

// SetRootCert sets the Root CA certificate and key from PEM material.
func (ca *CA) SetRootCert(cert *Certificate) error {
	var err error

	ca.rootCert, ca.rootKey, err = parseCertificate(cert)

	return err
}

// SetIntermediateCert sets the Intermediate CA certificate and key from PEM material.
func (ca *CA) SetIntermediateCert(cert *Certificate) error {
	var err error

	ca.intermediateCert, ca.intermediateKey, err = parseCertificate(cert)

	return err
}

// GenerateRootCert generates a self-signed Root CA certificate and key based
// on the provided input.
func (ca *CA) GenerateRootCert(input *CACSRInput) (*Certificate, error) {
	serial, err := newSerialNumber()
	if err != nil {
		return nil, err
	}

	certTemplate := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               subjectFromCAInput(input),
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(input.Expiry),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
	}

	privKey, err := rsa.GenerateKey(rand.Reader, input.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: generating root key: %v", cerrors.ErrSigningFailure, err)
	}

	// self-signed: the template is its own parent
	caBytes, err := x509.CreateCertificate(rand.Reader, certTemplate, certTemplate, &privKey.PublicKey, privKey)
	if err != nil {
		return nil, fmt.Errorf("%w: creating root certificate: %v", cerrors.ErrSigningFailure, err)
	}

	return newPEMCertificate(caBytes, privKey), nil
}

// GenerateIntermediateCert generates an Intermediate CA certificate and key
// and signs it with the Root. The Intermediate carries CA:true with a path
// length of zero, so it may not issue further intermediates.
func (ca *CA) GenerateIntermediateCert(input *CACSRInput) (*Certificate, error) {
	if ca.rootCert == nil || ca.rootKey == nil {
		return nil, errors.New("root CA material is not set")
	}

	serial, err := newSerialNumber()
	if err != nil {
		return nil, err
	}

	certTemplate := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               subjectFromCAInput(input),
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(input.Expiry),
		IsCA:                  true,
		MaxPathLen:            0,
		MaxPathLenZero:        true,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
	}

	privKey, err := rsa.GenerateKey(rand.Reader, input.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: generating intermediate key: %v", cerrors.ErrSigningFailure, err)
	}

	certBytes, err := x509.CreateCertificate(rand.Reader, certTemplate, ca.rootCert, &privKey.PublicKey, ca.rootKey)
	if err != nil {
		return nil, fmt.Errorf("%w: signing intermediate certificate: %v", cerrors.ErrSigningFailure, err)
	}

	return newPEMCertificate(certBytes, privKey), nil
}

// GenerateHostCert generates a host certificate and key based on the
// provided input and signs it with the Intermediate.
func (ca *CA) GenerateHostCert(input *HostCSRInput) (*Certificate, error) {
	if ca.intermediateCert == nil || ca.intermediateKey == nil {
		return nil, errors.New("intermediate CA material is not set")
	}

	// split SAN entries into dns and ip entries
	dns, ip := parseHostsInput(input.Hosts)

	serial, err := newSerialNumber()
	if err != nil {
		return nil, err
	}

	certTemplate := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:         input.CommonName,
			Country:            []string{input.Country},
			Province:           []string{input.State},
			Locality:           []string{input.Locality},
			Organization:       []string{input.Organization},
			OrganizationalUnit: []string{input.OrganizationUnit},
		},
		DNSNames:    dns,
		IPAddresses: ip,
		NotBefore:   time.Now(),
		NotAfter:    time.Now().Add(input.Expiry),
		KeyUsage:    x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
	}

	privKey, err := rsa.GenerateKey(rand.Reader, input.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: generating host key: %v", cerrors.ErrSigningFailure, err)
	}

	certBytes, err := x509.CreateCertificate(rand.Reader, certTemplate, ca.intermediateCert, &privKey.PublicKey, ca.intermediateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: signing host certificate: %v", cerrors.ErrSigningFailure, err)
	}

	return newPEMCertificate(certBytes, privKey), nil
}

// parseCertificate parses a PEM certificate/key bundle into the x509
// certificate and the raw private key.
func parseCertificate(cert *Certificate) (*x509.Certificate, crypto.PrivateKey, error) {
	// PEM to DER
	pbCert, _ := pem.Decode(cert.Cert)
	if pbCert == nil {
		return nil, nil, errors.New("no PEM block found in certificate data")
	}

	x509Cert, err := x509.ParseCertificate(pbCert.Bytes)
	if err != nil {
		return nil, nil, err
	}

	key, err := ssh.ParseRawPrivateKey(cert.Key)
	if err != nil {
		return nil, nil, err
	}

	return x509Cert, key, nil
}

func subjectFromCAInput(input *CACSRInput) pkix.Name {
	return pkix.Name{
		CommonName:         input.CommonName,
		Country:            []string{input.Country},
		Province:           []string{input.State},
		Locality:           []string{input.Locality},
		Organization:       []string{input.Organization},
		OrganizationalUnit: []string{input.OrganizationUnit},
	}
}

// newSerialNumber returns a random 128 bit serial number.
func newSerialNumber() (*big.Int, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("%w: generating serial number: %v", cerrors.ErrSigningFailure, err)
	}
	return serial, nil
}

// newPEMCertificate converts DER certificate bytes and an RSA key into a PEM
// encoded Certificate.
func newPEMCertificate(certBytes []byte, privKey *rsa.PrivateKey) *Certificate {
	certPEM := new(bytes.Buffer)
	pem.Encode(certPEM, &pem.Block{
		Type:  "CERTIFICATE",
		Bytes: certBytes,
	})

	keyPEM := new(bytes.Buffer)
	pem.Encode(keyPEM, &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privKey),
	})

	return &Certificate{
		Cert: certPEM.Bytes(),
		Key:  keyPEM.Bytes(),
	}
}

func parseHostsInput(hosts []string) ([]string, []net.IP) {
	var dns []string
	var ip []net.IP

	for _, host := range hosts {
		if net.ParseIP(host) != nil {
			ip = append(ip, net.ParseIP(host))
		} else {
			dns = append(dns, host)
		}
	}

	return dns, ip
}
