package cert

import (
	"errors"
	"fmt"
)

// fakeAuthority is an in-memory CertificateAuthority that fabricates
// distinguishable PEM-less byte blobs and counts cryptographic operations.
type fakeAuthority struct {
	rootSet         *Certificate
	intermediateSet *Certificate

	rootGenerated         int
	intermediateGenerated int
	hostGenerated         int

	lastHostInput *HostCSRInput

	failSigning bool
}

func (f *fakeAuthority) SetRootCert(cert *Certificate) error {
	f.rootSet = cert
	return nil
}

func (f *fakeAuthority) SetIntermediateCert(cert *Certificate) error {
	f.intermediateSet = cert
	return nil
}

func (f *fakeAuthority) GenerateRootCert(input *CACSRInput) (*Certificate, error) {
	if f.failSigning {
		return nil, errors.New("fake signing failure")
	}
	f.rootGenerated++
	return &Certificate{
		Cert: []byte(fmt.Sprintf("root-cert-%d:%s\n", f.rootGenerated, input.CommonName)),
		Key:  []byte(fmt.Sprintf("root-key-%d\n", f.rootGenerated)),
	}, nil
}

func (f *fakeAuthority) GenerateIntermediateCert(input *CACSRInput) (*Certificate, error) {
	if f.rootSet == nil {
		return nil, errors.New("root CA material is not set")
	}
	if f.failSigning {
		return nil, errors.New("fake signing failure")
	}
	f.intermediateGenerated++
	return &Certificate{
		Cert: []byte(fmt.Sprintf("intermediate-cert-%d:%s\n", f.intermediateGenerated, input.CommonName)),
		Key:  []byte(fmt.Sprintf("intermediate-key-%d\n", f.intermediateGenerated)),
	}, nil
}

func (f *fakeAuthority) GenerateHostCert(input *HostCSRInput) (*Certificate, error) {
	if f.intermediateSet == nil {
		return nil, errors.New("intermediate CA material is not set")
	}
	if f.failSigning {
		return nil, errors.New("fake signing failure")
	}
	f.hostGenerated++
	f.lastHostInput = input
	return &Certificate{
		Cert: []byte(fmt.Sprintf("host-cert-%d:%s\n", f.hostGenerated, input.CommonName)),
		Key:  []byte(fmt.Sprintf("host-key-%d\n", f.hostGenerated)),
	}, nil
}

// fakeStorage is an in-memory CertStorage.
type fakeStorage struct {
	root         *Certificate
	intermediate *Certificate
	caChain      []byte

	hostCerts  map[string]*Certificate
	fullchains map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		hostCerts:  map[string]*Certificate{},
		fullchains: map[string][]byte{},
	}
}

func (f *fakeStorage) LoadRootCert() (*Certificate, error) {
	if f.root == nil {
		return nil, errors.New("root cert not stored")
	}
	return f.root, nil
}

func (f *fakeStorage) LoadIntermediateCert() (*Certificate, error) {
	if f.intermediate == nil {
		return nil, errors.New("intermediate cert not stored")
	}
	return f.intermediate, nil
}

func (f *fakeStorage) StoreRootCert(cert *Certificate) error {
	f.root = cert
	return nil
}

func (f *fakeStorage) StoreIntermediateCert(cert *Certificate) error {
	f.intermediate = cert
	return nil
}

func (f *fakeStorage) StoreHostCert(stem string, cert *Certificate) error {
	f.hostCerts[stem] = cert
	return nil
}

func (f *fakeStorage) StoreCaChain(chain []byte) error {
	f.caChain = chain
	return nil
}

func (f *fakeStorage) StoreHostFullchain(stem string, chain []byte) error {
	f.fullchains[stem] = chain
	return nil
}

func (f *fakeStorage) RootState() TierState {
	return presentIf(f.root != nil)
}

func (f *fakeStorage) IntermediateState() TierState {
	return presentIf(f.intermediate != nil)
}

func (f *fakeStorage) CaChainState() TierState {
	return presentIf(f.caChain != nil)
}

func presentIf(b bool) TierState {
	if b {
		return TierPresent
	}
	return TierMissing
}
