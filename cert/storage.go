package cert

// TierState describes whether the material of a CA tier exists in storage.
// A tier is Present only when both its key and its certificate exist; a
// present private key is never regenerated silently.
type TierState int

const (
	TierMissing TierState = iota
	TierPresent
)

func (s TierState) String() string {
	if s == TierPresent {
		return "present"
	}
	return "missing"
}

// CertStorage defines the interface used to manage certificate storage.
type CertStorage interface {
	LoadRootCert() (*Certificate, error)
	LoadIntermediateCert() (*Certificate, error)
	StoreRootCert(cert *Certificate) error
	StoreIntermediateCert(cert *Certificate) error
	StoreHostCert(stem string, cert *Certificate) error

	// StoreCaChain stores the trust-chain artifact (intermediate + root).
	StoreCaChain(chain []byte) error
	// StoreHostFullchain stores the full-chain artifact of a host
	// certificate (leaf + intermediate + root).
	StoreHostFullchain(stem string, chain []byte) error

	RootState() TierState
	IntermediateState() TierState
	CaChainState() TierState
}
