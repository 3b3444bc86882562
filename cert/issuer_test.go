package cert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/certree/certree/errors"
)

// seedCATiers runs both tiers through the hierarchy manager so the issuer
// finds a usable intermediate.
func seedCATiers(t *testing.T, auth *fakeAuthority, storage *fakeStorage) {
	t.Helper()

	m := NewHierarchyManager(auth, storage, testConfig(), "lab.test")
	require.NoError(t, m.EnsureRoot())
	require.NoError(t, m.EnsureIntermediate())
}

func TestIssueRequiresIntermediate(t *testing.T) {
	auth := &fakeAuthority{}
	storage := newFakeStorage()
	issuer := NewHostIssuer(auth, storage, testConfig(), "lab.test")

	_, _, err := issuer.Issue("www", nil)
	require.ErrorIs(t, err, cerrors.ErrMissingIntermediateCA)
	assert.Empty(t, storage.hostCerts)
}

func TestIssueWritesLeafAndFullchain(t *testing.T) {
	auth := &fakeAuthority{}
	storage := newFakeStorage()
	seedCATiers(t, auth, storage)

	issuer := NewHostIssuer(auth, storage, testConfig(), "lab.test")

	fqdn, stem, err := issuer.Issue("www", []string{"mail"})
	require.NoError(t, err)
	assert.Equal(t, "www.lab.test", fqdn)
	assert.Equal(t, "www.lab.test", stem)

	leaf := storage.hostCerts[stem]
	require.NotNil(t, leaf)

	// leaf, then intermediate, then root
	wantChain := append(append(append([]byte{},
		leaf.Cert...),
		storage.intermediate.Cert...),
		storage.root.Cert...)
	assert.Equal(t, wantChain, storage.fullchains[stem])

	assert.Equal(t, []string{"www.lab.test", "mail.lab.test"}, auth.lastHostInput.Hosts)
	assert.Equal(t, "www.lab.test", auth.lastHostInput.CommonName)
}

func TestIssueWildcardUsesWildcardStem(t *testing.T) {
	auth := &fakeAuthority{}
	storage := newFakeStorage()
	seedCATiers(t, auth, storage)

	issuer := NewHostIssuer(auth, storage, testConfig(), "lab.test")

	fqdn, stem, err := issuer.Issue("*", []string{"api.lab.test", "*"})
	require.NoError(t, err)
	assert.Equal(t, "*.lab.test", fqdn)
	assert.Equal(t, "wildcard.lab.test", stem)

	// duplicate SAN entries are accepted as given
	assert.Equal(t, []string{"*.lab.test", "api.lab.test", "*.lab.test"}, auth.lastHostInput.Hosts)
}

func TestIssueIsNotIdempotent(t *testing.T) {
	auth := &fakeAuthority{}
	storage := newFakeStorage()
	seedCATiers(t, auth, storage)

	issuer := NewHostIssuer(auth, storage, testConfig(), "lab.test")

	_, stem, err := issuer.Issue("www", nil)
	require.NoError(t, err)
	firstKey := storage.hostCerts[stem].Key
	firstInput := auth.lastHostInput

	_, stem2, err := issuer.Issue("www", nil)
	require.NoError(t, err)
	require.Equal(t, stem, stem2)

	// a fresh key pair every time, but identical subject and SAN content
	assert.Equal(t, 2, auth.hostGenerated)
	assert.NotEqual(t, firstKey, storage.hostCerts[stem].Key)
	assert.Equal(t, firstInput.Hosts, auth.lastHostInput.Hosts)
	assert.Equal(t, firstInput.CommonName, auth.lastHostInput.CommonName)
}
