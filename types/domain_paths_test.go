package types

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDomainPaths(t *testing.T) {
	p := NewDomainPaths("/data", "lab.test")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"domain dir", p.DomainDir(), "/data/domains/lab.test"},
		{"ca dir", p.CaDir(), "/data/domains/lab.test/ca"},
		{"intermediate dir", p.IntermediateDir(), "/data/domains/lab.test/intermediate"},
		{"certs dir", p.CertsDir(), "/data/domains/lab.test/certs"},
		{"root key", p.RootKeyAbsFilename(), "/data/domains/lab.test/ca/ca.key"},
		{"root cert", p.RootCertAbsFilename(), "/data/domains/lab.test/ca/ca.crt"},
		{"intermediate key", p.IntermediateKeyAbsFilename(), "/data/domains/lab.test/intermediate/intermediate.key"},
		{"intermediate cert", p.IntermediateCertAbsFilename(), "/data/domains/lab.test/intermediate/intermediate.crt"},
		{"ca chain", p.CaChainAbsFilename(), "/data/domains/lab.test/intermediate/ca-chain.crt"},
		{"host key", p.HostKeyAbsFilename("www.lab.test"), "/data/domains/lab.test/certs/www.lab.test.key"},
		{"host cert", p.HostCertAbsFilename("www.lab.test"), "/data/domains/lab.test/certs/www.lab.test.crt"},
		{"host fullchain", p.HostFullchainAbsFilename("www.lab.test"), "/data/domains/lab.test/certs/www.lab.test-fullchain.crt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := cmp.Diff(filepath.FromSlash(tt.want), tt.got); d != "" {
				t.Errorf("mismatch (-want +got):\n%s", d)
			}
		})
	}

	if p.UsesParent() {
		t.Error("domain without parent must not report UsesParent")
	}
}

func TestDomainPathsWithParent(t *testing.T) {
	p := NewDomainPathsWithParent("/data", "child.lab.test", "lab.test")

	if !p.UsesParent() {
		t.Fatal("expected UsesParent to be true")
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ca dir borrowed", p.CaDir(), "/data/domains/lab.test/ca"},
		{"intermediate dir borrowed", p.IntermediateDir(), "/data/domains/lab.test/intermediate"},
		{"certs dir owned", p.CertsDir(), "/data/domains/child.lab.test/certs"},
		{"lock follows the ca owner", p.LockAbsFilename(), "/data/domains/lab.test/.certree.lock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := cmp.Diff(filepath.FromSlash(tt.want), tt.got); d != "" {
				t.Errorf("mismatch (-want +got):\n%s", d)
			}
		})
	}
}
