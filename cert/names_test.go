package cert

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHostFQDN(t *testing.T) {
	type args struct {
		host   string
		domain string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "wildcard marker",
			args: args{host: "*", domain: "lab.test"},
			want: "*.lab.test",
		},
		{
			name: "fully specified wildcard passes through",
			args: args{host: "*.other.test", domain: "lab.test"},
			want: "*.other.test",
		},
		{
			name: "glued wildcard suffix is discarded",
			args: args{host: "*foo", domain: "lab.test"},
			want: "*.lab.test",
		},
		{
			name: "dotted token is already an fqdn",
			args: args{host: "api.lab.test", domain: "other.test"},
			want: "api.lab.test",
		},
		{
			name: "bare host gets the domain appended",
			args: args{host: "www", domain: "lab.test"},
			want: "www.lab.test",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HostFQDN(tt.args.host, tt.args.domain); got != tt.want {
				t.Errorf("got: %v, want: %v", got, tt.want)
			}
		})
	}
}

func TestFileStem(t *testing.T) {
	tests := []struct {
		name string
		fqdn string
		want string
	}{
		{
			name: "wildcard fqdn",
			fqdn: "*.lab.test",
			want: "wildcard.lab.test",
		},
		{
			name: "plain fqdn",
			fqdn: "www.lab.test",
			want: "www.lab.test",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileStem(tt.fqdn); got != tt.want {
				t.Errorf("got: %v, want: %v", got, tt.want)
			}
		})
	}
}

func TestSANList(t *testing.T) {
	type args struct {
		fqdn     string
		altNames []string
		domain   string
	}
	tests := []struct {
		name string
		args args
		want []string
	}{
		{
			name: "primary only",
			args: args{fqdn: "www.lab.test", domain: "lab.test"},
			want: []string{"www.lab.test"},
		},
		{
			name: "alternates are normalized in order, duplicates preserved",
			args: args{
				fqdn:     "*.lab.test",
				altNames: []string{"api.lab.test", "*"},
				domain:   "lab.test",
			},
			want: []string{"*.lab.test", "api.lab.test", "*.lab.test"},
		},
		{
			name: "bare alternates get the domain appended",
			args: args{
				fqdn:     "www.lab.test",
				altNames: []string{"mail", "www"},
				domain:   "lab.test",
			},
			want: []string{"www.lab.test", "mail.lab.test", "www.lab.test"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SANList(tt.args.fqdn, tt.args.altNames, tt.args.domain)
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Errorf("SANList() mismatch (-want +got):\n%s", d)
			}
		})
	}
}

// The wildcard scenario end to end: primary fqdn, SAN list and file stem for
// a wildcard hostname with a duplicate alternate.
func TestWildcardScenario(t *testing.T) {
	domain := "lab.test"

	fqdn := HostFQDN("*", domain)
	if fqdn != "*.lab.test" {
		t.Fatalf("fqdn: got %v, want *.lab.test", fqdn)
	}

	sans := SANList(fqdn, []string{"api.lab.test", "*"}, domain)
	want := []string{"*.lab.test", "api.lab.test", "*.lab.test"}
	if d := cmp.Diff(want, sans); d != "" {
		t.Errorf("SAN list mismatch (-want +got):\n%s", d)
	}

	if stem := FileStem(fqdn); stem != "wildcard.lab.test" {
		t.Errorf("stem: got %v, want wildcard.lab.test", stem)
	}
}
