package cert

import "time"

// CACSRInput struct.
type CACSRInput struct {
	CommonName       string
	Country          string
	State            string
	Locality         string
	Organization     string
	OrganizationUnit string
	Expiry           time.Duration
	KeySize          int
}

// HostCSRInput struct.
type HostCSRInput struct {
	// Hosts carries the SAN entries, primary FQDN first. DNS names and IP
	// addresses are told apart by the authority implementation.
	Hosts            []string
	CommonName       string
	Country          string
	State            string
	Locality         string
	Organization     string
	OrganizationUnit string
	Expiry           time.Duration
	KeySize          int
}
