package cert

import "strings"

// WildcardMarker is the hostname token that stands for "any host" in a domain.
const WildcardMarker = "*"

// wildcardStem replaces the leading `*.` of a wildcard FQDN in file names,
// since `*` is not filesystem-safe.
const wildcardStem = "wildcard."

// HostFQDN turns a raw hostname token and a domain into a canonical FQDN:
//
//   - `*`            -> `*.<domain>`
//   - `*.other.com`  -> unchanged (fully specified wildcard)
//   - `*foo`         -> `*.<domain>`, the suffix is discarded (see below)
//   - `a.b.c`        -> unchanged (already fully qualified)
//   - `www`          -> `www.<domain>`
//
// A wildcard marker glued to text without a separating dot is coerced to the
// plain domain wildcard. The glued suffix is dropped, not an error.
func HostFQDN(host, domain string) string {
	switch {
	case host == WildcardMarker:
		return WildcardMarker + "." + domain
	case strings.HasPrefix(host, WildcardMarker+"."):
		return host
	case strings.HasPrefix(host, WildcardMarker):
		return WildcardMarker + "." + domain
	case strings.Contains(host, "."):
		return host
	default:
		return host + "." + domain
	}
}

// FileStem derives the filesystem-safe stem all artifact files of a
// certificate share: `*.lab.test` becomes `wildcard.lab.test`.
func FileStem(fqdn string) string {
	if strings.HasPrefix(fqdn, WildcardMarker+".") {
		return wildcardStem + strings.TrimPrefix(fqdn, WildcardMarker+".")
	}
	return fqdn
}

// SANList builds the ordered SAN entries for a host certificate. The primary
// FQDN always comes first, alternate names follow in the order given, each
// normalized with the wildcard rules of HostFQDN. Duplicates are kept as
// given.
func SANList(fqdn string, altNames []string, domain string) []string {
	sans := make([]string, 0, len(altNames)+1)
	sans = append(sans, fqdn)

	for _, alt := range altNames {
		sans = append(sans, HostFQDN(alt, domain))
	}

	return sans
}
