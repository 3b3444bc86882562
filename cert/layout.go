package cert

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	cerrors "github.com/certree/certree/errors"
	"github.com/certree/certree/types"
	"github.com/certree/certree/utils"
)

// ResolveLayout maps a domain and an optional parent domain to the three-tier
// directory layout.
//
// Without a parent all three directories live under the domain and are
// created if absent. With a parent, ca/ and intermediate/ point into the
// parent's tree and only the certs/ directory is created under the child;
// the child never creates CA directories of its own, so trust roots cannot
// diverge by accident. The parent must already own complete Root and
// Intermediate material, partial parent state is never repaired from a child
// invocation.
func ResolveLayout(baseDir, domain, parent string) (*types.DomainPaths, error) {
	if parent == "" {
		paths := types.NewDomainPaths(baseDir, domain)

		for _, dir := range []string{paths.CaDir(), paths.IntermediateDir(), paths.CertsDir()} {
			if err := utils.CreateDirectory(dir, 0o755); err != nil {
				return nil, fmt.Errorf("%w: creating %s: %v", cerrors.ErrFileSystem, dir, err)
			}
		}

		return paths, nil
	}

	paths := types.NewDomainPathsWithParent(baseDir, domain, parent)

	log.Debugf("domain %s borrows CA material from parent domain %s", domain, parent)

	if !utils.FilesExist(
		paths.RootKeyAbsFilename(), paths.RootCertAbsFilename(),
		paths.IntermediateKeyAbsFilename(), paths.IntermediateCertAbsFilename(),
	) {
		return nil, fmt.Errorf("%w: domain %s", cerrors.ErrMissingParentCA, parent)
	}

	if err := utils.CreateDirectory(paths.CertsDir(), 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", cerrors.ErrFileSystem, paths.CertsDir(), err)
	}

	return paths, nil
}
