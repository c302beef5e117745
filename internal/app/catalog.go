package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"extbuild/internal/catalog"
	"extbuild/internal/core"
	"extbuild/internal/types"
)

// loadCatalog resolves the catalog for one invocation: an explicit
// path wins, then a catalog file in the project root, then the builtin
// catalog.  Whatever the source, the catalog is validated before use.
func (s Service) loadCatalog(ctx context.Context, catalogPath string, root string) (types.Catalog, error) {
	path := strings.TrimSpace(catalogPath)
	if path == "" {
		candidate := filepath.Join(root, catalog.FileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	var resolved types.Catalog
	if path == "" {
		resolved = catalog.Default()
		log.Ctx(ctx).Debug().Msg("using builtin catalog")
	} else {
		loaded, err := s.Catalog.LoadCatalog(path)
		if err != nil {
			return types.Catalog{}, err
		}
		resolved = loaded
		log.Ctx(ctx).Debug().Str("catalog", path).Msg("catalog loaded")
	}

	compiler := core.NewCatalogCompiler()
	if err := compiler.ValidateCatalog(ctx, resolved); err != nil {
		return types.Catalog{}, err
	}
	return resolved, nil
}

// projectRoot normalizes the root directory request field.
func projectRoot(value string) string {
	root := strings.TrimSpace(value)
	if root == "" {
		return "."
	}
	return root
}
