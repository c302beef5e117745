package ports

import "extbuild/internal/types"

type CatalogPort interface {
	LoadCatalog(path string) (types.Catalog, error)
}
