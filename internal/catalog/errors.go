package catalog

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogLoading     = errors.New("catalog is still loading")
	ErrCatalogUnavailable = errors.New("failed to load products")
	ErrUnsupportedDriver  = errors.New("unsupported catalog driver")
)
