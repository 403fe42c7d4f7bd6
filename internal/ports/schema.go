package ports

import "schema-compat/internal/types"

type SchemaSourcePort interface {
	LoadVersion(dir string) (*types.SchemaIndex, error)
}
