package ports

import "schema-compat/internal/types"

type MappingPort interface {
	Load(path string) (types.TypeMapping, error)
}
