package adapters

import (
	"bufio"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"schema-compat/internal/ports"
	"schema-compat/internal/types"
)

// MappingFileAdapter loads the tab-separated old-name→new-name rename
// table. Blank lines and '#' comments are ignored; malformed lines are
// skipped with a warning and never abort the load.
type MappingFileAdapter struct{}

func NewMappingFileAdapter() MappingFileAdapter {
	return MappingFileAdapter{}
}

func (a MappingFileAdapter) Load(path string) (types.TypeMapping, error) {
	if strings.TrimSpace(path) == "" {
		return types.TypeMapping{}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read mapping file: " + path).
			WithCause(err)
	}
	defer file.Close()

	mapping := types.TypeMapping{}
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			log.Warn().Str("file", path).Int("line", lineNum).
				Msg("skipping invalid mapping line")
			continue
		}
		oldName := strings.TrimSpace(parts[0])
		newName := strings.TrimSpace(parts[1])
		if oldName == "" || newName == "" {
			log.Warn().Str("file", path).Int("line", lineNum).
				Msg("skipping invalid mapping line")
			continue
		}
		mapping[oldName] = newName
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan mapping file: " + path).
			WithCause(err)
	}
	log.Info().Str("file", path).Int("mappings", mapping.Len()).Msg("type mappings loaded")
	return mapping, nil
}

var _ ports.MappingPort = MappingFileAdapter{}
