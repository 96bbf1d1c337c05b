package operators

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const DefaultDefinitionsDirectory = "data/operators/"

var ErrUnknownOperator = errors.New("unknown operator")

// LoadDefinitions reads every operator definition from the yaml files in directory
func LoadDefinitions(directory string) ([]Definition, error) {
	var definitions []Definition
	identifiers := map[string]bool{}

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading operator definitions file")

			definitionsYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(definitionsYaml))

			for {
				var definition Definition
				err := decoder.Decode(&definition)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				if err := definition.Validate(); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				if identifiers[definition.Identifier] {
					return fmt.Errorf("%s: duplicate operator %s", path, definition.Identifier)
				}
				identifiers[definition.Identifier] = true

				definitions = append(definitions, definition)
			}

			return nil
		})
	if err != nil {
		return nil, err
	}

	return definitions, nil
}

func Find(definitions []Definition, identifier string) (Definition, error) {
	for _, definition := range definitions {
		if definition.Identifier == identifier {
			return definition, nil
		}
	}

	return Definition{}, fmt.Errorf("%w: %s", ErrUnknownOperator, identifier)
}

// Load is LoadDefinitions on directory followed by Find
func Load(directory string, identifier string) (Definition, error) {
	definitions, err := LoadDefinitions(directory)
	if err != nil {
		return Definition{}, err
	}

	return Find(definitions, identifier)
}
