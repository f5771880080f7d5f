package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/raywall/book-library-toolkit/envloader"
	"gopkg.in/yaml.v3"
)

// Load monta a configuração em camadas: valores padrão, arquivo YAML
// (opcional, path vazio ignora), variáveis de ambiente e, por fim, validação.
// Um zero explícito no arquivo prevalece sobre o padrão.
func Load(path string) (*AppConfig, error) {
	return LoadWithLookup(path, os.LookupEnv)
}

// LoadWithLookup é como Load, mas lê as variáveis por meio de lookup.
func LoadWithLookup(path string, lookup envloader.LookupFunc) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envloader.ApplyDefaults(cfg); err != nil {
		return nil, err
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("falha leitura config (%s): %w", path, err)
		}
		if err := decodeYAML(raw, cfg); err != nil {
			return nil, fmt.Errorf("falha parse config (%s): %w", path, err)
		}
	}

	if err := envloader.Override(cfg, lookup); err != nil {
		return nil, err
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(raw []byte, cfg *AppConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
