package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *AppConfig) error {
	// O backend DynamoDB usa as credenciais da AWS, não a connection string
	var err error
	if cfg.Store.Driver == DriverDynamoDB {
		err = cv.validate.StructExcept(cfg, "Credentials")
	} else {
		err = cv.validate.Struct(cfg)
	}
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}
	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *AppConfig) error {
	// Coleções duplicadas gerariam duas limpezas seguidas da mesma coleção
	seen := make(map[string]bool)
	for _, c := range cfg.Cosmos.Containers {
		if seen[c] {
			return fmt.Errorf("coleção duplicada em containers: '%s'", c)
		}
		seen[c] = true
	}

	ranges := []struct {
		name     string
		from, to int
	}{
		{"insert", cfg.Data.InsertFrom, cfg.Data.InsertTo},
		{"blank", cfg.Data.BlankFrom, cfg.Data.BlankTo},
		{"remove", cfg.Data.RemoveFrom, cfg.Data.RemoveTo},
	}
	for _, r := range ranges {
		if r.from > r.to {
			return fmt.Errorf("faixa %s inválida: %d > %d", r.name, r.from, r.to)
		}
	}
	return nil
}
