package cosmos

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/raywall/book-library-toolkit/library"
)

// ErrUnauthorized indica assinatura ou chave rejeitada pelo serviço.
var ErrUnauthorized = errors.New("cosmos: unauthorized")

// StatusError representa uma resposta HTTP fora da faixa de sucesso.
type StatusError struct {
	Method     string
	Link       string
	StatusCode int
	// Body é o corpo bruto retornado pelo serviço (normalmente JSON com code/message).
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cosmos: %s %s returned %d: %s", e.Method, e.Link, e.StatusCode, e.Body)
}

// Is permite errors.Is(err, library.ErrNotFound) e similares.
func (e *StatusError) Is(target error) bool {
	switch target {
	case library.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case library.ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}
