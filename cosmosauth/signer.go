package cosmosauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenPrefix antecede a assinatura em todo token de master key.
const TokenPrefix = "type=master&ver=1.0&sig="

// ErrInvalidKey indica que a chave informada não é base64 válido.
var ErrInvalidKey = errors.New("cosmosauth: invalid base64 key")

// Request descreve a requisição a ser assinada.
type Request struct {
	Verb         string
	ResourceType string
	ResourceLink string
	// Date deve ser exatamente o valor enviado no cabeçalho x-ms-date.
	Date string
}

// Signer assina requisições com uma chave já decodificada.
type Signer struct {
	key []byte
}

// NewSigner decodifica a chave base64 e retorna um Signer reutilizável.
func NewSigner(key string) (*Signer, error) {
	raw, err := decodeKey(key)
	if err != nil {
		return nil, err
	}
	return &Signer{key: raw}, nil
}

// Sign gera o token para a requisição. Não possui efeitos colaterais.
func (s *Signer) Sign(req Request) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(CanonicalString(req)))
	return TokenPrefix + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Sign decodifica a chave e assina a requisição em uma única chamada.
func Sign(req Request, key string) (string, error) {
	signer, err := NewSigner(key)
	if err != nil {
		return "", err
	}
	return signer.Sign(req), nil
}

// CanonicalString monta o payload assinado pelo HMAC.
func CanonicalString(req Request) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(req.Verb))
	b.WriteByte('\n')
	b.WriteString(strings.ToLower(req.ResourceType))
	b.WriteByte('\n')
	b.WriteString(req.ResourceLink)
	b.WriteByte('\n')
	b.WriteString(strings.ToLower(req.Date))
	b.WriteString("\n\n")
	return b.String()
}

// HeaderValue retorna o token escapado para uso no cabeçalho Authorization.
func HeaderValue(token string) string {
	return url.QueryEscape(token)
}

// FormatDate formata o instante no padrão RFC 1123 (GMT) exigido pelo x-ms-date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

func decodeKey(key string) ([]byte, error) {
	raw, err := base64.StdEncoding.Strict().DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return raw, nil
}
