package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/raywall/book-library-toolkit/cosmosauth"
)

// ErrEmptySecret indica que a fonte respondeu, mas sem conteúdo.
var ErrEmptySecret = errors.New("credentials: empty connection secret")

// Provider obtém a connection string da conta Cosmos DB.
type Provider interface {
	FetchConnectionSecret(ctx context.Context) (string, error)
}

// CredentialError encapsula qualquer falha de obtenção ou interpretação
// da credencial. É sempre fatal para o comando em execução.
type CredentialError struct {
	Source string
	Err    error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("credentials (%s): %v", e.Source, e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// ProviderFunc adapta uma função ao contrato Provider.
type ProviderFunc func(ctx context.Context) (string, error)

func (f ProviderFunc) FetchConnectionSecret(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticProvider devolve uma connection string montada a partir de endpoint e chave.
type StaticProvider struct {
	Endpoint string
	Key      string
}

func (p StaticProvider) FetchConnectionSecret(context.Context) (string, error) {
	if p.Endpoint == "" || p.Key == "" {
		return "", &CredentialError{Source: "static", Err: ErrEmptySecret}
	}
	return fmt.Sprintf("AccountEndpoint=%s;AccountKey=%s;", p.Endpoint, p.Key), nil
}

// EnvProvider lê a connection string de uma variável de ambiente.
type EnvProvider struct {
	Var    string
	Lookup func(string) (string, bool)
}

func (p EnvProvider) FetchConnectionSecret(context.Context) (string, error) {
	lookup := p.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, _ := lookup(p.Var)
	v = strings.TrimSpace(v)
	if v == "" {
		return "", &CredentialError{Source: "env:" + p.Var, Err: ErrEmptySecret}
	}
	return v, nil
}

// ConnectionInfo é o resultado de ParseConnectionString.
type ConnectionInfo struct {
	Endpoint string
	Key      string
}

// ParseConnectionString interpreta "AccountEndpoint=...;AccountKey=...;".
// A chave é validada como base64 para que uma credencial inutilizável
// falhe aqui, e não na primeira chamada ao banco.
func ParseConnectionString(s string) (ConnectionInfo, error) {
	var info ConnectionInfo
	for _, part := range strings.Split(strings.TrimSpace(s), ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return ConnectionInfo{}, &CredentialError{Source: "connection-string", Err: fmt.Errorf("malformed segment %q", name)}
		}
		switch strings.ToLower(name) {
		case "accountendpoint":
			info.Endpoint = value
		case "accountkey":
			info.Key = value
		}
	}

	if info.Endpoint == "" || info.Key == "" {
		return ConnectionInfo{}, &CredentialError{
			Source: "connection-string",
			Err:    errors.New("AccountEndpoint and AccountKey are required"),
		}
	}
	if _, err := cosmosauth.NewSigner(info.Key); err != nil {
		return ConnectionInfo{}, &CredentialError{Source: "connection-string", Err: err}
	}
	return info, nil
}

// Resolve busca a credencial no provider e a interpreta.
func Resolve(ctx context.Context, p Provider) (ConnectionInfo, error) {
	secret, err := p.FetchConnectionSecret(ctx)
	if err != nil {
		var credErr *CredentialError
		if errors.As(err, &credErr) {
			return ConnectionInfo{}, err
		}
		return ConnectionInfo{}, &CredentialError{Source: "provider", Err: err}
	}
	return ParseConnectionString(secret)
}
