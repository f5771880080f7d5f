package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// secretJSONKeys são as chaves aceitas quando o segredo é um JSON.
var secretJSONKeys = []string{"connectionString", "connection_string", "COSMOS_CONNECTION_STRING"}

// SecretsManagerProvider lê a connection string do AWS Secrets Manager.
// O segredo pode ser o texto puro ou um JSON com a chave connectionString.
type SecretsManagerProvider struct {
	Client   SecretsClient
	SecretID string
}

func (p SecretsManagerProvider) FetchConnectionSecret(ctx context.Context) (string, error) {
	out, err := p.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(p.SecretID),
	})
	if err != nil {
		return "", &CredentialError{Source: "secretsmanager", Err: fmt.Errorf("erro no SecretsManager: %w", err)}
	}

	val := strings.TrimSpace(aws.ToString(out.SecretString))
	if val == "" {
		return "", &CredentialError{Source: "secretsmanager", Err: ErrEmptySecret}
	}

	// Tenta decodificar JSON
	var data map[string]any
	if err := json.Unmarshal([]byte(val), &data); err == nil {
		for _, k := range secretJSONKeys {
			if v, ok := data[k].(string); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v), nil
			}
		}
		return "", &CredentialError{Source: "secretsmanager", Err: fmt.Errorf("secret %s has no connectionString key", p.SecretID)}
	}
	return val, nil
}

// SSMProvider lê a connection string de um parâmetro SecureString do SSM.
type SSMProvider struct {
	Client    SSMClient
	Parameter string
}

func (p SSMProvider) FetchConnectionSecret(ctx context.Context) (string, error) {
	out, err := p.Client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(p.Parameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", &CredentialError{Source: "ssm", Err: fmt.Errorf("erro no SSM GetParameter: %w", err)}
	}
	if out.Parameter == nil || strings.TrimSpace(aws.ToString(out.Parameter.Value)) == "" {
		return "", &CredentialError{Source: "ssm", Err: ErrEmptySecret}
	}
	return strings.TrimSpace(aws.ToString(out.Parameter.Value)), nil
}
