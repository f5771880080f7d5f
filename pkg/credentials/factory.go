package credentials

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/raywall/book-library-toolkit/pkg/awsconf"
	"github.com/raywall/book-library-toolkit/pkg/config"
)

// FromConfig escolhe o Provider conforme credentials.source.
func FromConfig(ctx context.Context, cfg config.CredentialsConf) (Provider, error) {
	switch cfg.Source {
	case config.SourceCLI, "":
		return CLIProvider{
			Path:          cfg.CLIPath,
			AccountName:   cfg.AccountName,
			ResourceGroup: cfg.ResourceGroup,
		}, nil
	case config.SourceEnv:
		return EnvProvider{Var: cfg.EnvVar}, nil
	case config.SourceStatic:
		return StaticProvider{Endpoint: cfg.Endpoint, Key: cfg.Key}, nil
	case config.SourceSecretsManager:
		awsCfg, err := awsconf.Load(ctx, cfg.Region)
		if err != nil {
			return nil, &CredentialError{Source: cfg.Source, Err: err}
		}
		return SecretsManagerProvider{Client: secretsmanager.NewFromConfig(awsCfg), SecretID: cfg.SecretID}, nil
	case config.SourceSSM:
		awsCfg, err := awsconf.Load(ctx, cfg.Region)
		if err != nil {
			return nil, &CredentialError{Source: cfg.Source, Err: err}
		}
		return SSMProvider{Client: ssm.NewFromConfig(awsCfg), Parameter: cfg.Parameter}, nil
	default:
		return nil, &CredentialError{Source: cfg.Source, Err: fmt.Errorf("fonte de credencial desconhecida")}
	}
}
