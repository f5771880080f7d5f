// Package awsconf carrega a configuração do AWS SDK (variáveis de ambiente,
// profile ou IAM role) usada pelos providers de credencial, pela fonte S3 e
// pelo backend DynamoDB.
package awsconf

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Load carrega a configuração padrão, opcionalmente fixando a região.
func Load(ctx context.Context, region string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("awsconf: load default config: %w", err)
	}
	return cfg, nil
}
