package credentials

import (
	"context"
	"testing"

	"github.com/raywall/book-library-toolkit/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	ctx := context.Background()

	p, err := FromConfig(ctx, config.CredentialsConf{Source: config.SourceCLI, CLIPath: "az", AccountName: "acct", ResourceGroup: "rg"})
	require.NoError(t, err)
	cli, ok := p.(CLIProvider)
	require.True(t, ok)
	assert.Equal(t, "acct", cli.AccountName)
	assert.Equal(t, "rg", cli.ResourceGroup)

	p, err = FromConfig(ctx, config.CredentialsConf{Source: config.SourceEnv, EnvVar: "MY_CONN"})
	require.NoError(t, err)
	assert.Equal(t, EnvProvider{Var: "MY_CONN"}, p)

	p, err = FromConfig(ctx, config.CredentialsConf{Source: config.SourceStatic, Endpoint: "https://a", Key: testKey})
	require.NoError(t, err)
	assert.Equal(t, StaticProvider{Endpoint: "https://a", Key: testKey}, p)

	_, err = FromConfig(ctx, config.CredentialsConf{Source: "vault"})
	var credErr *CredentialError
	assert.ErrorAs(t, err, &credErr)
}
