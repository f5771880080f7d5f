package credentials

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executa um comando e devolve o stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner é o CommandRunner real, baseado em os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// CLIProvider obtém a connection string pela Azure CLI
// (az cosmosdb keys list --type connection-strings).
type CLIProvider struct {
	Path          string
	AccountName   string
	ResourceGroup string
	Runner        CommandRunner
}

// Args retorna os argumentos passados para a CLI.
func (p CLIProvider) Args() []string {
	return []string{
		"cosmosdb", "keys", "list",
		"--name", p.AccountName,
		"--resource-group", p.ResourceGroup,
		"--type", "connection-strings",
		"--query", "connectionStrings[0].connectionString",
		"--output", "tsv",
	}
}

func (p CLIProvider) FetchConnectionSecret(ctx context.Context) (string, error) {
	path := p.Path
	if path == "" {
		path = "az"
	}
	runner := p.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	out, err := runner.Run(ctx, path, p.Args()...)
	if err != nil {
		return "", &CredentialError{Source: "cli", Err: err}
	}
	secret := strings.TrimSpace(string(out))
	if secret == "" {
		return "", &CredentialError{Source: "cli", Err: ErrEmptySecret}
	}
	return secret, nil
}
