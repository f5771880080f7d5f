package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookadmin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	cfg, err := LoadWithLookup("", lookupFrom(map[string]string{
		"AZ_COSMOS_ACCOUNT": "book-library-cosmos",
		"AZ_RESOURCE_GROUP": "dev-swa-rg",
	}))
	require.NoError(t, err)

	assert.Equal(t, "BookLibraryDB", cfg.Cosmos.Database)
	assert.Equal(t, "Books", cfg.Cosmos.Container)
	assert.Equal(t, []string{"Books", "BorrowRecords", "Users"}, cfg.Cosmos.Containers)
	assert.Equal(t, 30*time.Second, cfg.Cosmos.Timeout)
	assert.Equal(t, SourceCLI, cfg.Credentials.Source)
	assert.Equal(t, "az", cfg.Credentials.CLIPath)
	assert.Equal(t, DriverCosmos, cfg.Store.Driver)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, 1, cfg.Data.InsertFrom)
	assert.Equal(t, 5, cfg.Data.InsertTo)
	assert.Equal(t, 20, cfg.Data.BlankFrom)
	assert.Equal(t, 29, cfg.Data.BlankTo)
	assert.Equal(t, 1, cfg.Data.RemoveFrom)
	assert.Equal(t, 15, cfg.Data.RemoveTo)
	assert.Equal(t, 5, cfg.Batch.ProgressEvery)
	assert.Zero(t, cfg.Batch.Delay)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileZerosKeepPrecedence(t *testing.T) {
	path := writeFile(t, `
credentials:
  source: static
  endpoint: https://staging.documents.azure.com
  key: AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8=
data:
  insert_from: 0
batch:
  progress_every: 0
`)

	cfg, err := LoadWithLookup(path, lookupFrom(nil))
	require.NoError(t, err)
	assert.Zero(t, cfg.Batch.ProgressEvery)
	assert.Zero(t, cfg.Data.InsertFrom)
	assert.Equal(t, 5, cfg.Data.InsertTo)

	cfg, err = LoadWithLookup(path, lookupFrom(map[string]string{"BATCH_PROGRESS_EVERY": "3"}))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Batch.ProgressEvery)
}

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	path := writeFile(t, `
cosmos:
  database: LibraryStaging
  containers: [Books]
credentials:
  source: static
  endpoint: https://staging.documents.azure.com
  key: AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8=
batch:
  delay: 500ms
logging:
  level: debug
  format: json
`)

	cfg, err := LoadWithLookup(path, lookupFrom(map[string]string{
		"COSMOS_DATABASE": "LibraryProd",
	}))
	require.NoError(t, err)

	assert.Equal(t, "LibraryProd", cfg.Cosmos.Database)
	assert.Equal(t, "Books", cfg.Cosmos.Container)
	assert.Equal(t, []string{"Books"}, cfg.Cosmos.Containers)
	assert.Equal(t, SourceStatic, cfg.Credentials.Source)
	assert.Equal(t, "https://staging.documents.azure.com", cfg.Credentials.Endpoint)
	assert.Equal(t, 500*time.Millisecond, cfg.Batch.Delay)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_UnknownYAMLField(t *testing.T) {
	path := writeFile(t, "cosmos:\n  databse: typo\n")
	_, err := LoadWithLookup(path, lookupFrom(nil))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := LoadWithLookup(filepath.Join(t.TempDir(), "nope.yaml"), lookupFrom(nil))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "falha leitura config")
}

func TestLoad_ValidationFailure(t *testing.T) {
	_, err := LoadWithLookup("", lookupFrom(map[string]string{"CREDENTIAL_SOURCE": "ssm"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Parameter")
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, "")
	cfg, err := LoadWithLookup(path, lookupFrom(map[string]string{"STORE_DRIVER": "dynamodb"}))
	require.NoError(t, err)
	assert.Equal(t, DriverDynamoDB, cfg.Store.Driver)
}
