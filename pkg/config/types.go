package config

import "time"

// AppConfig é a configuração completa do bookadmin. É montada por Load e
// passada explicitamente aos construtores; não há estado global.
type AppConfig struct {
	Cosmos      CosmosConf      `yaml:"cosmos"`
	Credentials CredentialsConf `yaml:"credentials"`
	Store       StoreConf       `yaml:"store"`
	Data        DataConf        `yaml:"data"`
	Batch       BatchConf       `yaml:"batch"`
	Logging     LoggingConf     `yaml:"logging"`
	Metrics     MetricsConf     `yaml:"metrics"`
}

// CosmosConf identifica o database e a coleção principal de livros.
type CosmosConf struct {
	Database   string        `yaml:"database" env:"COSMOS_DATABASE" envDefault:"BookLibraryDB" validate:"required"`
	Container  string        `yaml:"container" env:"COSMOS_CONTAINER" envDefault:"Books" validate:"required"`
	APIVersion string        `yaml:"api_version" env:"COSMOS_API_VERSION" envDefault:"2020-07-15"`
	Timeout    time.Duration `yaml:"timeout" env:"COSMOS_TIMEOUT" envDefault:"30s" validate:"gte=0"`
	// Containers é a lista padrão de coleções limpas pelo comando cleanup.
	Containers []string `yaml:"containers" env:"COSMOS_CONTAINERS" envDefault:"Books,BorrowRecords,Users" validate:"min=1,dive,required"`
	// PartitionKeyFields define a ordem de resolução da partition key de documentos genéricos.
	PartitionKeyFields []string `yaml:"partition_key_fields" env:"COSMOS_PARTITION_KEY_FIELDS" envDefault:"category,userId,userType" validate:"min=1"`
}

// Fontes de credencial suportadas.
const (
	SourceCLI            = "cli"
	SourceEnv            = "env"
	SourceStatic         = "static"
	SourceSecretsManager = "secretsmanager"
	SourceSSM            = "ssm"
)

// CredentialsConf define de onde vem a connection string da conta.
type CredentialsConf struct {
	Source string `yaml:"source" env:"CREDENTIAL_SOURCE" envDefault:"cli" validate:"oneof=cli env static secretsmanager ssm"`

	// cli: az cosmosdb keys list
	CLIPath       string `yaml:"cli_path" env:"AZ_CLI_PATH" envDefault:"az"`
	AccountName   string `yaml:"account_name" env:"AZ_COSMOS_ACCOUNT" envDefault:"book-library-cosmos" validate:"required_if=Source cli"`
	ResourceGroup string `yaml:"resource_group" env:"AZ_RESOURCE_GROUP" envDefault:"dev-swa-rg" validate:"required_if=Source cli"`

	// env: nome da variável que contém a connection string
	EnvVar string `yaml:"env_var" env:"CONNECTION_STRING_VAR" envDefault:"COSMOS_CONNECTION_STRING"`

	// static: endpoint e chave informados diretamente
	Endpoint string `yaml:"endpoint" env:"COSMOS_ENDPOINT" validate:"required_if=Source static,omitempty,url"`
	Key      string `yaml:"key" env:"COSMOS_KEY" validate:"required_if=Source static,omitempty,base64"`

	// secretsmanager / ssm
	Region    string `yaml:"region" env:"AWS_REGION"`
	SecretID  string `yaml:"secret_id" env:"COSMOS_SECRET_ID" validate:"required_if=Source secretsmanager"`
	Parameter string `yaml:"parameter" env:"COSMOS_SSM_PARAMETER" validate:"required_if=Source ssm"`
}

// Drivers de armazenamento suportados.
const (
	DriverCosmos   = "cosmos"
	DriverDynamoDB = "dynamodb"
)

// StoreConf escolhe o backend de documentos.
type StoreConf struct {
	Driver string `yaml:"driver" env:"STORE_DRIVER" envDefault:"cosmos" validate:"oneof=cosmos dynamodb"`
	// TablePrefix é prefixado ao nome da coleção para formar o nome da tabela DynamoDB.
	TablePrefix string `yaml:"table_prefix" env:"DYNAMODB_TABLE_PREFIX"`
	Endpoint    string `yaml:"endpoint" env:"DYNAMODB_ENDPOINT" validate:"omitempty,url"`
	Region      string `yaml:"region" env:"DYNAMODB_REGION"`
}

// DataConf contém os caminhos e faixas de ids usados pelos comandos.
type DataConf struct {
	// Dir é um diretório local ou um prefixo s3://bucket/caminho.
	Dir string `yaml:"dir" env:"DATA_DIR" envDefault:"data" validate:"required"`

	// Faixas padrão de ids (book<from>..book<to>) usadas por insert, blank e remove.
	InsertFrom int `yaml:"insert_from" env:"INSERT_FROM" envDefault:"1" validate:"gte=0,lte=999"`
	InsertTo   int `yaml:"insert_to" env:"INSERT_TO" envDefault:"5" validate:"gte=0,lte=999"`
	BlankFrom  int `yaml:"blank_from" env:"BLANK_FROM" envDefault:"20" validate:"gte=0,lte=999"`
	BlankTo    int `yaml:"blank_to" env:"BLANK_TO" envDefault:"29" validate:"gte=0,lte=999"`
	RemoveFrom int `yaml:"remove_from" env:"REMOVE_FROM" envDefault:"1" validate:"gte=0,lte=999"`
	RemoveTo   int `yaml:"remove_to" env:"REMOVE_TO" envDefault:"15" validate:"gte=0,lte=999"`
}

// BatchConf controla o ritmo das operações em lote.
type BatchConf struct {
	Delay         time.Duration `yaml:"delay" env:"BATCH_DELAY" validate:"gte=0"`
	ProgressEvery int           `yaml:"progress_every" env:"BATCH_PROGRESS_EVERY" envDefault:"5" validate:"gte=0"`
}

// LoggingConf configura o zerolog.
type LoggingConf struct {
	Disabled bool   `yaml:"disabled" env:"LOG_DISABLED"`
	Level    string `yaml:"level" env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" env:"LOG_FORMAT" envDefault:"console" validate:"oneof=json console"`
	NoColor  bool   `yaml:"no_color" env:"LOG_NO_COLOR"`
}

// MetricsConf configura o envio de métricas.
type MetricsConf struct {
	// Log escreve as métricas no logger (nível debug) quando o Datadog está desligado.
	Log     bool        `yaml:"log" env:"METRICS_LOG"`
	Datadog DatadogConf `yaml:"datadog"`
}

// DatadogConf configura o cliente StatsD.
type DatadogConf struct {
	Enabled   bool     `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string   `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string   `yaml:"namespace" env:"DD_NAMESPACE" envDefault:"bookadmin."`
	Tags      []string `yaml:"tags" env:"DD_TAGS"`
}
