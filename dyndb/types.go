// dyndb/types.go
package dyndb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBClient interface para abstrair o cliente DynamoDB
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// TableConfig configura as tabelas. Cada coleção vira a tabela
// <TablePrefix><coleção>, com hash key HashKey.
type TableConfig struct {
	TablePrefix string `env:"DYNAMODB_TABLE_PREFIX"`
	HashKey     string `env:"DYNAMODB_HASH_KEY" envDefault:"id"`
	// ScanPageSize limita os itens por página do Scan (0 = padrão da AWS).
	ScanPageSize int32 `env:"DYNAMODB_SCAN_PAGE_SIZE"`
}
