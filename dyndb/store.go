// dyndb/store.go
package dyndb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/book-library-toolkit/envloader"
	"github.com/raywall/book-library-toolkit/library"
)

// Store implementa library.DocumentStore sobre o DynamoDB. A partition key
// do Cosmos é gravada como atributo comum: as tabelas são chaveadas só pelo id.
type Store struct {
	client DynamoDBClient
	cfg    TableConfig
}

var _ library.DocumentStore = (*Store)(nil)

// New cria um store reutilizável. Sem HashKey, a configuração é lida do
// ambiente; variáveis inválidas retornam erro.
func New(client DynamoDBClient, cfg TableConfig) (*Store, error) {
	if cfg.HashKey == "" {
		if err := envloader.Load(&cfg); err != nil {
			return nil, fmt.Errorf("dyndb: configuração inválida: %w", err)
		}
	}
	if cfg.HashKey == "" {
		cfg.HashKey = "id"
	}

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

// TableName retorna a tabela de uma coleção.
func (s *Store) TableName(container string) string {
	return s.cfg.TablePrefix + container
}

func (s *Store) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		s.cfg.HashKey: &types.AttributeValueMemberS{Value: id},
	}
}

// CreateItem grava o documento, falhando com library.ErrConflict se o id já existir.
func (s *Store) CreateItem(ctx context.Context, container string, item library.Item, partitionKey string) (library.Item, error) {
	id := item.ID()
	if id == "" {
		return nil, fmt.Errorf("dynamostore: item without %s", s.cfg.HashKey)
	}

	av, err := attributevalue.MarshalMap(map[string]any(item))
	if err != nil {
		return nil, fmt.Errorf("dynamostore: marshal failed: %w", err)
	}
	av[s.cfg.HashKey] = &types.AttributeValueMemberS{Value: id}

	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name(s.cfg.HashKey))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("dynamostore: expression failed: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(s.TableName(container)),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("dynamostore: %s: %w", id, library.ErrConflict)
		}
		return nil, fmt.Errorf("dynamostore: put failed: %w", err)
	}
	return item, nil
}

// DeleteItem remove o documento, falhando com library.ErrNotFound se ele não existir.
func (s *Store) DeleteItem(ctx context.Context, container, id, partitionKey string) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeExists(expression.Name(s.cfg.HashKey))).
		Build()
	if err != nil {
		return fmt.Errorf("dynamostore: expression failed: %w", err)
	}

	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(s.TableName(container)),
		Key:                       s.key(id),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("dynamostore: %s: %w", id, library.ErrNotFound)
		}
		return fmt.Errorf("dynamostore: delete failed: %w", err)
	}
	return nil
}

// FindItem lê o documento pelo id.
func (s *Store) FindItem(ctx context.Context, container, id string) (library.Item, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.TableName(container)),
		Key:            s.key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamostore: get failed: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("dynamostore: %s: %w", id, library.ErrNotFound)
	}
	return unmarshalItem(out.Item)
}

// ListItems percorre a tabela inteira com Scan paginado.
func (s *Store) ListItems(ctx context.Context, container string) ([]library.Item, error) {
	input := &dynamodb.ScanInput{
		TableName:      aws.String(s.TableName(container)),
		ConsistentRead: aws.Bool(true),
	}
	if s.cfg.ScanPageSize > 0 {
		input.Limit = aws.Int32(s.cfg.ScanPageSize)
	}

	var items []library.Item
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamostore: scan failed: %w", err)
		}
		for _, raw := range page.Items {
			item, err := unmarshalItem(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func unmarshalItem(av map[string]types.AttributeValue) (library.Item, error) {
	var m map[string]any
	if err := attributevalue.UnmarshalMap(av, &m); err != nil {
		return nil, fmt.Errorf("dynamostore: unmarshal failed: %w", err)
	}
	return library.Item(m), nil
}
