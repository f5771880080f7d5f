package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/raywall/book-library-toolkit/batch"
	"github.com/raywall/book-library-toolkit/cosmos"
	"github.com/raywall/book-library-toolkit/dyndb"
	"github.com/raywall/book-library-toolkit/library"
	"github.com/raywall/book-library-toolkit/pkg/awsconf"
	"github.com/raywall/book-library-toolkit/pkg/config"
	"github.com/raywall/book-library-toolkit/pkg/credentials"
	"github.com/raywall/book-library-toolkit/pkg/metrics"
)

// defaultStore cria o backend escolhido em store.driver.
func (c *cli) defaultStore(ctx context.Context) (library.DocumentStore, error) {
	switch c.cfg.Store.Driver {
	case config.DriverDynamoDB:
		return c.dynamoStore(ctx)
	default:
		return c.cosmosStore(ctx)
	}
}

func (c *cli) connectionInfo(ctx context.Context) (credentials.ConnectionInfo, error) {
	provider, err := credentials.FromConfig(ctx, c.cfg.Credentials)
	if err != nil {
		return credentials.ConnectionInfo{}, err
	}
	return credentials.Resolve(ctx, provider)
}

func (c *cli) cosmosStore(ctx context.Context) (library.DocumentStore, error) {
	info, err := c.connectionInfo(ctx)
	if err != nil {
		return nil, err
	}
	client, err := cosmos.New(cosmos.Config{
		Endpoint:   info.Endpoint,
		Key:        info.Key,
		Database:   c.cfg.Cosmos.Database,
		APIVersion: c.cfg.Cosmos.APIVersion,
		Timeout:    c.cfg.Cosmos.Timeout,
	}, cosmos.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	c.logger.Info().Str("endpoint", info.Endpoint).Str("database", c.cfg.Cosmos.Database).Msg("conectado ao Cosmos DB")
	return client, nil
}

func (c *cli) dynamoStore(ctx context.Context) (library.DocumentStore, error) {
	awsCfg, err := awsconf.Load(ctx, c.cfg.Store.Region)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: %w", err)
	}
	endpoint := c.cfg.Store.Endpoint
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	c.logger.Info().Str("table_prefix", c.cfg.Store.TablePrefix).Msg("usando backend DynamoDB")
	store, err := dyndb.New(client, dyndb.TableConfig{TablePrefix: c.cfg.Store.TablePrefix, HashKey: "id"})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func batchOptions(cfg config.BatchConf, recorder *metrics.Recorder) batch.Options {
	return batch.Options{
		Delay:         cfg.Delay,
		ProgressEvery: cfg.ProgressEvery,
		Recorder:      recorder,
	}
}
