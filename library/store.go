package library

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indica que o documento não existe na coleção.
	ErrNotFound = errors.New("library: item not found")
	// ErrConflict indica que já existe um documento com o mesmo id.
	ErrConflict = errors.New("library: item already exists")
	// ErrCountMismatch indica contadores de exemplares inconsistentes.
	ErrCountMismatch = errors.New("library: inconsistent copy counts")

	// ErrMissingID indica documento sem campo id.
	ErrMissingID = errors.New("library: missing id")
)

// DocumentStore abstrai o banco de documentos. Todas as operações são
// síncronas; container é o nome da coleção (Books, Users...).
type DocumentStore interface {
	CreateItem(ctx context.Context, container string, item Item, partitionKey string) (Item, error)
	DeleteItem(ctx context.Context, container, id, partitionKey string) error
	// FindItem localiza um documento pelo id sem conhecer a partition key.
	FindItem(ctx context.Context, container, id string) (Item, error)
	// ListItems retorna todos os documentos da coleção (cross-partition).
	ListItems(ctx context.Context, container string) ([]Item, error)
}
