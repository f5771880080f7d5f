package admin

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/raywall/book-library-toolkit/batch"
	"github.com/raywall/book-library-toolkit/library"
	"github.com/raywall/book-library-toolkit/pkg/console"
	"github.com/raywall/book-library-toolkit/pkg/source"
)

// ErrNoStore indica uma operação de banco num Admin sem DocumentStore.
var ErrNoStore = errors.New("admin: document store not configured")

// InsertBooks lê cada arquivo da origem e cria o documento na coleção com o
// conteúdo do arquivo, sem descartar campos.
// Contadores inconsistentes geram apenas alerta. Com verify, lista a
// coleção ao final.
func (a *Admin) InsertBooks(ctx context.Context, container string, src source.Source, names []string, verify bool) batch.Summary {
	a.console.Start(console.IconBooks, "Inserting %d books into %s from %s...", len(names), container, src.Location())

	summary := a.remote.Run(ctx, "insert", names, func(ctx context.Context, name string) (string, error) {
		if a.store == nil {
			return "", ErrNoStore
		}
		data, err := src.Read(ctx, name)
		if err != nil {
			return "", err
		}
		item, err := library.DecodeItem(data)
		if err != nil {
			return "", err
		}
		book := library.BookFromItem(item)
		if err := book.CheckCounts(); err != nil {
			a.console.Warning("%s (%s): %v", book.ID, name, err)
			a.logger.Warn().Err(err).Str("id", book.ID).Msg("contadores inconsistentes")
		}

		created, err := a.store.CreateItem(ctx, container, item, book.Category)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Successfully inserted: %s (ID: %s)", book.Title, created.ID()), nil
	})

	a.console.Summary(summary, "books inserted successfully")

	if verify {
		a.console.Section(console.IconBooks, "Verifying inserted books:")
		if err := a.printBooks(ctx, container); err != nil {
			a.console.Failure("Error querying books: %v", err)
		}
	}
	return summary
}

// RemoveRange remove book<from>..book<to>. A partition key de cada livro é
// descoberta por uma consulta cross-partition antes da remoção.
func (a *Admin) RemoveRange(ctx context.Context, container string, from, to int) batch.Summary {
	ids := library.BookIDs(from, to)
	a.console.Start(console.IconCleanup, "Removing books (%s-%s) from %s...", library.BookID(from), library.BookID(to), container)

	summary := a.remote.Run(ctx, "remove", ids, func(ctx context.Context, id string) (string, error) {
		if a.store == nil {
			return "", ErrNoStore
		}
		item, err := a.store.FindItem(ctx, container, id)
		if err != nil {
			return "", err
		}
		pk := item.PartitionKey(a.pkFields)
		if err := a.store.DeleteItem(ctx, container, id, pk); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted %s (category: %s)", id, pk), nil
	})

	a.console.Done("Successfully deleted %d/%d books", summary.Succeeded(), summary.Total())
	return summary
}

// CreateBlankBooks grava book<from>..book<to> vazios no diretório, criando-o se preciso.
func (a *Admin) CreateBlankBooks(ctx context.Context, dir source.Dir, from, to int) batch.Summary {
	ids := library.BookIDs(from, to)
	a.console.Start(console.IconBooks, "Creating %d blank books (%s-%s)...", len(ids), library.BookID(from), library.BookID(to))
	a.console.Println("Data directory: %s", dir)

	now := a.now()
	summary := a.local.Run(ctx, "blank", ids, func(ctx context.Context, id string) (string, error) {
		path, err := dir.WriteBook(library.BlankBook(id, now))
		if err != nil {
			return "", err
		}
		return "Created " + path, nil
	})

	a.console.Done("Successfully created %d/%d blank books", summary.Succeeded(), summary.Total())
	return summary
}

// ListBooks retorna os livros da coleção ordenados por título (e id).
// A ordenação é feita no cliente: consultas cross-partition pela API REST
// não aceitam ORDER BY.
func (a *Admin) ListBooks(ctx context.Context, container string) ([]library.Book, error) {
	if a.store == nil {
		return nil, ErrNoStore
	}
	items, err := a.store.ListItems(ctx, container)
	if err != nil {
		return nil, err
	}

	books := make([]library.Book, 0, len(items))
	for _, item := range items {
		books = append(books, library.BookFromItem(item))
	}
	sort.SliceStable(books, func(i, j int) bool {
		if books[i].Title != books[j].Title {
			return books[i].Title < books[j].Title
		}
		return books[i].ID < books[j].ID
	})
	return books, nil
}

// ShowBooks imprime a listagem de ListBooks.
func (a *Admin) ShowBooks(ctx context.Context, container string) error {
	a.console.Start(console.IconBooks, "Books in %s:", container)
	return a.printBooks(ctx, container)
}

func (a *Admin) printBooks(ctx context.Context, container string) error {
	books, err := a.ListBooks(ctx, container)
	if err != nil {
		return err
	}
	for _, b := range books {
		a.console.Bullet("%s (ID: %s, Category: %s)", b.Title, b.ID, b.Category)
	}
	a.console.Println("Total: %d", len(books))
	return nil
}
