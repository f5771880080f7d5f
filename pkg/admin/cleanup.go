package admin

import (
	"context"

	"github.com/raywall/book-library-toolkit/batch"
	"github.com/raywall/book-library-toolkit/library"
	"github.com/raywall/book-library-toolkit/pkg/console"
	"github.com/raywall/book-library-toolkit/pkg/selector"
)

// CleanupResult é o desfecho da limpeza de uma coleção. Err indica que a
// coleção não pôde ser listada; nesse caso Summary está vazio.
type CleanupResult struct {
	Container string
	Skipped   int
	Summary   batch.Summary
	Err       error
}

// Cleanup remove os documentos de cada coleção, opcionalmente filtrados pelo
// seletor. A falha ao listar uma coleção é reportada e a próxima é processada.
func (a *Admin) Cleanup(ctx context.Context, containers []string, sel *selector.Selector) []CleanupResult {
	if sel.String() != "" {
		a.console.Start(console.IconCleanup, "Starting cleanup of documents matching %q...", sel.String())
	} else {
		a.console.Start(console.IconCleanup, "Starting cleanup of all data...")
	}

	results := make([]CleanupResult, 0, len(containers))
	for _, container := range containers {
		results = append(results, a.cleanContainer(ctx, container, sel))
	}

	a.console.Done("Cleanup completed!")
	return results
}

func (a *Admin) cleanContainer(ctx context.Context, container string, sel *selector.Selector) CleanupResult {
	res := CleanupResult{Container: container}
	a.console.Section(console.IconSection, "Cleaning %s collection...", container)

	if a.store == nil {
		res.Err = ErrNoStore
		a.console.Failure("Error cleaning %s: %v", container, res.Err)
		return res
	}

	items, err := a.store.ListItems(ctx, container)
	if err != nil {
		res.Err = err
		a.console.Failure("Error cleaning %s: %v", container, err)
		a.logger.Error().Err(err).Str("container", container).Msg("falha ao listar coleção")
		return res
	}

	var targets []library.Item
	for _, item := range items {
		ok, err := sel.Match(container, item)
		if err != nil {
			a.console.Warning("Skipping %s: %v", item.ID(), err)
			res.Skipped++
			continue
		}
		if ok {
			targets = append(targets, item)
		}
	}
	a.console.Println("Found %d items to delete", len(targets))

	ids := make([]string, len(targets))
	for i, item := range targets {
		ids[i] = item.ID()
	}

	// O runner chama fn em ordem, então next acompanha o item corrente
	// mesmo com ids repetidos em partições diferentes.
	next := 0
	res.Summary = a.remote.Run(ctx, "cleanup", ids, func(ctx context.Context, id string) (string, error) {
		item := targets[next]
		next++
		pk := item.PartitionKey(a.pkFields)
		if err := a.store.DeleteItem(ctx, container, id, pk); err != nil {
			return "", err
		}
		return "Deleted " + id, nil
	})

	a.console.Success("Successfully deleted %d items from %s", res.Summary.Succeeded(), container)
	return res
}
