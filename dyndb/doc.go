// Package dyndb implementa o contrato library.DocumentStore sobre o
// AWS DynamoDB Go SDK (v2), permitindo semear e limpar uma cópia do acervo
// hospedada no DynamoDB (ou no DynamoDB Local) com os mesmos comandos usados
// para o Cosmos DB.
//
// Visão Geral:
// Cada coleção vira uma tabela `<prefixo><coleção>` com hash key `id`.
// A partition key do Cosmos (category, userId...) é gravada como atributo
// comum e ignorada no endereçamento.
//
// Semântica:
//   - CreateItem usa `attribute_not_exists(id)`: um id repetido falha com
//     library.ErrConflict, como o status 409 do Cosmos.
//   - DeleteItem usa `attribute_exists(id)`: remover um id inexistente falha
//     com library.ErrNotFound, como o status 404 do Cosmos.
//   - FindItem usa GetItem com leitura consistente.
//   - ListItems percorre a tabela com Scan paginado.
//
// Exemplo de Uso:
//
//	awsCfg, _ := config.LoadDefaultConfig(ctx)
//	store, err := dyndb.New(dynamodb.NewFromConfig(awsCfg), dyndb.TableConfig{
//		TablePrefix: "library-",
//		HashKey:     "id",
//	})
//	if err != nil {
//		return err
//	}
//
//	_, err = store.CreateItem(ctx, "Books", library.Item{"id": "book001"}, "Fiction")
//	if errors.Is(err, library.ErrConflict) { /* ... */ }
//
// Configuração:
// Com HashKey vazio, New lê a configuração das variáveis de ambiente
// (DYNAMODB_TABLE_PREFIX, DYNAMODB_HASH_KEY, DYNAMODB_SCAN_PAGE_SIZE).
package dyndb
