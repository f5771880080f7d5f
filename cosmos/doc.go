// Package cosmos implementa um cliente REST mínimo para o Azure Cosmos DB
// (SQL API) autenticado com master key, assinando cada requisição com o
// pacote cosmosauth.
//
// O Client satisfaz library.DocumentStore: criação, remoção, leitura e
// consultas cross-partition com paginação por x-ms-continuation. Respostas
// fora da faixa de sucesso viram *StatusError, que pode ser comparado com
// library.ErrNotFound, library.ErrConflict e ErrUnauthorized via errors.Is.
package cosmos
