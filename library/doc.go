// Package library define o modelo de domínio do acervo (livros e demais
// documentos), a resolução de partition key e o contrato DocumentStore
// implementado pelos backends cosmos e dyndb.
package library
