// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Package cosmosauth gera o token de autorização exigido pela API REST do
// Azure Cosmos DB (SQL API) quando a autenticação é feita com a master key,
// sem depender do SDK oficial.
//
// Visão Geral:
// Cada requisição REST precisa de um cabeçalho Authorization assinado com
// HMAC-SHA256. A assinatura cobre o verbo HTTP, o tipo do recurso, o link do
// recurso e a data da requisição (cabeçalho x-ms-date). Como a data faz parte
// do payload assinado, o token deve ser gerado novamente para cada chamada.
//
// String Canônica:
//
//	lower(verbo) \n lower(tipo) \n link \n lower(data) \n \n
//
// O link do recurso preserva maiúsculas e minúsculas. A chave é decodificada
// de base64 em modo estrito: entradas inválidas retornam ErrInvalidKey, nunca
// são truncadas silenciosamente.
//
// Exemplo de Uso:
//
//	token, err := cosmosauth.Sign(cosmosauth.Request{
//		Verb:         http.MethodPost,
//		ResourceType: "docs",
//		ResourceLink: "dbs/BookLibraryDB/colls/Books",
//		Date:         cosmosauth.FormatDate(time.Now()),
//	}, accountKey)
//	if err != nil {
//		log.Fatal(err)
//	}
//	req.Header.Set("Authorization", cosmosauth.HeaderValue(token))
//
// Para várias requisições com a mesma chave, prefira NewSigner, que decodifica
// a chave uma única vez.
package cosmosauth
