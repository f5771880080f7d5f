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
// Package envloader carrega variáveis de ambiente para campos de uma struct
// usando as tags `env`, `envDefault` e `envRequired`.
//
// Visão Geral:
// A configuração do toolkit é montada em camadas: primeiro o arquivo YAML
// (opcional), depois o ambiente. O envloader respeita essa ordem: um campo já
// preenchido só é sobrescrito quando a variável correspondente está definida,
// e o `envDefault` só vale para campos que continuam com valor zero.
//
// Tipos suportados: string, int*, uint*, bool, float*, time.Duration e
// []string (valores separados por vírgula), além de structs aninhadas e
// ponteiros para struct.
//
// Exemplo:
//
//	type CosmosConf struct {
//		Endpoint string        `env:"COSMOS_ENDPOINT" envRequired:"true"`
//		Database string        `env:"COSMOS_DATABASE" envDefault:"BookLibraryDB"`
//		Timeout  time.Duration `env:"COSMOS_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg CosmosConf
//	if err := envloader.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Para testes, LoadWithLookup aceita uma função de busca no lugar de
// os.LookupEnv.
package envloader
