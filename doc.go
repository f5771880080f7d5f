// Package booklibrary reúne as ferramentas administrativas do acervo da
// biblioteca: semear, limpar e inspecionar as coleções do banco de documentos
// (Azure Cosmos DB via API REST, ou uma cópia no DynamoDB).
//
// Visão Geral:
// O módulo é organizado em pacotes pequenos e testáveis isoladamente:
// 1. cosmosauth: Assinatura HMAC-SHA256 das requisições REST com a master key.
// 2. cosmos: Cliente REST do Cosmos DB (create, delete, get, query paginada).
// 3. dyndb: O mesmo contrato de armazenamento sobre o DynamoDB.
// 4. batch: Execução item a item com resultado por item e resumo final.
// 5. envloader: Carregamento de variáveis de ambiente para structs.
//
// Sub-Pacotes de Suporte (pkg/):
//   - config: Configuração em camadas (YAML, ambiente, padrões, validação).
//   - credentials: Obtenção da connection string (Azure CLI, ambiente,
//     AWS Secrets Manager, SSM Parameter Store).
//   - source: Leitura dos arquivos book###.json (diretório local ou S3).
//   - selector: Filtros CEL para a limpeza seletiva.
//   - admin: As operações administrativas propriamente ditas.
//   - console, logger, metrics, observability: Saída, logs e métricas.
//
// Exemplo de Início Rápido:
//
//	cfg, err := config.Load("bookadmin.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	provider, _ := credentials.FromConfig(ctx, cfg.Credentials)
//	info, err := credentials.Resolve(ctx, provider)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, _ := cosmos.New(cosmos.Config{
//		Endpoint: info.Endpoint,
//		Key:      info.Key,
//		Database: cfg.Cosmos.Database,
//	})
//
//	a := admin.New(admin.Options{Store: client, Console: console.New(os.Stdout)})
//	summary := a.RemoveRange(ctx, "Books", 1, 15)
//	fmt.Println(summary.Succeeded(), "/", summary.Total())
//
// O binário cmd/bookadmin expõe todas as operações como subcomandos.
package booklibrary
