package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/raywall/book-library-toolkit/library"
)

// Parameter é um parâmetro nomeado (@nome) de uma consulta SQL.
type Parameter struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Query representa uma consulta SQL parametrizada.
type Query struct {
	Text       string      `json:"query"`
	Parameters []Parameter `json:"parameters"`
	// PageSize define x-ms-max-item-count; zero usa o padrão do serviço.
	PageSize int `json:"-"`
}

type queryResponse struct {
	Documents []library.Item `json:"Documents"`
	Count     int            `json:"_count"`
}

// QueryItems executa a consulta em todas as partições, seguindo o token
// x-ms-continuation até o fim dos resultados.
func (c *Client) QueryItems(ctx context.Context, container string, q Query) ([]library.Item, error) {
	if q.Parameters == nil {
		q.Parameters = []Parameter{}
	}
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("cosmos: marshal query: %w", err)
	}

	link := c.CollectionLink(container)
	var (
		items        []library.Item
		continuation string
	)
	for {
		headers := map[string]string{
			"Content-Type":                               "application/query+json",
			"x-ms-documentdb-isquery":                    "True",
			"x-ms-documentdb-query-enablecrosspartition": "True",
		}
		if q.PageSize > 0 {
			headers["x-ms-max-item-count"] = strconv.Itoa(q.PageSize)
		}
		if continuation != "" {
			headers["x-ms-continuation"] = continuation
		}

		resp, err := c.do(ctx, call{
			method:       http.MethodPost,
			resourceType: "docs",
			link:         link,
			path:         link + "/docs",
			body:         body,
			headers:      headers,
			expect:       http.StatusOK,
		})
		if err != nil {
			return nil, err
		}

		var page queryResponse
		if err := json.Unmarshal(resp.body, &page); err != nil {
			return nil, fmt.Errorf("cosmos: decode query response: %w", err)
		}
		items = append(items, page.Documents...)

		continuation = resp.header.Get("x-ms-continuation")
		if continuation == "" {
			return items, nil
		}
	}
}
