package cosmos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raywall/book-library-toolkit/cosmosauth"
	"github.com/raywall/book-library-toolkit/library"
	"github.com/rs/zerolog"
)

// DefaultAPIVersion é o valor enviado em x-ms-version.
const DefaultAPIVersion = "2020-07-15"

// HTTPDoer abstrai o *http.Client (permite mocking).
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config contém os dados de conexão de uma conta Cosmos DB.
type Config struct {
	Endpoint   string
	Key        string
	Database   string
	APIVersion string
	Timeout    time.Duration
}

// Client executa chamadas REST assinadas contra um database.
type Client struct {
	endpoint   *url.URL
	database   string
	apiVersion string
	signer     *cosmosauth.Signer
	http       HTTPDoer
	now        func() time.Time
	activityID func() string
	logger     zerolog.Logger
}

// Option customiza o Client.
type Option func(*Client)

// WithHTTPClient substitui o cliente HTTP.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) { c.http = doer }
}

// WithClock substitui a fonte de tempo usada no x-ms-date.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithLogger define o logger de diagnóstico.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New valida a configuração e cria o Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("cosmos: endpoint is required")
	}
	if cfg.Database == "" {
		return nil, errors.New("cosmos: database is required")
	}
	endpoint, err := url.Parse(strings.TrimRight(cfg.Endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("cosmos: invalid endpoint: %w", err)
	}
	if endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("cosmos: invalid endpoint %q", cfg.Endpoint)
	}
	signer, err := cosmosauth.NewSigner(cfg.Key)
	if err != nil {
		return nil, err
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		endpoint:   endpoint,
		database:   cfg.Database,
		apiVersion: apiVersion,
		signer:     signer,
		http:       &http.Client{Timeout: timeout},
		now:        time.Now,
		activityID: func() string { return uuid.NewString() },
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Database retorna o nome do database configurado.
func (c *Client) Database() string {
	return c.database
}

// CollectionLink retorna o link do recurso de uma coleção.
func (c *Client) CollectionLink(container string) string {
	return "dbs/" + c.database + "/colls/" + container
}

// DocumentLink retorna o link do recurso de um documento.
func (c *Client) DocumentLink(container, id string) string {
	return c.CollectionLink(container) + "/docs/" + id
}

// CreateItem insere o documento (POST .../docs). Sucesso = 201.
func (c *Client) CreateItem(ctx context.Context, container string, item library.Item, partitionKey string) (library.Item, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("cosmos: marshal item: %w", err)
	}
	pk, err := partitionKeyHeader(partitionKey)
	if err != nil {
		return nil, err
	}

	link := c.CollectionLink(container)
	resp, err := c.do(ctx, call{
		method:       http.MethodPost,
		resourceType: "docs",
		link:         link,
		path:         link + "/docs",
		body:         body,
		headers: map[string]string{
			"Content-Type":                 "application/json",
			"x-ms-documentdb-partitionkey": pk,
		},
		expect: http.StatusCreated,
	})
	if err != nil {
		return nil, err
	}

	var created library.Item
	if err := json.Unmarshal(resp.body, &created); err != nil {
		return nil, fmt.Errorf("cosmos: decode created item: %w", err)
	}
	return created, nil
}

// DeleteItem remove o documento. Sucesso = 204; 404 casa com library.ErrNotFound.
func (c *Client) DeleteItem(ctx context.Context, container, id, partitionKey string) error {
	pk, err := partitionKeyHeader(partitionKey)
	if err != nil {
		return err
	}
	link := c.DocumentLink(container, id)
	_, err = c.do(ctx, call{
		method:       http.MethodDelete,
		resourceType: "docs",
		link:         link,
		path:         link,
		headers:      map[string]string{"x-ms-documentdb-partitionkey": pk},
		expect:       http.StatusNoContent,
	})
	return err
}

// GetItem lê um documento conhecendo sua partition key.
func (c *Client) GetItem(ctx context.Context, container, id, partitionKey string) (library.Item, error) {
	pk, err := partitionKeyHeader(partitionKey)
	if err != nil {
		return nil, err
	}
	link := c.DocumentLink(container, id)
	resp, err := c.do(ctx, call{
		method:       http.MethodGet,
		resourceType: "docs",
		link:         link,
		path:         link,
		headers:      map[string]string{"x-ms-documentdb-partitionkey": pk},
		expect:       http.StatusOK,
	})
	if err != nil {
		return nil, err
	}
	var item library.Item
	if err := json.Unmarshal(resp.body, &item); err != nil {
		return nil, fmt.Errorf("cosmos: decode item: %w", err)
	}
	return item, nil
}

// FindItem busca o documento pelo id em todas as partições.
func (c *Client) FindItem(ctx context.Context, container, id string) (library.Item, error) {
	items, err := c.QueryItems(ctx, container, Query{
		Text:       "SELECT * FROM c WHERE c.id = @id",
		Parameters: []Parameter{{Name: "@id", Value: id}},
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cosmos: %s in %s: %w", id, container, library.ErrNotFound)
	}
	return items[0], nil
}

// ListItems retorna todos os documentos da coleção.
func (c *Client) ListItems(ctx context.Context, container string) ([]library.Item, error) {
	return c.QueryItems(ctx, container, Query{Text: "SELECT * FROM c"})
}

type call struct {
	method       string
	resourceType string
	link         string
	path         string
	body         []byte
	headers      map[string]string
	expect       int
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// do assina e executa uma única requisição. A data é gerada aqui, logo
// antes do envio, pois faz parte do payload assinado.
func (c *Client) do(ctx context.Context, rc call) (*response, error) {
	target := *c.endpoint
	target.Path = "/" + rc.path

	var body io.Reader
	if rc.body != nil {
		body = bytes.NewReader(rc.body)
	}
	req, err := http.NewRequestWithContext(ctx, rc.method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("cosmos: build request: %w", err)
	}

	date := cosmosauth.FormatDate(c.now())
	token := c.signer.Sign(cosmosauth.Request{
		Verb:         rc.method,
		ResourceType: rc.resourceType,
		ResourceLink: rc.link,
		Date:         date,
	})

	req.Header.Set("Authorization", cosmosauth.HeaderValue(token))
	req.Header.Set("x-ms-date", date)
	req.Header.Set("x-ms-version", c.apiVersion)
	req.Header.Set("x-ms-activity-id", c.activityID())
	req.Header.Set("Accept", "application/json")
	for k, v := range rc.headers {
		req.Header.Set(k, v)
	}

	start := c.now()
	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cosmos: %s %s: %w", rc.method, rc.link, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("cosmos: read response: %w", err)
	}

	c.logger.Debug().
		Str("method", rc.method).
		Str("link", rc.link).
		Int("status", httpResp.StatusCode).
		Dur("elapsed", c.now().Sub(start)).
		Msg("cosmos request")

	if httpResp.StatusCode != rc.expect {
		return nil, &StatusError{
			Method:     rc.method,
			Link:       rc.link,
			StatusCode: httpResp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}
	return &response{status: httpResp.StatusCode, header: httpResp.Header, body: data}, nil
}

// partitionKeyHeader codifica a partition key como array JSON (["valor"]).
func partitionKeyHeader(pk string) (string, error) {
	raw, err := json.Marshal([]string{pk})
	if err != nil {
		return "", fmt.Errorf("cosmos: encode partition key: %w", err)
	}
	return string(raw), nil
}
