// Package cosmostest fornece um servidor HTTP em memória que imita a API REST
// do Cosmos DB para testes. Toda requisição tem a assinatura verificada com a
// mesma chave do cliente; assinaturas inválidas recebem 401.
package cosmostest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/raywall/book-library-toolkit/cosmosauth"
)

// Key é uma master key válida (32 bytes) para uso em testes.
const Key = "AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8="

type document struct {
	pk   string
	body map[string]any
}

// Server é o emulador. Coleções são criadas sob demanda.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	key      string
	database string
	colls    map[string]map[string]document
	failures map[string]int
	requests []Request
}

// Request registra uma chamada recebida.
type Request struct {
	Method string
	Path   string
	Header http.Header
}

// NewServer inicia o emulador para o database informado.
func NewServer(database string) *Server {
	s := &Server{
		key:      Key,
		database: database,
		colls:    make(map[string]map[string]document),
		failures: make(map[string]int),
	}

	router := mux.NewRouter()
	router.HandleFunc("/dbs/{db}/colls/{coll}/docs", s.handleFeed).Methods(http.MethodPost)
	router.HandleFunc("/dbs/{db}/colls/{coll}/docs/{id}", s.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/dbs/{db}/colls/{coll}/docs/{id}", s.handleDelete).Methods(http.MethodDelete)
	router.Use(s.record, s.authenticate)

	s.Server = httptest.NewServer(router)
	return s
}

// Seed grava um documento diretamente, sem passar pela API.
func (s *Server) Seed(coll string, pk string, doc map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(coll)[doc["id"].(string)] = document{pk: pk, body: doc}
}

// FailOn faz operações de escrita sobre o id responderem com status.
func (s *Server) FailOn(id string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[id] = status
}

// IDs retorna os ids gravados na coleção, ordenados.
func (s *Server) IDs(coll string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.colls[coll]))
	for id := range s.colls[coll] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Document retorna o documento armazenado e sua partition key.
func (s *Server) Document(coll, id string) (map[string]any, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.colls[coll][id]
	return d.body, d.pk, ok
}

// Requests retorna as requisições recebidas até o momento.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) collection(name string) map[string]document {
	c, ok := s.colls[name]
	if !ok {
		c = make(map[string]document)
		s.colls[name] = c
	}
	return c
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone()})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		link := "dbs/" + vars["db"] + "/colls/" + vars["coll"]
		if id, ok := vars["id"]; ok {
			link += "/docs/" + id
		}

		expected, err := cosmosauth.Sign(cosmosauth.Request{
			Verb:         r.Method,
			ResourceType: "docs",
			ResourceLink: link,
			Date:         r.Header.Get("x-ms-date"),
		}, s.key)
		got, _ := url.QueryUnescape(r.Header.Get("Authorization"))
		if err != nil || got != expected || r.Header.Get("x-ms-date") == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "The input authorization token can't serve the request.")
			return
		}
		if vars["db"] != s.database {
			writeError(w, http.StatusNotFound, "NotFound", "database not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if strings.EqualFold(r.Header.Get("x-ms-documentdb-isquery"), "true") {
		s.handleQuery(w, r)
		return
	}
	s.handleCreate(w, r)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	coll := mux.Vars(r)["coll"]
	pk, ok := parsePartitionKey(r.Header.Get("x-ms-documentdb-partitionkey"))
	if !ok {
		writeError(w, http.StatusBadRequest, "BadRequest", "partition key header is required")
		return
	}

	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}
	id, _ := doc["id"].(string)
	if id == "" {
		writeError(w, http.StatusBadRequest, "BadRequest", "id is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.failures[id]; ok {
		writeError(w, status, http.StatusText(status), "injected failure")
		return
	}
	c := s.collection(coll)
	if _, exists := c[id]; exists {
		writeError(w, http.StatusConflict, "Conflict", "Entity with the specified id already exists in the system.")
		return
	}
	doc["_rid"] = strconv.Itoa(len(c) + 1)
	c[id] = document{pk: pk, body: doc}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pk, _ := parsePartitionKey(r.Header.Get("x-ms-documentdb-partitionkey"))

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.collection(vars["coll"])[vars["id"]]
	if !ok || d.pk != pk {
		writeError(w, http.StatusNotFound, "NotFound", "Entity with the specified id does not exist in the system.")
		return
	}
	writeJSON(w, http.StatusOK, d.body)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pk, _ := parsePartitionKey(r.Header.Get("x-ms-documentdb-partitionkey"))

	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.failures[vars["id"]]; ok {
		writeError(w, status, http.StatusText(status), "injected failure")
		return
	}
	c := s.collection(vars["coll"])
	d, ok := c[vars["id"]]
	if !ok || d.pk != pk {
		writeError(w, http.StatusNotFound, "NotFound", "Entity with the specified id does not exist in the system.")
		return
	}
	delete(c, vars["id"])
	w.WriteHeader(http.StatusNoContent)
}

type queryBody struct {
	Query      string `json:"query"`
	Parameters []struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
	} `json:"parameters"`
}

// handleQuery entende apenas "SELECT * FROM c" e o filtro "WHERE c.id = @id",
// suficientes para as operações administrativas.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Type") != "application/query+json" {
		writeError(w, http.StatusBadRequest, "BadRequest", "unsupported content type")
		return
	}
	raw, _ := io.ReadAll(r.Body)
	var q queryBody
	if err := json.Unmarshal(raw, &q); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}

	var idFilter *string
	if strings.Contains(q.Query, "WHERE c.id = @id") {
		for _, p := range q.Parameters {
			if p.Name == "@id" {
				v, _ := p.Value.(string)
				idFilter = &v
			}
		}
	}

	s.mu.Lock()
	ids := make([]string, 0)
	c := s.collection(mux.Vars(r)["coll"])
	for id := range c {
		if idFilter == nil || *idFilter == id {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	docs := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, c[id].body)
	}
	s.mu.Unlock()

	offset, _ := strconv.Atoi(r.Header.Get("x-ms-continuation"))
	if offset > len(docs) {
		offset = len(docs)
	}
	end := len(docs)
	if size, err := strconv.Atoi(r.Header.Get("x-ms-max-item-count")); err == nil && size > 0 && offset+size < end {
		end = offset + size
		w.Header().Set("x-ms-continuation", strconv.Itoa(end))
	}
	page := docs[offset:end]
	writeJSON(w, http.StatusOK, map[string]any{"Documents": page, "_count": len(page)})
}

func parsePartitionKey(header string) (string, bool) {
	var values []string
	if err := json.Unmarshal([]byte(header), &values); err != nil || len(values) != 1 {
		return "", false
	}
	return values[0], true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}
