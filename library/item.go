package library

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultPartitionKeyFields é a ordem de busca da partition key: livros usam
// category, registros de empréstimo userId e usuários userType.
var DefaultPartitionKeyFields = []string{"category", "userId", "userType"}

// Item é um documento genérico de qualquer coleção.
type Item map[string]any

// ID retorna o campo id como string.
func (i Item) ID() string {
	switch v := i["id"].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// String retorna um campo textual, ou "" quando ausente.
func (i Item) String(field string) string {
	if v, ok := i[field].(string); ok {
		return v
	}
	return ""
}

// Int retorna um campo numérico inteiro. Números em texto também são aceitos.
func (i Item) Int(field string) (int, bool) {
	switch v := i[field].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}

// PartitionKey retorna o valor do primeiro campo presente em fields.
// Sem correspondência, retorna "" (partition key vazia).
func (i Item) PartitionKey(fields []string) string {
	if len(fields) == 0 {
		fields = DefaultPartitionKeyFields
	}
	for _, f := range fields {
		v, ok := i[f]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return ""
}
