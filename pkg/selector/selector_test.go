package selector

import (
	"testing"

	"github.com/raywall/book-library-toolkit/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_EmptySelectsAll(t *testing.T) {
	s, err := Compile("")
	require.NoError(t, err)

	ok, err := s.Match("Books", library.Item{"id": "book001"})
	require.NoError(t, err)
	assert.True(t, ok)

	var nilSel *Selector
	ok, err = nilSel.Match("Books", library.Item{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", nilSel.String())
}

func TestSelector_Match(t *testing.T) {
	book := library.Item{"id": "book020", "title": "", "category": "", "totalCount": float64(0)}
	real := library.Item{"id": "book001", "title": "Dom Casmurro", "category": "Fiction", "totalCount": float64(3)}

	tests := []struct {
		name      string
		expr      string
		container string
		item      library.Item
		want      bool
	}{
		{"Título vazio", `doc.title == ""`, "Books", book, true},
		{"Título preenchido", `doc.title == ""`, "Books", real, false},
		{"Prefixo do id", `doc.id.startsWith("book0")`, "Books", real, true},
		{"Comparação numérica", `doc.totalCount < 1`, "Books", book, true},
		{"Filtro por coleção", `container == "Users"`, "Books", real, false},
		{"Campo ausente", `has(doc.userId) && doc.userId == "u1"`, "Books", real, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expr, s.String())

			got, err := s.Match(tt.container, tt.item)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelector_Errors(t *testing.T) {
	_, err := Compile(`doc.title ==`)
	assert.ErrorContains(t, err, "erro compilação CEL")

	_, err = Compile(`container + "x"`)
	assert.ErrorContains(t, err, "deve retornar bool")

	s, err := Compile(`doc.missing == "x"`)
	require.NoError(t, err)
	_, err = s.Match("Books", library.Item{"id": "book001"})
	assert.ErrorContains(t, err, "erro execução CEL")

	s, err = Compile(`doc.title`)
	require.NoError(t, err)
	_, err = s.Match("Books", library.Item{"title": "x"})
	assert.ErrorContains(t, err, "não é booleano")
}
