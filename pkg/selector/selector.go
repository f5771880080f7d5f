package selector

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/raywall/book-library-toolkit/library"
)

// Selector decide quais documentos uma limpeza remove.
// O zero value (ou nil) seleciona tudo.
type Selector struct {
	expr string
	prg  cel.Program
}

// newEnv declara as variáveis disponíveis nas expressões:
// doc (o documento) e container (o nome da coleção).
func newEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.StdLib(),
		cel.CrossTypeNumericComparisons(true),
		cel.Variable("doc", cel.DynType),
		cel.Variable("container", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("erro fatal CEL init: %w", err)
	}
	return env, nil
}

// Compile prepara a expressão. Expressão vazia = seleciona tudo.
func Compile(expression string) (*Selector, error) {
	if expression == "" {
		return &Selector{}, nil
	}

	env, err := newEnv()
	if err != nil {
		return nil, err
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("erro compilação CEL '%s': %s", expression, issues.Err())
	}
	if t := ast.OutputType(); !t.IsExactType(cel.BoolType) && !t.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expressão CEL '%s' deve retornar bool, retorna %s", expression, t)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("erro programa CEL: %w", err)
	}
	return &Selector{expr: expression, prg: prg}, nil
}

// String retorna a expressão original.
func (s *Selector) String() string {
	if s == nil {
		return ""
	}
	return s.expr
}

// Match avalia a expressão para um documento da coleção informada.
func (s *Selector) Match(container string, item library.Item) (bool, error) {
	if s == nil || s.prg == nil {
		return true, nil
	}

	out, _, err := s.prg.Eval(map[string]any{
		"doc":       map[string]any(item),
		"container": container,
	})
	if err != nil {
		return false, fmt.Errorf("erro execução CEL: %w", err)
	}

	if val, ok := out.Value().(bool); ok {
		return val, nil
	}
	return false, fmt.Errorf("resultado não é booleano")
}
