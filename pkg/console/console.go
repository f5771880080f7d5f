package console

import (
	"errors"
	"fmt"
	"io"

	"github.com/raywall/book-library-toolkit/batch"
	"github.com/raywall/book-library-toolkit/library"
)

// Prefixos das linhas do relatório.
const (
	IconOK      = "✅"
	IconFail    = "❌"
	IconWarn    = "⚠️ "
	IconSummary = "📊"
	IconDone    = "🎯"
	IconBooks   = "📚"
	IconCleanup = "🧹"
	IconSection = "📋"
)

// Console escreve o relatório legível das operações. Erros de escrita são
// ignorados: o relatório não interrompe a operação.
type Console struct {
	out io.Writer
}

// New cria um Console. out nil descarta tudo.
func New(out io.Writer) *Console {
	if out == nil {
		out = io.Discard
	}
	return &Console{out: out}
}

func (c *Console) line(prefix, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if prefix != "" {
		msg = prefix + " " + msg
	}
	fmt.Fprintln(c.out, msg)
}

// Println escreve uma linha sem prefixo.
func (c *Console) Println(format string, args ...any) { c.line("", format, args...) }

func (c *Console) Success(format string, args ...any) { c.line(IconOK, format, args...) }

func (c *Console) Failure(format string, args ...any) { c.line(IconFail, format, args...) }

func (c *Console) Warning(format string, args ...any) { c.line(IconWarn, format, args...) }

// Start anuncia o início de uma operação.
func (c *Console) Start(icon, format string, args ...any) { c.line(icon, format, args...) }

// Section abre um bloco precedido de linha em branco.
func (c *Console) Section(icon, format string, args ...any) {
	fmt.Fprintln(c.out)
	c.line(icon, format, args...)
}

// Bullet escreve um item de listagem.
func (c *Console) Bullet(format string, args ...any) { c.line("  -", format, args...) }

// Summary escreve a contagem final no formato "📊 Summary: ok/total <what>".
func (c *Console) Summary(s batch.Summary, what string) {
	c.Section(IconSummary, "Summary: %d/%d %s", s.Succeeded(), s.Total(), what)
}

// Done escreve a linha de encerramento "🎯 ...".
func (c *Console) Done(format string, args ...any) { c.Section(IconDone, format, args...) }

// ItemDone implementa batch.Observer. Itens inexistentes recebem alerta,
// não erro.
func (c *Console) ItemDone(operation string, r batch.Result) {
	switch {
	case r.OK():
		detail := r.Detail
		if detail == "" {
			detail = r.ID
		}
		c.Success("%s", detail)
	case errors.Is(r.Err, library.ErrNotFound):
		c.Warning("%s %s: not found", operation, r.ID)
	default:
		c.Failure("%s %s: %v", operation, r.ID, r.Err)
	}
}

// progressVerbs traduz a operação do lote no verbo da linha de progresso.
var progressVerbs = map[string]string{
	"cleanup": "Deleted",
	"remove":  "Deleted",
	"insert":  "Inserted",
	"blank":   "Created",
}

// Progress implementa batch.Observer (ex: "  Deleted 5/12 items...").
func (c *Console) Progress(operation string, succeeded, total int) {
	verb, ok := progressVerbs[operation]
	if !ok {
		verb = operation
	}
	c.Println("  %s %d/%d items...", verb, succeeded, total)
}
