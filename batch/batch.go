package batch

import (
	"context"
	"time"

	"github.com/raywall/book-library-toolkit/pkg/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Result é o desfecho de um item. Err nil indica sucesso.
type Result struct {
	ID     string
	Detail string
	Err    error
}

// OK informa se o item foi processado com sucesso.
func (r Result) OK() bool {
	return r.Err == nil
}

// Summary agrega os resultados de uma execução.
type Summary struct {
	Operation string
	Results   []Result
	Elapsed   time.Duration
}

func (s Summary) Total() int {
	return len(s.Results)
}

func (s Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

func (s Summary) Failed() int {
	return s.Total() - s.Succeeded()
}

// Failures retorna apenas os itens com erro, na ordem de execução.
func (s Summary) Failures() []Result {
	var out []Result
	for _, r := range s.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// Func processa um item. detail é uma descrição curta para o relatório
// (ex: o título do livro inserido).
type Func func(ctx context.Context, id string) (detail string, err error)

// Observer recebe os eventos de uma execução, em ordem.
type Observer interface {
	ItemDone(operation string, r Result)
	Progress(operation string, succeeded, total int)
}

// Options configura um Runner. Todos os campos são opcionais.
type Options struct {
	// Delay é o intervalo mínimo entre chamadas consecutivas.
	Delay time.Duration
	// ProgressEvery dispara Observer.Progress a cada N sucessos (0 desliga).
	ProgressEvery int
	Observer      Observer
	Recorder      *metrics.Recorder
	Logger        zerolog.Logger
}

// Runner executa operações item a item, sequencialmente. Uma falha é
// registrada no Result do item e a execução continua; nada é repetido.
type Runner struct {
	opts    Options
	limiter *rate.Limiter
	now     func() time.Time
}

// NewRunner cria um Runner.
func NewRunner(opts Options) *Runner {
	r := &Runner{opts: opts, now: time.Now}
	if opts.Delay > 0 {
		r.limiter = rate.NewLimiter(rate.Every(opts.Delay), 1)
	}
	return r
}

// Run chama fn para cada id. Com o contexto cancelado, os itens restantes
// são marcados como falha com o erro do contexto, sem serem executados.
func (r *Runner) Run(ctx context.Context, operation string, ids []string, fn Func) Summary {
	start := r.now()
	summary := Summary{Operation: operation, Results: make([]Result, 0, len(ids))}
	log := r.opts.Logger.With().Str("operation", operation).Logger()

	succeeded := 0
	for i, id := range ids {
		if err := r.wait(ctx); err != nil {
			for _, rest := range ids[i:] {
				res := Result{ID: rest, Err: err}
				summary.Results = append(summary.Results, res)
				r.report(operation, res)
			}
			log.Warn().Err(err).Int("skipped", len(ids)-i).Msg("execução interrompida")
			break
		}

		detail, err := fn(ctx, id)
		res := Result{ID: id, Detail: detail, Err: err}
		summary.Results = append(summary.Results, res)

		if err != nil {
			log.Warn().Err(err).Str("id", id).Msg("falha no item")
		} else {
			log.Debug().Str("id", id).Str("detail", detail).Msg("item concluído")
			succeeded++
		}
		r.report(operation, res)

		if res.OK() && r.opts.ProgressEvery > 0 && succeeded%r.opts.ProgressEvery == 0 && r.opts.Observer != nil {
			r.opts.Observer.Progress(operation, succeeded, len(ids))
		}
	}

	summary.Elapsed = r.now().Sub(start)
	r.opts.Recorder.Batch(operation, summary.Elapsed, summary.Failed())
	log.Info().
		Int("total", summary.Total()).
		Int("succeeded", summary.Succeeded()).
		Int("failed", summary.Failed()).
		Dur("elapsed", summary.Elapsed).
		Msg("lote concluído")
	return summary
}

func (r *Runner) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.limiter == nil {
		return nil
	}

	// Só o fim do contexto interrompe a espera (limiter.Wait falharia assim
	// que a espera passasse do deadline).
	res := r.limiter.Reserve()
	delay := res.Delay()
	if delay == 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		res.Cancel()
		return ctx.Err()
	}
}

func (r *Runner) report(operation string, res Result) {
	r.opts.Recorder.Item(operation, res.OK())
	if r.opts.Observer != nil {
		r.opts.Observer.ItemDone(operation, res)
	}
}
