package admin

import (
	"time"

	"github.com/raywall/book-library-toolkit/batch"
	"github.com/raywall/book-library-toolkit/library"
	"github.com/raywall/book-library-toolkit/pkg/console"
	"github.com/rs/zerolog"
)

// Options configura um Admin.
type Options struct {
	Store   library.DocumentStore
	Console *console.Console
	Logger  zerolog.Logger
	// Batch configura o ritmo das chamadas ao banco. Observer é
	// preenchido com Console quando vazio.
	Batch batch.Options
	// PartitionKeyFields define a ordem de resolução da partition key.
	PartitionKeyFields []string
	Clock              func() time.Time
}

// Admin executa as operações administrativas sobre o acervo.
type Admin struct {
	store    library.DocumentStore
	console  *console.Console
	logger   zerolog.Logger
	remote   *batch.Runner
	local    *batch.Runner
	pkFields []string
	now      func() time.Time
}

// New cria um Admin.
func New(opts Options) *Admin {
	if opts.Console == nil {
		opts.Console = console.New(nil)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if len(opts.PartitionKeyFields) == 0 {
		opts.PartitionKeyFields = library.DefaultPartitionKeyFields
	}

	remote := opts.Batch
	if remote.Observer == nil {
		remote.Observer = opts.Console
	}
	remote.Logger = opts.Logger

	// Escritas locais não precisam de intervalo entre itens.
	local := remote
	local.Delay = 0

	return &Admin{
		store:    opts.Store,
		console:  opts.Console,
		logger:   opts.Logger,
		remote:   batch.NewRunner(remote),
		local:    batch.NewRunner(local),
		pkFields: opts.PartitionKeyFields,
		now:      opts.Clock,
	}
}
