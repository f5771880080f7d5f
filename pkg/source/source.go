package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/raywall/book-library-toolkit/library"
	"github.com/raywall/book-library-toolkit/pkg/awsconf"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNotLocal indica uma operação de escrita sobre uma origem remota.
var ErrNotLocal = errors.New("source: write requires a local directory")

var bookFilePattern = regexp.MustCompile(`^book\d{3}\.json$`)

// IsBookFile informa se o nome segue o padrão book###.json.
func IsBookFile(name string) bool {
	return bookFilePattern.MatchString(name)
}

// Source é uma origem de arquivos de livros.
type Source interface {
	// List retorna os nomes book###.json disponíveis, em ordem.
	List(ctx context.Context) ([]string, error)
	// Read retorna o conteúdo de um arquivo pelo nome.
	Read(ctx context.Context, name string) ([]byte, error)
	// Location descreve a origem (diretório ou URI) para mensagens.
	Location() string
}

// Open detecta o esquema da origem: s3://bucket/prefixo ou diretório local.
func Open(ctx context.Context, location, region string) (Source, error) {
	if strings.HasPrefix(location, "s3://") {
		bucket, prefix, err := ParseS3URI(location)
		if err != nil {
			return nil, err
		}
		cfg, err := awsconf.Load(ctx, region)
		if err != nil {
			return nil, err
		}
		return &S3Source{Client: s3.NewFromConfig(cfg), Bucket: bucket, Prefix: prefix}, nil
	}
	return LocalDir(location)
}

// LocalDir converte a localização num diretório gravável. Origens s3://
// retornam ErrNotLocal.
func LocalDir(location string) (Dir, error) {
	if strings.HasPrefix(location, "s3://") {
		return "", fmt.Errorf("%w: %s", ErrNotLocal, location)
	}
	return Dir(strings.TrimPrefix(location, "file://")), nil
}

// Dir é uma origem em diretório local.
type Dir string

func (d Dir) Location() string { return string(d) }

func (d Dir) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(string(d))
	if err != nil {
		return nil, fmt.Errorf("source: list %s: %w", d, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && IsBookFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (d Dir) Read(ctx context.Context, name string) ([]byte, error) {
	return os.ReadFile(d.Path(name))
}

// Path retorna o caminho completo de um arquivo. Caminhos absolutos são
// mantidos como estão.
func (d Dir) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(string(d), name)
}

// WriteBook grava o livro em <dir>/<id>.json (JSON indentado com 2 espaços),
// criando o diretório se necessário.
func (d Dir) WriteBook(b library.Book) (string, error) {
	if err := os.MkdirAll(string(d), 0o755); err != nil {
		return "", fmt.Errorf("source: create %s: %w", d, err)
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", err
	}
	path := d.Path(library.FileName(b.ID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("source: write %s: %w", path, err)
	}
	return path, nil
}
