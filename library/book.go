package library

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// TimestampLayout é o formato ISO-8601 (UTC, sufixo Z) de addedDate/lastModified.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

var bookIDPattern = regexp.MustCompile(`^book(\d{3})$`)

// Book representa um registro da coleção Books. Category é a partition key.
type Book struct {
	ID             string `json:"id" validate:"required"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	Category       string `json:"category"`
	ISBN           string `json:"isbn"`
	TotalCount     int    `json:"totalCount" validate:"gte=0"`
	AvailableCount int    `json:"availableCount" validate:"gte=0"`
	BorrowedCount  int    `json:"borrowedCount" validate:"gte=0"`
	Description    string `json:"description"`
	PublishedYear  int    `json:"publishedYear"`
	AddedDate      string `json:"addedDate"`
	LastModified   string `json:"lastModified"`
}

// BookID formata o identificador sequencial (ex: 7 -> "book007").
func BookID(n int) string {
	return fmt.Sprintf("book%03d", n)
}

// BookIDs retorna os identificadores de from até to, inclusive.
func BookIDs(from, to int) []string {
	if to < from {
		return nil
	}
	ids := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		ids = append(ids, BookID(i))
	}
	return ids
}

// ParseBookID extrai o número sequencial de um id no formato book###.
func ParseBookID(id string) (int, bool) {
	m := bookIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FileName retorna o nome do arquivo JSON de um livro.
func FileName(id string) string {
	return id + ".json"
}

// Timestamp formata o instante no padrão usado pelos registros.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// BlankBook cria um registro vazio, apenas com id e datas preenchidos.
func BlankBook(id string, now time.Time) Book {
	ts := Timestamp(now)
	return Book{
		ID:           id,
		AddedDate:    ts,
		LastModified: ts,
	}
}

// DecodeBook interpreta o conteúdo de um arquivo de livro.
func DecodeBook(data []byte) (Book, error) {
	var b Book
	if err := json.Unmarshal(data, &b); err != nil {
		return Book{}, fmt.Errorf("library: decode book: %w", err)
	}
	if err := validate.Struct(b); err != nil {
		return Book{}, fmt.Errorf("library: invalid book: %w", err)
	}
	return b, nil
}

// CheckCounts verifica availableCount + borrowedCount == totalCount.
// O invariante não é imposto na inserção; o retorno serve apenas para alertas.
func (b Book) CheckCounts() error {
	if b.AvailableCount+b.BorrowedCount != b.TotalCount {
		return fmt.Errorf("%w: available %d + borrowed %d != total %d",
			ErrCountMismatch, b.AvailableCount, b.BorrowedCount, b.TotalCount)
	}
	return nil
}

// DecodeItem interpreta um arquivo de livro como documento genérico,
// preservando todos os campos exatamente como estão no arquivo.
func DecodeItem(data []byte) (Item, error) {
	var item Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("library: decode book: %w", err)
	}
	if item.ID() == "" {
		return nil, fmt.Errorf("library: invalid book: %w", ErrMissingID)
	}
	return item, nil
}

// BookFromItem extrai os campos conhecidos de um documento. Campos ausentes
// ficam vazios e números em texto ("1965") são aceitos.
func BookFromItem(item Item) Book {
	total, _ := item.Int("totalCount")
	available, _ := item.Int("availableCount")
	borrowed, _ := item.Int("borrowedCount")
	year, _ := item.Int("publishedYear")
	return Book{
		ID:             item.ID(),
		Title:          item.String("title"),
		Author:         item.String("author"),
		Category:       item.String("category"),
		ISBN:           item.String("isbn"),
		TotalCount:     total,
		AvailableCount: available,
		BorrowedCount:  borrowed,
		Description:    item.String("description"),
		PublishedYear:  year,
		AddedDate:      item.String("addedDate"),
		LastModified:   item.String("lastModified"),
	}
}

var validate = validator.New()
