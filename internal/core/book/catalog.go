package book

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed books.yaml
var defaultBooks []byte

// ErrInvalidBook は書籍定義に必須項目が欠けている場合に返却されます。
var ErrInvalidBook = errors.New("book: invalid book")

// Book は静的な書籍エントリです。
type Book struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
}

// Lister は書籍一覧を返すユースケースです。
type Lister interface {
	ListBooks(ctx context.Context) ([]Book, error)
}

// Catalog は起動時に一度だけ読み込まれる読み取り専用の書籍一覧です。
type Catalog struct {
	books []Book
}

// NewCatalog は与えられた書籍からカタログを生成します。
func NewCatalog(books []Book) *Catalog {
	cloned := make([]Book, len(books))
	copy(cloned, books)
	return &Catalog{books: cloned}
}

// LoadDefault は組み込みの books.yaml からカタログを生成します。
func LoadDefault() (*Catalog, error) {
	return Parse(defaultBooks)
}

// LoadFile は YAML ファイルからカタログを生成します。path が空の場合は組み込みの一覧を使用します。
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return LoadDefault()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("book: read file %s: %w", path, err)
	}
	return Parse(b)
}

// Parse は YAML 配列を書籍一覧として解釈します。
func Parse(data []byte) (*Catalog, error) {
	var books []Book
	if err := yaml.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("book: parse yaml: %w", err)
	}

	for i, b := range books {
		if b.Title == "" {
			return nil, fmt.Errorf("book: entry %d has no title: %w", i, ErrInvalidBook)
		}
	}

	return NewCatalog(books), nil
}

// ListBooks は書籍一覧のコピーを定義順で返します。
func (c *Catalog) ListBooks(_ context.Context) ([]Book, error) {
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out, nil
}

// Len は書籍数を返します。
func (c *Catalog) Len() int {
	return len(c.books)
}
