package book

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefault(t *testing.T) {
	t.Parallel()

	catalog, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault returned error: %v", err)
	}

	books, err := catalog.ListBooks(context.Background())
	if err != nil {
		t.Fatalf("ListBooks returned error: %v", err)
	}

	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}

	if books[0].Title != "The Awakening" || books[0].Author != "Kate Chopin" {
		t.Fatalf("unexpected first book: %+v", books[0])
	}

	if books[1].Title != "City of Glass" || books[1].Author != "Paul Auster" {
		t.Fatalf("unexpected second book: %+v", books[1])
	}
}

func TestCatalog_ListBooksReturnsCopy(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog([]Book{{Title: "A", Author: "B"}})

	first, _ := catalog.ListBooks(context.Background())
	first[0].Title = "mutated"

	second, _ := catalog.ListBooks(context.Background())
	if second[0].Title != "A" {
		t.Fatalf("catalog was mutated through returned slice: %+v", second[0])
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "books.yaml")
	content := "- title: Dune\n  author: Frank Herbert\n- title: Emma\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write books file: %v", err)
	}

	catalog, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	if catalog.Len() != 2 {
		t.Fatalf("expected 2 books, got %d", catalog.Len())
	}
}

func TestLoadFile_EmptyPathUsesDefault(t *testing.T) {
	t.Parallel()

	catalog, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	if catalog.Len() != 2 {
		t.Fatalf("expected embedded catalog, got %d books", catalog.Len())
	}
}

func TestParse_MissingTitle(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("- author: Nobody\n")); !errors.Is(err, ErrInvalidBook) {
		t.Fatalf("expected ErrInvalidBook, got %v", err)
	}
}
