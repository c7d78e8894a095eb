package services

import (
	"errors"
	"testing"

	"bookStore/entities"
	"bookStore/models"
)

func browseCatalog() *fakeBookRepo {
	return newFakeBookRepo(
		entities.Book{Id: "b1", Title: "Dune", Author: "Herbert", Category: "Sci-Fi", Price: 12.5},
		entities.Book{Id: "b2", Title: "Dune Messiah", Author: "Herbert", Category: "Sci-Fi", Price: 11},
		entities.Book{Id: "b3", Title: "Emma", Author: "Austen", Category: " Classics ", Price: 8},
		entities.Book{Id: "b4", Title: "Untitled", Author: "Anon", Category: "", Price: 5},
	)
}

func TestGetBooksFilters(t *testing.T) {
	bs := NewBookService(browseCatalog())

	tests := []struct {
		name     string
		category string
		search   string
		wantIds  []string
	}{
		{"no filter", "", "", []string{"b1", "b2", "b3", "b4"}},
		{"all passes everything", "all", "", []string{"b1", "b2", "b3", "b4"}},
		{"category", "Sci-Fi", "", []string{"b1", "b2"}},
		{"category trims stored value", "Classics", "", []string{"b3"}},
		{"search case-insensitive", "", "dUnE", []string{"b1", "b2"}},
		{"category and search", "Sci-Fi", "messiah", []string{"b2"}},
		{"no match", "Sci-Fi", "emma", []string{}},
	}
	for _, tc := range tests {
		books, err := bs.GetBooks(tc.category, tc.search)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(books) != len(tc.wantIds) {
			t.Errorf("%s: got %d books, want %d", tc.name, len(books), len(tc.wantIds))
			continue
		}
		for i, b := range books {
			if b.Id != tc.wantIds[i] {
				t.Errorf("%s: got id %q at %d, want %q", tc.name, b.Id, i, tc.wantIds[i])
			}
		}
	}
}

func TestGetBookByIdMissing(t *testing.T) {
	bs := NewBookService(browseCatalog())

	if _, err := bs.GetBookById("nope"); !errors.Is(err, models.ErrNotFoundError) {
		t.Fatalf("got %v, want ErrNotFoundError", err)
	}
}

func TestCategoriesDerivedFromCatalog(t *testing.T) {
	bs := NewBookService(browseCatalog())

	categories, err := bs.Categories()
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	want := []string{"Sci-Fi", "Classics"}
	if len(categories) != len(want) {
		t.Fatalf("got %v, want %v", categories, want)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Fatalf("got %v, want %v", categories, want)
		}
	}
}

func TestCreateBookValidation(t *testing.T) {
	bs := NewBookService(browseCatalog())

	if _, err := bs.CreateBook(entities.Book{Title: "No Author", Price: 5}); !errors.Is(err, models.ErrBadRequest) {
		t.Errorf("missing author: got %v, want ErrBadRequest", err)
	}
	if _, err := bs.CreateBook(entities.Book{Title: "Freebie", Author: "X", Price: 0}); !errors.Is(err, models.ErrBadRequest) {
		t.Errorf("zero price: got %v, want ErrBadRequest", err)
	}
	if _, err := bs.CreateBook(entities.Book{Id: "b5", Title: "Valid", Author: "X", Price: 3}); err != nil {
		t.Errorf("valid book: %v", err)
	}
}
