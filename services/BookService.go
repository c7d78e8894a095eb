package services

import (
	"strings"

	"bookStore/entities"
	"bookStore/models"
	"bookStore/repository"
)

type BookService struct {
	br repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) *BookService {
	return &BookService{br: bookRepo}
}

// GetBooks lists the catalog, filtered in memory the way the browse
// page does: category "all" (or empty) passes everything, search
// matches the title case-insensitively.
func (bs *BookService) GetBooks(category string, search string) (books []entities.Book, err error) {
	all, e := bs.br.GetBooks()
	if e != nil {
		err = e
		return
	}

	category = strings.TrimSpace(category)
	search = strings.ToLower(strings.TrimSpace(search))
	books = []entities.Book{}
	for _, book := range all {
		if category != "" && category != "all" && strings.TrimSpace(book.Category) != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(book.Title), search) {
			continue
		}
		books = append(books, book)
	}
	return
}

func (bs *BookService) GetBookById(id string) (book entities.Book, err error) {
	book, exists, err := bs.br.GetBookById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
	}
	return
}

// Categories derives the distinct category set from the catalog; there
// is no separate categories collection.
func (bs *BookService) Categories() (categories []string, err error) {
	books, e := bs.br.GetBooks()
	if e != nil {
		err = e
		return
	}
	seen := map[string]bool{}
	categories = []string{}
	for _, book := range books {
		cat := strings.TrimSpace(book.Category)
		if cat == "" || seen[cat] {
			continue
		}
		seen[cat] = true
		categories = append(categories, cat)
	}
	return
}

func (bs *BookService) CreateBook(book entities.Book) (entities.Book, error) {
	if book.Title == "" || book.Author == "" || book.Price <= 0 {
		return entities.Book{}, models.ErrBadRequest
	}
	return bs.br.CreateBook(book)
}

func (bs *BookService) UpdateBook(id string, book entities.Book) error {
	if book.Title == "" || book.Author == "" || book.Price <= 0 {
		return models.ErrBadRequest
	}
	return bs.br.UpdateBook(id, book)
}

func (bs *BookService) DeleteBook(id string) error {
	return bs.br.DeleteBook(id)
}
