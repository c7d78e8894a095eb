package repository

import (
	"errors"

	"bookStore/entities"
	"bookStore/models"
)

type BookRepository interface {
	GetBooks() ([]entities.Book, error)
	GetBookById(id string) (entities.Book, bool, error)
	CreateBook(book entities.Book) (entities.Book, error)
	UpdateBook(id string, book entities.Book) error
	DeleteBook(id string) error
}

type BookRepo struct {
	store *RemoteStore
}

func NewBookRepository(store *RemoteStore) (BookRepository, error) {
	if store == nil {
		return nil, errors.New("store must be non-nil")
	}
	return &BookRepo{store: store}, nil
}

func (b *BookRepo) GetBooks() (books []entities.Book, err error) {
	books = []entities.Book{}
	err = b.store.Get("/books", &books)
	return
}

func (b *BookRepo) GetBookById(id string) (book entities.Book, exists bool, err error) {
	err = b.store.Get("/books/"+id, &book)
	if err != nil {
		if errors.Is(err, models.ErrNotFoundError) {
			err = nil
		}
		return
	}
	exists = true
	return
}

func (b *BookRepo) CreateBook(book entities.Book) (created entities.Book, err error) {
	err = b.store.Post("/books", book, &created)
	return
}

func (b *BookRepo) UpdateBook(id string, book entities.Book) error {
	book.Id = id
	return b.store.Put("/books/"+id, book, nil)
}

func (b *BookRepo) DeleteBook(id string) error {
	return b.store.Delete("/books/" + id)
}
