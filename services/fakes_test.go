package services

import (
	"errors"
	"time"

	"bookStore/entities"
	"bookStore/models"
)

var errFake = errors.New("fake failure")

type fakeBookRepo struct {
	books []entities.Book
}

func newFakeBookRepo(books ...entities.Book) *fakeBookRepo {
	return &fakeBookRepo{books: books}
}

func (f *fakeBookRepo) GetBooks() ([]entities.Book, error) {
	return append([]entities.Book{}, f.books...), nil
}

func (f *fakeBookRepo) GetBookById(id string) (entities.Book, bool, error) {
	for _, b := range f.books {
		if b.Id == id {
			return b, true, nil
		}
	}
	return entities.Book{}, false, nil
}

func (f *fakeBookRepo) CreateBook(book entities.Book) (entities.Book, error) {
	f.books = append(f.books, book)
	return book, nil
}

func (f *fakeBookRepo) UpdateBook(id string, book entities.Book) error {
	for i := range f.books {
		if f.books[i].Id == id {
			book.Id = id
			f.books[i] = book
			return nil
		}
	}
	return models.ErrNotFoundError
}

func (f *fakeBookRepo) DeleteBook(id string) error {
	kept := f.books[:0]
	for _, b := range f.books {
		if b.Id != id {
			kept = append(kept, b)
		}
	}
	f.books = kept
	return nil
}

type fakeCollectionRepo struct {
	data     map[string][]entities.CartItem
	failSet  map[string]bool // kind -> next SetCollection fails
	setCalls int
}

func newFakeCollectionRepo() *fakeCollectionRepo {
	return &fakeCollectionRepo{
		data:    map[string][]entities.CartItem{},
		failSet: map[string]bool{},
	}
}

func (f *fakeCollectionRepo) key(kind, userId string) string { return kind + "_" + userId }

func (f *fakeCollectionRepo) GetCollection(kind string, userId string) ([]entities.CartItem, error) {
	items := f.data[f.key(kind, userId)]
	out := make([]entities.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (f *fakeCollectionRepo) SetCollection(kind string, userId string, items []entities.CartItem) error {
	f.setCalls++
	if f.failSet[kind] {
		f.failSet[kind] = false
		return errFake
	}
	stored := make([]entities.CartItem, len(items))
	copy(stored, items)
	f.data[f.key(kind, userId)] = stored
	return nil
}

func (f *fakeCollectionRepo) ClearCollection(kind string, userId string) error {
	delete(f.data, f.key(kind, userId))
	return nil
}

type sessionInfo struct {
	userId string
	role   string
}

type fakeSessionRepo struct {
	sessions map[string]sessionInfo
	nextId   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]sessionInfo{}}
}

func (f *fakeSessionRepo) CreateSession(userId string, role string) (string, error) {
	f.nextId++
	id := "session-" + userId
	f.sessions[id] = sessionInfo{userId: userId, role: role}
	return id, nil
}

func (f *fakeSessionRepo) CheckSession(sessionId string) (bool, error) {
	_, ok := f.sessions[sessionId]
	return ok, nil
}

func (f *fakeSessionRepo) DeleteSession(sessionId string) error {
	delete(f.sessions, sessionId)
	return nil
}

func (f *fakeSessionRepo) RefreshSession(sessionId string, _ time.Duration) error {
	if _, ok := f.sessions[sessionId]; !ok {
		return errFake
	}
	return nil
}

func (f *fakeSessionRepo) GetUserSessionInfo(sessionId string) (string, string, bool, error) {
	s, ok := f.sessions[sessionId]
	return s.userId, s.role, ok, nil
}

type fakeUserRepo struct {
	users          map[string]models.User_db
	addressUpdates []string
}

func newFakeUserRepo(users ...models.User_db) *fakeUserRepo {
	f := &fakeUserRepo{users: map[string]models.User_db{}}
	for _, u := range users {
		f.users[u.Id] = u
	}
	return f
}

func (f *fakeUserRepo) GetUserById(id string) (models.User_db, bool, error) {
	u, ok := f.users[id]
	return u, ok, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (models.User_db, bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return models.User_db{}, false, nil
}

func (f *fakeUserRepo) GetUsers() ([]models.User_db, error) {
	out := []models.User_db{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) AddNewUser(uModel models.User_db) (models.User_db, error) {
	f.users[uModel.Id] = uModel
	return uModel, nil
}

func (f *fakeUserRepo) UpdateAddress(userId string, address string) error {
	u := f.users[userId]
	u.Address = address
	f.users[userId] = u
	f.addressUpdates = append(f.addressUpdates, userId)
	return nil
}

func (f *fakeUserRepo) EncryptPassword(userPass string) (string, error) {
	return "hashed:" + userPass, nil
}

func (f *fakeUserRepo) VerifyPassword(hashedPassword string, sentPassword string) bool {
	return hashedPassword == "hashed:"+sentPassword
}

type fakePurchaseRepo struct {
	purchases  []entities.Purchase
	failCreate bool
}

func (f *fakePurchaseRepo) CreatePurchase(p entities.Purchase) (entities.Purchase, error) {
	if f.failCreate {
		return entities.Purchase{}, models.ErrServerError
	}
	p.Id = p.OrderId
	f.purchases = append(f.purchases, p)
	return p, nil
}

func (f *fakePurchaseRepo) GetPurchases() ([]entities.Purchase, error) {
	return append([]entities.Purchase{}, f.purchases...), nil
}

func (f *fakePurchaseRepo) GetPurchasesByUser(userId string) ([]entities.Purchase, error) {
	out := []entities.Purchase{}
	for _, p := range f.purchases {
		if p.UserId == userId {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) GetPurchaseById(id string) (entities.Purchase, bool, error) {
	for _, p := range f.purchases {
		if p.Id == id {
			return p, true, nil
		}
	}
	return entities.Purchase{}, false, nil
}

func (f *fakePurchaseRepo) SetOrderStatus(id string, status string, updatedBy string) error {
	for i := range f.purchases {
		if f.purchases[i].Id == id {
			f.purchases[i].OrderStatus = status
			f.purchases[i].OrderUpdatedBy = updatedBy
			return nil
		}
	}
	return models.ErrNotFoundError
}

func (f *fakePurchaseRepo) SetPaymentStatus(id string, status string, updatedBy string) error {
	for i := range f.purchases {
		if f.purchases[i].Id == id {
			f.purchases[i].PaymentStatus = status
			f.purchases[i].PaymentUpdatedBy = updatedBy
			return nil
		}
	}
	return models.ErrNotFoundError
}
