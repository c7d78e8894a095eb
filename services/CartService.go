package services

import (
	"log"
	"sync"

	"bookStore/entities"
	"bookStore/models"
	"bookStore/repository"
)

// MutationListener is notified with the user id after any cart or
// saved-for-later write for that user.
type MutationListener func(userId string)

// CartService owns the semantics of the per-user collections: snapshot
// adds, idempotent removes, the qty floor and the saved-to-cart move.
type CartService struct {
	br repository.BookRepository
	cr repository.CollectionRepository

	mu        sync.Mutex
	listeners []MutationListener
}

func NewCartService(bookRepo repository.BookRepository, collectionRepo repository.CollectionRepository) *CartService {
	return &CartService{
		br: bookRepo,
		cr: collectionRepo,
	}
}

func (cs *CartService) Subscribe(l MutationListener) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, l)
}

func (cs *CartService) notify(userId string) {
	cs.mu.Lock()
	listeners := make([]MutationListener, len(cs.listeners))
	copy(listeners, cs.listeners)
	cs.mu.Unlock()
	for _, l := range listeners {
		l(userId)
	}
}

// AddToCart snapshots the book into the user's cart with qty 1.
// Adding a book id that is already present leaves the cart unchanged
// and reports ErrAlreadyExists for the caller to surface.
func (cs *CartService) AddToCart(userId string, bookId string) (err error) {
	book, ex, e := cs.br.GetBookById(bookId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		log.Printf("AddToCart: book does not exist")
		err = models.ErrBadRequest
		return
	}

	items, e := cs.cr.GetCollection(entities.KindCart, userId)
	if e != nil {
		err = e
		return
	}
	for _, item := range items {
		if item.Id == bookId {
			err = models.ErrAlreadyExists
			return
		}
	}
	items = append(items, entities.CartItem{Book: book, Qty: 1})
	err = cs.cr.SetCollection(entities.KindCart, userId, items)
	if err == nil {
		cs.notify(userId)
	}
	return
}

// SaveForLater snapshots the book into the saved list. Same dedupe
// rule as the cart; saved entries carry no quantity.
func (cs *CartService) SaveForLater(userId string, bookId string) (err error) {
	book, ex, e := cs.br.GetBookById(bookId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		log.Printf("SaveForLater: book does not exist")
		err = models.ErrBadRequest
		return
	}

	items, e := cs.cr.GetCollection(entities.KindSaved, userId)
	if e != nil {
		err = e
		return
	}
	for _, item := range items {
		if item.Id == bookId {
			err = models.ErrAlreadyExists
			return
		}
	}
	items = append(items, entities.CartItem{Book: book})
	err = cs.cr.SetCollection(entities.KindSaved, userId, items)
	if err == nil {
		cs.notify(userId)
	}
	return
}

// RemoveItem filters the collection by book id. Removing an absent id
// is a no-op, not an error.
func (cs *CartService) RemoveItem(kind string, userId string, bookId string) (err error) {
	items, e := cs.cr.GetCollection(kind, userId)
	if e != nil {
		err = e
		return
	}
	kept := items[:0]
	for _, item := range items {
		if item.Id != bookId {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return
	}
	err = cs.cr.SetCollection(kind, userId, kept)
	if err == nil {
		cs.notify(userId)
	}
	return
}

// ChangeQty applies a quantity delta to a cart entry, clamped to a
// minimum of 1. Decrementing an entry at 1, or an unknown id, is a
// no-op.
func (cs *CartService) ChangeQty(userId string, bookId string, delta int) (err error) {
	items, e := cs.cr.GetCollection(entities.KindCart, userId)
	if e != nil {
		err = e
		return
	}
	changed := false
	for i, item := range items {
		if item.Id != bookId {
			continue
		}
		qty := item.Qty + delta
		if qty < 1 {
			qty = 1
		}
		if qty != item.Qty {
			items[i].Qty = qty
			changed = true
		}
		break
	}
	if !changed {
		return
	}
	err = cs.cr.SetCollection(entities.KindCart, userId, items)
	if err == nil {
		cs.notify(userId)
	}
	return
}

// MoveToCart transfers a saved item into the cart. The cart write
// happens first so a failure part-way never loses the item; if the
// book already sits in the cart the saved entry is simply dropped.
func (cs *CartService) MoveToCart(userId string, bookId string) (err error) {
	saved, e := cs.cr.GetCollection(entities.KindSaved, userId)
	if e != nil {
		err = e
		return
	}

	var found *entities.CartItem
	for i := range saved {
		if saved[i].Id == bookId {
			found = &saved[i]
			break
		}
	}
	if found == nil {
		err = models.ErrNotFoundError
		return
	}

	cart, e := cs.cr.GetCollection(entities.KindCart, userId)
	if e != nil {
		err = e
		return
	}
	inCart := false
	for _, item := range cart {
		if item.Id == bookId {
			inCart = true
			break
		}
	}
	if !inCart {
		moved := *found
		moved.Qty = 1
		cart = append(cart, moved)
		if err = cs.cr.SetCollection(entities.KindCart, userId, cart); err != nil {
			return
		}
	}

	kept := []entities.CartItem{}
	for _, item := range saved {
		if item.Id != bookId {
			kept = append(kept, item)
		}
	}
	err = cs.cr.SetCollection(entities.KindSaved, userId, kept)
	if err == nil {
		cs.notify(userId)
	}
	return
}

func (cs *CartService) GetCart(userId string) (resp entities.CartResponse, err error) {
	items, e := cs.cr.GetCollection(entities.KindCart, userId)
	if e != nil {
		err = e
		return
	}
	var totalPrice float64
	for _, item := range items {
		totalPrice = totalPrice + item.Price*float64(item.Qty)
	}
	resp = entities.CartResponse{
		Items:      items,
		TotalPrice: totalPrice,
	}
	return
}

func (cs *CartService) GetSaved(userId string) ([]entities.CartItem, error) {
	return cs.cr.GetCollection(entities.KindSaved, userId)
}

func (cs *CartService) ClearCart(userId string) (err error) {
	err = cs.cr.ClearCollection(entities.KindCart, userId)
	if err == nil {
		cs.notify(userId)
	}
	return
}

// Counts returns the badge numbers: entry counts, not quantity sums.
func (cs *CartService) Counts(userId string) (cartCount int, savedCount int, err error) {
	cart, e := cs.cr.GetCollection(entities.KindCart, userId)
	if e != nil {
		err = e
		return
	}
	saved, e := cs.cr.GetCollection(entities.KindSaved, userId)
	if e != nil {
		err = e
		return
	}
	cartCount = len(cart)
	savedCount = len(saved)
	return
}
