package services

import (
	"sync"
)

// CounterService caches the cart/saved badge counts per user. It is a
// subscriber of the session and cart mutation events: a logout zeroes
// the entry, any collection write invalidates it. Reads fall through
// to CartService on a miss.
type CounterService struct {
	cs *CartService

	mu    sync.RWMutex
	cache map[string][2]int
}

func NewCounterService(userService *UserService, cartService *CartService) *CounterService {
	counter := &CounterService{
		cs:    cartService,
		cache: make(map[string][2]int),
	}
	userService.Subscribe(func(userId string, loggedIn bool) {
		counter.mu.Lock()
		defer counter.mu.Unlock()
		if loggedIn {
			delete(counter.cache, userId)
		} else {
			counter.cache[userId] = [2]int{0, 0}
		}
	})
	cartService.Subscribe(func(userId string) {
		counter.mu.Lock()
		defer counter.mu.Unlock()
		delete(counter.cache, userId)
	})
	return counter
}

func (c *CounterService) Counts(userId string) (cartCount int, savedCount int, err error) {
	c.mu.RLock()
	counts, ok := c.cache[userId]
	c.mu.RUnlock()
	if ok {
		return counts[0], counts[1], nil
	}

	cartCount, savedCount, err = c.cs.Counts(userId)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.cache[userId] = [2]int{cartCount, savedCount}
	c.mu.Unlock()
	return
}
