package services

import (
	"log"
	"strings"
	"sync"
	"time"

	"bookStore/entities"
	"bookStore/models"
	"bookStore/repository"

	"github.com/google/uuid"
)

type OrderService struct {
	sr repository.SessionRepository
	ur repository.UserRepository
	pr repository.PurchaseRepository
	cs *CartService

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewOrderService(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, purchaseRepo repository.PurchaseRepository, cartService *CartService) *OrderService {
	return &OrderService{
		sr:       sessionRepo,
		ur:       userRepo,
		pr:       purchaseRepo,
		cs:       cartService,
		inFlight: make(map[string]bool),
	}
}

// checkout walks Idle -> AddressCollected -> Submitting and ends in
// Confirmed or Failed. A failed submit leaves the cart untouched and
// is retried only by an explicit new request.
type checkoutState int

const (
	checkoutIdle checkoutState = iota
	checkoutAddressCollected
	checkoutSubmitting
	checkoutConfirmed
	checkoutFailed
)

type checkout struct {
	state   checkoutState
	user    models.User_db
	items   []entities.CartItem
	total   float64
	address string
	method  string
}

// collectAddress guards the Idle -> AddressCollected transition: a
// non-empty cart, a non-blank delivery address and a known payment
// method are all required before anything is submitted.
func (c *checkout) collectAddress(address string, method string) error {
	if c.state != checkoutIdle {
		return models.ErrNotAllowed
	}
	if len(c.items) == 0 {
		log.Printf("checkout: cart is empty")
		return models.ErrBadRequest
	}
	address = strings.TrimSpace(address)
	if address == "" {
		log.Printf("checkout: no delivery address")
		return models.ErrBadRequest
	}
	switch method {
	case entities.PaymentCOD, entities.PaymentUPI, entities.PaymentCard, entities.PaymentNetbanking:
	default:
		log.Printf("checkout: unknown payment method %q", method)
		return models.ErrBadRequest
	}
	c.address = address
	c.method = method
	c.state = checkoutAddressCollected
	return nil
}

// buildPurchase moves into Submitting and assembles the record that
// goes to the remote store. Order ids are collision-resistant; the
// timestamp-token scheme of old invited double-submit collisions.
func (c *checkout) buildPurchase(now time.Time) (entities.Purchase, error) {
	if c.state != checkoutAddressCollected {
		return entities.Purchase{}, models.ErrNotAllowed
	}
	c.state = checkoutSubmitting

	paymentStatus := entities.PaymentPaid
	if c.method == entities.PaymentCOD {
		paymentStatus = entities.PaymentPending
	}
	return entities.Purchase{
		OrderId:         "ORD_" + uuid.NewString(),
		UserId:          c.user.Id,
		Items:           c.items,
		TotalAmount:     c.total,
		PurchaseDate:    now,
		PaymentStatus:   paymentStatus,
		PaymentMethod:   c.method,
		DeliveryAddress: c.address,
		CustomerDetails: entities.CustomerDetails{
			Name:  c.user.Name,
			Email: c.user.Email,
		},
	}, nil
}

func (c *checkout) fail()    { c.state = checkoutFailed }
func (c *checkout) confirm() { c.state = checkoutConfirmed }

// Checkout runs the whole orchestration for the session's user. While
// one submission is in flight any further checkout for the same user
// is rejected, which bounds the double-submit window the transport
// cannot close on its own.
func (ors *OrderService) Checkout(sessionId string, req models.CheckoutRequest) (purchase entities.Purchase, err error) {
	userId, _, exists, e := ors.sr.GetUserSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists {
		err = models.ErrUnautorized
		return
	}

	ors.mu.Lock()
	if ors.inFlight[userId] {
		ors.mu.Unlock()
		err = models.ErrCheckoutInFlight
		return
	}
	ors.inFlight[userId] = true
	ors.mu.Unlock()
	defer func() {
		ors.mu.Lock()
		delete(ors.inFlight, userId)
		ors.mu.Unlock()
	}()

	user, ex, e := ors.ur.GetUserById(userId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrUnautorized
		return
	}

	cart, e := ors.cs.GetCart(userId)
	if e != nil {
		err = e
		return
	}

	co := checkout{
		user:  user,
		items: cart.Items,
		total: cart.TotalPrice,
	}
	if err = co.collectAddress(req.DeliveryAddress, req.PaymentMethod); err != nil {
		return
	}

	purchase, err = co.buildPurchase(time.Now().UTC())
	if err != nil {
		return
	}
	created, e := ors.pr.CreatePurchase(purchase)
	if e != nil {
		// remote create failed: cart stays as it was, the shopper retries
		co.fail()
		err = e
		return
	}
	purchase = created

	if co.address != user.Address {
		if e := ors.ur.UpdateAddress(userId, co.address); e != nil {
			log.Printf("Checkout: address update failed: %v", e)
		}
	}
	if e := ors.cs.ClearCart(userId); e != nil {
		log.Printf("Checkout: cart clear failed: %v", e)
	}
	co.confirm()
	return
}

// GetCurrentUserOrders returns the session user's purchase history,
// newest data as stored, each with its resolved status attached.
func (ors *OrderService) GetCurrentUserOrders(sessionId string) (orders []entities.PurchaseView, err error) {
	userId, _, exists, e := ors.sr.GetUserSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists {
		err = models.ErrUnautorized
		return
	}

	purchases, e := ors.pr.GetPurchasesByUser(userId)
	if e != nil {
		err = e
		return
	}
	now := time.Now().UTC()
	orders = []entities.PurchaseView{}
	for _, p := range purchases {
		orders = append(orders, entities.PurchaseView{
			Purchase: p,
			Status:   ResolveOrderStatus(p, now),
		})
	}
	return
}

func (ors *OrderService) GetAllPurchases() ([]entities.Purchase, error) {
	return ors.pr.GetPurchases()
}

// GetUsersWithPurchases is the admin user-detail view: every user
// joined with their purchases and total spend.
func (ors *OrderService) GetUsersWithPurchases() (rows []entities.UserPurchases, err error) {
	users, e := ors.ur.GetUsers()
	if e != nil {
		err = e
		return
	}
	purchases, e := ors.pr.GetPurchases()
	if e != nil {
		err = e
		return
	}

	byUser := map[string][]entities.Purchase{}
	for _, p := range purchases {
		byUser[p.UserId] = append(byUser[p.UserId], p)
	}

	rows = []entities.UserPurchases{}
	for _, u := range users {
		row := entities.UserPurchases{
			Id:        u.Id,
			Name:      u.Name,
			Email:     u.Email,
			Address:   u.Address,
			CreatedAt: u.CreatedAt,
			Purchases: byUser[u.Id],
		}
		if row.Purchases == nil {
			row.Purchases = []entities.Purchase{}
		}
		for _, p := range row.Purchases {
			row.TotalSpent += p.TotalAmount
		}
		rows = append(rows, row)
	}
	return
}

func (ors *OrderService) SetOrderStatus(purchaseId string, status string, updatedBy string) (err error) {
	switch status {
	case entities.OrderConfirmed, entities.OrderProcessing, entities.OrderShipped, entities.OrderDelivered:
	default:
		err = models.ErrBadRequest
		return
	}
	_, exists, e := ors.pr.GetPurchaseById(purchaseId)
	if e != nil {
		err = e
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	err = ors.pr.SetOrderStatus(purchaseId, status, updatedBy)
	return
}

func (ors *OrderService) SetPaymentStatus(purchaseId string, status string, updatedBy string) (err error) {
	if status != entities.PaymentPending && status != entities.PaymentPaid {
		err = models.ErrBadRequest
		return
	}
	_, exists, e := ors.pr.GetPurchaseById(purchaseId)
	if e != nil {
		err = e
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	err = ors.pr.SetPaymentStatus(purchaseId, status, updatedBy)
	return
}
