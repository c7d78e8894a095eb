package services

import (
	"errors"
	"strings"
	"testing"

	"bookStore/entities"
	"bookStore/models"
)

func checkoutFixture(t *testing.T) (*OrderService, *CartService, *fakePurchaseRepo, *fakeUserRepo, string) {
	t.Helper()

	sessions := newFakeSessionRepo()
	users := newFakeUserRepo(models.User_db{
		Id: "u1", Name: "Asha", Email: "asha@example.com", Address: "12 Old Lane", Role: "user",
	})
	purchases := &fakePurchaseRepo{}
	cs := NewCartService(newFakeBookRepo(testBooks()...), newFakeCollectionRepo())
	ors := NewOrderService(sessions, users, purchases, cs)

	sessionId, err := sessions.CreateSession("u1", "user")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return ors, cs, purchases, users, sessionId
}

func TestCheckoutEmptyCart(t *testing.T) {
	ors, _, purchases, _, sessionId := checkoutFixture(t)

	_, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentCOD,
	})
	if !errors.Is(err, models.ErrBadRequest) {
		t.Fatalf("got %v, want ErrBadRequest", err)
	}
	if len(purchases.purchases) != 0 {
		t.Fatal("empty-cart checkout reached the purchase store")
	}
}

func TestCheckoutBlankAddress(t *testing.T) {
	ors, cs, purchases, _, sessionId := checkoutFixture(t)
	cs.AddToCart("u1", "b1")

	_, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "   ", PaymentMethod: entities.PaymentUPI,
	})
	if !errors.Is(err, models.ErrBadRequest) {
		t.Fatalf("got %v, want ErrBadRequest", err)
	}
	if len(purchases.purchases) != 0 {
		t.Fatal("blank-address checkout reached the purchase store")
	}
	cart, _ := cs.GetCart("u1")
	if len(cart.Items) != 1 {
		t.Fatal("failed checkout emptied the cart")
	}
}

func TestCheckoutUnknownPaymentMethod(t *testing.T) {
	ors, cs, _, _, sessionId := checkoutFixture(t)
	cs.AddToCart("u1", "b1")

	_, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: "barter",
	})
	if !errors.Is(err, models.ErrBadRequest) {
		t.Fatalf("got %v, want ErrBadRequest", err)
	}
}

func TestCheckoutCOD(t *testing.T) {
	ors, cs, purchases, users, sessionId := checkoutFixture(t)
	cs.AddToCart("u1", "b1")
	cs.ChangeQty("u1", "b1", 1)
	cs.SaveForLater("u1", "b2")

	purchase, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "7 New Road", PaymentMethod: entities.PaymentCOD,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if !strings.HasPrefix(purchase.OrderId, "ORD_") {
		t.Errorf("got order id %q, want ORD_ prefix", purchase.OrderId)
	}
	if purchase.PaymentStatus != entities.PaymentPending {
		t.Errorf("got payment status %q, want pending for cod", purchase.PaymentStatus)
	}
	if purchase.TotalAmount != 25 {
		t.Errorf("got total %v, want 25", purchase.TotalAmount)
	}
	if purchase.CustomerDetails.Name != "Asha" || purchase.CustomerDetails.Email != "asha@example.com" {
		t.Errorf("got customer %+v", purchase.CustomerDetails)
	}
	if len(purchases.purchases) != 1 {
		t.Fatalf("got %d stored purchases, want 1", len(purchases.purchases))
	}

	// cart cleared, saved untouched, address updated
	cart, _ := cs.GetCart("u1")
	if len(cart.Items) != 0 {
		t.Errorf("cart not cleared: %+v", cart.Items)
	}
	saved, _ := cs.GetSaved("u1")
	if len(saved) != 1 {
		t.Errorf("saved list disturbed: %+v", saved)
	}
	if u, _, _ := users.GetUserById("u1"); u.Address != "7 New Road" {
		t.Errorf("got address %q, want 7 New Road", u.Address)
	}
}

func TestCheckoutPrepaidMarksPaid(t *testing.T) {
	ors, cs, _, users, sessionId := checkoutFixture(t)
	cs.AddToCart("u1", "b1")

	purchase, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentUPI,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if purchase.PaymentStatus != entities.PaymentPaid {
		t.Errorf("got payment status %q, want paid", purchase.PaymentStatus)
	}
	// unchanged address is not re-written
	if len(users.addressUpdates) != 0 {
		t.Errorf("unexpected address updates: %v", users.addressUpdates)
	}
}

func TestCheckoutOrderIdsUnique(t *testing.T) {
	ors, cs, _, _, sessionId := checkoutFixture(t)

	cs.AddToCart("u1", "b1")
	first, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentCOD,
	})
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	cs.AddToCart("u1", "b2")
	second, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentCOD,
	})
	if err != nil {
		t.Fatalf("second checkout: %v", err)
	}
	if first.OrderId == second.OrderId {
		t.Fatalf("order ids collide: %q", first.OrderId)
	}
}

func TestCheckoutRemoteFailureKeepsCart(t *testing.T) {
	ors, cs, purchases, _, sessionId := checkoutFixture(t)
	cs.AddToCart("u1", "b1")
	purchases.failCreate = true

	_, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentCard,
	})
	if err == nil {
		t.Fatal("expected error from remote create")
	}
	cart, _ := cs.GetCart("u1")
	if len(cart.Items) != 1 {
		t.Fatal("failed submit emptied the cart")
	}

	// an explicit retry succeeds
	purchases.failCreate = false
	if _, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentCard,
	}); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestCheckoutRejectsConcurrentSubmit(t *testing.T) {
	ors, cs, _, _, sessionId := checkoutFixture(t)
	cs.AddToCart("u1", "b1")

	// the cart-clear notification fires while the first submit still
	// holds the in-flight slot, so a reentrant attempt must bounce
	var second error
	fired := false
	cs.Subscribe(func(userId string) {
		if fired {
			return
		}
		fired = true
		_, second = ors.Checkout(sessionId, models.CheckoutRequest{
			DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentCOD,
		})
	})

	if _, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentCOD,
	}); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if !errors.Is(second, models.ErrCheckoutInFlight) {
		t.Fatalf("got %v, want ErrCheckoutInFlight", second)
	}
}

func TestCheckoutNoSession(t *testing.T) {
	ors, _, _, _, _ := checkoutFixture(t)

	_, err := ors.Checkout("stale-session", models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentCOD,
	})
	if !errors.Is(err, models.ErrUnautorized) {
		t.Fatalf("got %v, want ErrUnautorized", err)
	}
}

func TestGetCurrentUserOrdersResolvesStatus(t *testing.T) {
	ors, cs, _, _, sessionId := checkoutFixture(t)
	cs.AddToCart("u1", "b1")

	if _, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentCOD,
	}); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	orders, err := ors.GetCurrentUserOrders(sessionId)
	if err != nil {
		t.Fatalf("GetCurrentUserOrders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders))
	}
	// cod purchase is still payment pending
	if orders[0].Status.Label != "Payment Pending" {
		t.Errorf("got status %q, want Payment Pending", orders[0].Status.Label)
	}
}

func TestSetOrderStatusValidation(t *testing.T) {
	ors, cs, purchases, _, sessionId := checkoutFixture(t)
	cs.AddToCart("u1", "b1")
	created, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentCOD,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if err := ors.SetOrderStatus(created.Id, "teleported", "admin"); !errors.Is(err, models.ErrBadRequest) {
		t.Fatalf("got %v, want ErrBadRequest", err)
	}
	if err := ors.SetOrderStatus("missing", entities.OrderShipped, "admin"); !errors.Is(err, models.ErrNotFoundError) {
		t.Fatalf("got %v, want ErrNotFoundError", err)
	}
	if err := ors.SetOrderStatus(created.Id, entities.OrderShipped, "admin"); err != nil {
		t.Fatalf("SetOrderStatus: %v", err)
	}
	if p, _, _ := purchases.GetPurchaseById(created.Id); p.OrderStatus != entities.OrderShipped {
		t.Errorf("got order status %q, want shipped", p.OrderStatus)
	}
}

func TestSetPaymentStatusValidation(t *testing.T) {
	ors, cs, purchases, _, sessionId := checkoutFixture(t)
	cs.AddToCart("u1", "b1")
	created, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentCOD,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if err := ors.SetPaymentStatus(created.Id, "refunded", "admin"); !errors.Is(err, models.ErrBadRequest) {
		t.Fatalf("got %v, want ErrBadRequest", err)
	}
	if err := ors.SetPaymentStatus(created.Id, entities.PaymentPaid, "admin"); err != nil {
		t.Fatalf("SetPaymentStatus: %v", err)
	}
	if p, _, _ := purchases.GetPurchaseById(created.Id); p.PaymentStatus != entities.PaymentPaid {
		t.Errorf("got payment status %q, want paid", p.PaymentStatus)
	}
}

func TestGetUsersWithPurchases(t *testing.T) {
	ors, cs, _, users, sessionId := checkoutFixture(t)
	users.AddNewUser(models.User_db{Id: "u2", Name: "Ben", Email: "ben@example.com"})

	cs.AddToCart("u1", "b1")
	if _, err := ors.Checkout(sessionId, models.CheckoutRequest{
		DeliveryAddress: "12 Old Lane", PaymentMethod: entities.PaymentCOD,
	}); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	rows, err := ors.GetUsersWithPurchases()
	if err != nil {
		t.Fatalf("GetUsersWithPurchases: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for _, row := range rows {
		switch row.Id {
		case "u1":
			if len(row.Purchases) != 1 || row.TotalSpent != 12.5 {
				t.Errorf("u1 row: %+v", row)
			}
		case "u2":
			if row.Purchases == nil || len(row.Purchases) != 0 || row.TotalSpent != 0 {
				t.Errorf("u2 row: %+v", row)
			}
		}
	}
}
