package entities

import (
	"time"
)

// Collection kinds for the per-user Redis sequences.
const (
	KindCart  = "cart"
	KindSaved = "saved"
)

type Book struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

type Banner struct {
	Id       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image"`
}

// CartItem is a snapshot of a book taken at add time plus a quantity.
// Saved-for-later entries reuse the same shape with Qty omitted.
// Later catalog edits never propagate into existing items.
type CartItem struct {
	Book
	Qty int `json:"qty,omitempty"`
}

type CartResponse struct {
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
}

// Payment methods accepted at checkout.
const (
	PaymentCOD        = "cod"
	PaymentUPI        = "upi"
	PaymentCard       = "card"
	PaymentNetbanking = "netbanking"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Admin-settable order statuses, stored on the purchase record.
const (
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
)

type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Purchase struct {
	Id               string          `json:"id,omitempty"`
	OrderId          string          `json:"orderId"`
	UserId           string          `json:"userId"`
	Items            []CartItem      `json:"items"`
	TotalAmount      float64         `json:"totalAmount"`
	PurchaseDate     time.Time       `json:"purchaseDate"`
	PaymentStatus    string          `json:"paymentStatus"`
	PaymentMethod    string          `json:"paymentMethod"`
	DeliveryAddress  string          `json:"deliveryAddress"`
	CustomerDetails  CustomerDetails `json:"customerDetails"`
	OrderStatus      string          `json:"orderStatus,omitempty"`
	OrderUpdatedAt   *time.Time      `json:"orderUpdatedAt,omitempty"`
	OrderUpdatedBy   string          `json:"orderUpdatedBy,omitempty"`
	PaymentUpdatedAt *time.Time      `json:"paymentUpdatedAt,omitempty"`
	PaymentUpdatedBy string          `json:"paymentUpdatedBy,omitempty"`
}

// Stage is the resolved shopper-visible lifecycle position of a purchase.
type Stage int

const (
	StagePaymentPending Stage = iota
	StageConfirmed
	StageProcessing
	StageShipped
	StageDelivered
)

// StatusView is what order-history pages render for a purchase.
type StatusView struct {
	Stage      Stage   `json:"-"`
	Label      string  `json:"label"`
	StyleClass string  `json:"styleClass"`
	Progress   float64 `json:"progress"`
}

// PurchaseView pairs a purchase with its resolved status.
type PurchaseView struct {
	Purchase
	Status StatusView `json:"status"`
}

// UserPurchases is the admin user-detail row: a user joined with
// their purchase history.
type UserPurchases struct {
	Id         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Address    string     `json:"address,omitempty"`
	CreatedAt  string     `json:"createdAt,omitempty"`
	Purchases  []Purchase `json:"purchases"`
	TotalSpent float64    `json:"totalSpent"`
}
