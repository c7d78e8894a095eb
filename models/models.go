package models

import (
	"errors"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnautorized = errors.New("unautorized")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")
var ErrAlreadyExists = errors.New("already exists")
var ErrCheckoutInFlight = errors.New("checkout already in progress")

type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddressData struct {
	Address string `json:"address"`
}

type CartRequest struct {
	BookId string `json:"bookId"`
}

type QtyRequest struct {
	BookId string `json:"bookId"`
	Delta  int    `json:"delta"`
}

type CheckoutRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

// User_db is the raw user record as stored in the remote users
// collection. Never sent to clients; see UserData.
type User_db struct {
	Id        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// UserData is the public view of a user, password stripped.
type UserData struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Address   string `json:"address,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type CountsResponse struct {
	CartCount  int `json:"cartCount"`
	SavedCount int `json:"savedCount"`
}
