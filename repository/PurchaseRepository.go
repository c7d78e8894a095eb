package repository

import (
	"errors"
	"net/url"
	"time"

	"bookStore/entities"
	"bookStore/models"
)

type PurchaseRepository interface {
	CreatePurchase(p entities.Purchase) (entities.Purchase, error)
	GetPurchases() ([]entities.Purchase, error)
	GetPurchasesByUser(userId string) ([]entities.Purchase, error)
	GetPurchaseById(id string) (entities.Purchase, bool, error)
	SetOrderStatus(id string, status string, updatedBy string) error
	SetPaymentStatus(id string, status string, updatedBy string) error
}

type PurchaseRepo struct {
	store *RemoteStore
}

func NewPurchaseRepository(store *RemoteStore) (PurchaseRepository, error) {
	if store == nil {
		return nil, errors.New("store must be non-nil")
	}
	return &PurchaseRepo{store: store}, nil
}

func (p *PurchaseRepo) CreatePurchase(purchase entities.Purchase) (created entities.Purchase, err error) {
	err = p.store.Post("/purchases", purchase, &created)
	return
}

func (p *PurchaseRepo) GetPurchases() (purchases []entities.Purchase, err error) {
	purchases = []entities.Purchase{}
	err = p.store.Get("/purchases", &purchases)
	return
}

func (p *PurchaseRepo) GetPurchasesByUser(userId string) (purchases []entities.Purchase, err error) {
	purchases = []entities.Purchase{}
	err = p.store.Get("/purchases?userId="+url.QueryEscape(userId), &purchases)
	return
}

func (p *PurchaseRepo) GetPurchaseById(id string) (purchase entities.Purchase, exists bool, err error) {
	err = p.store.Get("/purchases/"+id, &purchase)
	if err != nil {
		if errors.Is(err, models.ErrNotFoundError) {
			err = nil
		}
		return
	}
	exists = true
	return
}

type orderStatusPatch struct {
	OrderStatus    string    `json:"orderStatus"`
	OrderUpdatedAt time.Time `json:"orderUpdatedAt"`
	OrderUpdatedBy string    `json:"orderUpdatedBy"`
}

func (p *PurchaseRepo) SetOrderStatus(id string, status string, updatedBy string) error {
	patch := orderStatusPatch{
		OrderStatus:    status,
		OrderUpdatedAt: time.Now().UTC(),
		OrderUpdatedBy: updatedBy,
	}
	return p.store.Patch("/purchases/"+id, patch, nil)
}

type paymentStatusPatch struct {
	PaymentStatus    string    `json:"paymentStatus"`
	PaymentUpdatedAt time.Time `json:"paymentUpdatedAt"`
	PaymentUpdatedBy string    `json:"paymentUpdatedBy"`
}

func (p *PurchaseRepo) SetPaymentStatus(id string, status string, updatedBy string) error {
	patch := paymentStatusPatch{
		PaymentStatus:    status,
		PaymentUpdatedAt: time.Now().UTC(),
		PaymentUpdatedBy: updatedBy,
	}
	return p.store.Patch("/purchases/"+id, patch, nil)
}
