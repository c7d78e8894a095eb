package repository

import (
	"errors"
	"log"
	"net/url"

	"bookStore/models"

	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetUserById(id string) (models.User_db, bool, error)
	GetUserByEmail(email string) (models.User_db, bool, error)
	GetUsers() ([]models.User_db, error)
	AddNewUser(uModel models.User_db) (models.User_db, error)
	UpdateAddress(userId string, address string) error
	EncryptPassword(userPass string) (hashedPassword string, err error)
	VerifyPassword(hashedPassword string, sentPassword string) bool
}

type UserRepo struct {
	store *RemoteStore
}

func NewUserRepository(store *RemoteStore) (UserRepository, error) {
	if store == nil {
		return nil, errors.New("store must be non-nil")
	}
	return &UserRepo{store: store}, nil
}

func (u *UserRepo) GetUserById(id string) (uModel models.User_db, exists bool, err error) {
	err = u.store.Get("/users/"+id, &uModel)
	if err != nil {
		if errors.Is(err, models.ErrNotFoundError) {
			err = nil
		}
		return
	}
	exists = true
	return
}

func (u *UserRepo) GetUserByEmail(email string) (uModel models.User_db, exists bool, err error) {
	matches := []models.User_db{}
	err = u.store.Get("/users?email="+url.QueryEscape(email), &matches)
	if err != nil {
		return
	}
	if len(matches) == 0 {
		return
	}
	uModel = matches[0]
	exists = true
	return
}

func (u *UserRepo) GetUsers() (users []models.User_db, err error) {
	users = []models.User_db{}
	err = u.store.Get("/users", &users)
	return
}

func (u *UserRepo) AddNewUser(uModel models.User_db) (created models.User_db, err error) {
	err = u.store.Post("/users", uModel, &created)
	return
}

func (u *UserRepo) UpdateAddress(userId string, address string) error {
	patch := models.AddressData{Address: address}
	return u.store.Patch("/users/"+userId, patch, nil)
}

func (u *UserRepo) EncryptPassword(userPass string) (hashedPassword string, err error) {
	var password []byte
	password, err = bcrypt.GenerateFromPassword([]byte(userPass), 8)
	if err != nil {
		log.Printf("EncryptPassword: %v", err)
		err = models.ErrServerError
		return
	}
	hashedPassword = string(password)
	return
}

func (u *UserRepo) VerifyPassword(hashedPassword string, sentPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(sentPassword))
	if err != nil {
		log.Printf("VerifyPassword: %v", err)
	}
	return err == nil
}
