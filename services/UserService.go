package services

import (
	"log"
	"sync"
	"time"

	"bookStore/models"
	"bookStore/repository"

	"github.com/google/uuid"
)

// SessionListener is notified after a user signs in (loggedIn=true) or
// their session is removed (loggedIn=false).
type SessionListener func(userId string, loggedIn bool)

type UserService struct {
	ur repository.UserRepository
	sr repository.SessionRepository

	mu        sync.Mutex
	listeners []SessionListener
}

func NewUserService(uRepo repository.UserRepository, sRepo repository.SessionRepository) *UserService {
	return &UserService{
		ur: uRepo,
		sr: sRepo,
	}
}

// Subscribe registers a listener for session changes. Dependents such
// as the badge counter cache use this instead of polling.
func (us *UserService) Subscribe(l SessionListener) {
	us.mu.Lock()
	defer us.mu.Unlock()
	us.listeners = append(us.listeners, l)
}

func (us *UserService) notify(userId string, loggedIn bool) {
	us.mu.Lock()
	listeners := make([]SessionListener, len(us.listeners))
	copy(listeners, us.listeners)
	us.mu.Unlock()
	for _, l := range listeners {
		l(userId, loggedIn)
	}
}

func (us *UserService) SignupRequest(creds models.Credentials) (uModel models.User_db, err error) {
	if creds.Email == "" || creds.Password == "" || creds.Name == "" {
		err = models.ErrBadRequest
		return
	}

	_, ex, err := us.ur.GetUserByEmail(creds.Email)
	if err != nil {
		return
	}
	if ex {
		log.Printf("SignupRequest: user already exists")
		err = models.ErrNotAllowed
		return
	}

	hashedPassword, err := us.ur.EncryptPassword(creds.Password)
	if err != nil {
		return
	}
	uModel = models.User_db{
		Id:        uuid.NewString(),
		Name:      creds.Name,
		Email:     creds.Email,
		Password:  hashedPassword,
		Role:      "user",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	uModel, err = us.ur.AddNewUser(uModel)
	return
}

func (us *UserService) SigninRequest(email, password string) (uModel models.User_db, sessionId string, err error) {
	uModel, ex, err := us.ur.GetUserByEmail(email)
	if err != nil {
		return
	}
	if !ex {
		log.Printf("user not found")
		err = models.ErrNotAllowed
		return
	}
	if !us.ur.VerifyPassword(uModel.Password, password) {
		log.Printf("wrong password")
		err = models.ErrUnautorized
		return
	}
	role := uModel.Role
	if role == "" {
		role = "user"
	}
	sessionId, err = us.sr.CreateSession(uModel.Id, role)
	if err == nil {
		us.notify(uModel.Id, true)
	}
	return
}

func (us *UserService) RefreshRequest(sessionId string) (err error) {
	err = us.sr.RefreshSession(sessionId, 30*time.Minute)
	return
}

func (us *UserService) DeleteSessionRequest(sessionId string) (err error) {
	userId, _, exists, _ := us.sr.GetUserSessionInfo(sessionId)
	err = us.sr.DeleteSession(sessionId)
	if err == nil && exists {
		us.notify(userId, false)
	}
	return
}

// CheckAuth reports whether the session exists. A missing, expired or
// unreadable session is simply "not logged in".
func (us *UserService) CheckAuth(sessionId string) (bool, error) {
	autorized, err := us.sr.CheckSession(sessionId)
	return autorized, err
}

// CheckAccess reports whether the session belongs to an administrator.
// The role lives server-side in the session record; the client never
// asserts it.
func (us *UserService) CheckAccess(sessionId string) (access bool, err error) {
	_, role, exists, e := us.sr.GetUserSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists || role != "admin" {
		return
	}
	access = true
	return
}

// CurrentUserId resolves the session to a user id.
func (us *UserService) CurrentUserId(sessionId string) (userId string, err error) {
	userId, _, exists, e := us.sr.GetUserSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists {
		err = models.ErrUnautorized
	}
	return
}

func (us *UserService) ProfileRequest(sessionId string) (data models.UserData, err error) {
	userId, err := us.CurrentUserId(sessionId)
	if err != nil {
		return
	}
	uModel, exists, err := us.ur.GetUserById(userId)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	data = PublicUser(uModel)
	return
}

func (us *UserService) UpdateAddressRequest(sessionId string, address string) (err error) {
	userId, err := us.CurrentUserId(sessionId)
	if err != nil {
		return
	}
	err = us.ur.UpdateAddress(userId, address)
	return
}

func PublicUser(uModel models.User_db) models.UserData {
	return models.UserData{
		Id:        uModel.Id,
		Name:      uModel.Name,
		Email:     uModel.Email,
		Address:   uModel.Address,
		Role:      uModel.Role,
		CreatedAt: uModel.CreatedAt,
	}
}
