package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"bookStore/entities"
	"bookStore/models"
	"bookStore/services"

	"github.com/gorilla/mux"
)

type Handler struct {
	us  *services.UserService
	bs  *services.BookService
	bns *services.BannerService
	cs  *services.CartService
	cts *services.CounterService
	ors *services.OrderService
}

type HandlerParams struct {
	UsrService     *services.UserService
	BookService    *services.BookService
	BannerService  *services.BannerService
	CrtService     *services.CartService
	CounterService *services.CounterService
	OrdService     *services.OrderService
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		us:  params.UsrService,
		bs:  params.BookService,
		bns: params.BannerService,
		cs:  params.CrtService,
		cts: params.CounterService,
		ors: params.OrdService,
	}
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	name := "guest"
	if c, err := r.Cookie("sessionId"); err == nil {
		if data, e := h.us.ProfileRequest(c.Value); e == nil {
			name = data.Name
		}
	}
	w.Write([]byte("Hello, " + name + "!"))
}

// user

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	uModel, err := h.us.SignupRequest(creds)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, services.PublicUser(uModel))
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}

	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	uModel, sessionId, err := h.us.SigninRequest(creds.Email, creds.Password)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "sessionId",
		Value:    sessionId,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		// redis 30 min
	})
	writeJSON(w, services.PublicUser(uModel))
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	sessionId := c.Value
	err := h.us.RefreshRequest(sessionId)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "sessionId",
		Value:    sessionId,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	sessionId := c.Value

	err := h.us.DeleteSessionRequest(sessionId)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   "",
		Path:    "/",
		Expires: time.Now(),
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")

	data, err := h.us.ProfileRequest(c.Value)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, data)
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")

	data := models.AddressData{}
	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err = h.us.UpdateAddressRequest(c.Value, data.Address)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// books

func (h *Handler) GetBooks(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	books, err := h.bs.GetBooks(category, search)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, books)
}

func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	book, err := h.bs.GetBookById(vars["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, book)
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.bs.Categories()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, categories)
}

func (h *Handler) GetBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.bns.GetBanners()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, banners)
}

// cart / saved

func (h *Handler) currentUserId(w http.ResponseWriter, r *http.Request) (string, bool) {
	c, _ := r.Cookie("sessionId")
	userId, err := h.us.CurrentUserId(c.Value)
	if err != nil {
		WriteErrorResponse(w, err)
		return "", false
	}
	return userId, true
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userId, ok := h.currentUserId(w, r)
	if !ok {
		return
	}
	resp, err := h.cs.GetCart(userId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userId, ok := h.currentUserId(w, r)
	if !ok {
		return
	}
	req := models.CartRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.cs.AddToCart(userId, req.BookId); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userId, ok := h.currentUserId(w, r)
	if !ok {
		return
	}
	req := models.CartRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.cs.RemoveItem(entities.KindCart, userId, req.BookId); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ChangeQty(w http.ResponseWriter, r *http.Request) {
	userId, ok := h.currentUserId(w, r)
	if !ok {
		return
	}
	req := models.QtyRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Delta == 0 {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.cs.ChangeQty(userId, req.BookId, req.Delta); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetSaved(w http.ResponseWriter, r *http.Request) {
	userId, ok := h.currentUserId(w, r)
	if !ok {
		return
	}
	items, err := h.cs.GetSaved(userId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, items)
}

func (h *Handler) SaveForLater(w http.ResponseWriter, r *http.Request) {
	userId, ok := h.currentUserId(w, r)
	if !ok {
		return
	}
	req := models.CartRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.cs.SaveForLater(userId, req.BookId); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) RemoveFromSaved(w http.ResponseWriter, r *http.Request) {
	userId, ok := h.currentUserId(w, r)
	if !ok {
		return
	}
	req := models.CartRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.cs.RemoveItem(entities.KindSaved, userId, req.BookId); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	userId, ok := h.currentUserId(w, r)
	if !ok {
		return
	}
	req := models.CartRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.cs.MoveToCart(userId, req.BookId); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetCounts(w http.ResponseWriter, r *http.Request) {
	userId, ok := h.currentUserId(w, r)
	if !ok {
		return
	}
	cartCount, savedCount, err := h.cts.Counts(userId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, models.CountsResponse{CartCount: cartCount, SavedCount: savedCount})
}

// orders

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")

	req := models.CheckoutRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	purchase, err := h.ors.Checkout(c.Value, req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, purchase)
}

func (h *Handler) GetCurrentUserOrders(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")

	orders, err := h.ors.GetCurrentUserOrders(c.Value)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, orders)
}

// admin

func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var book entities.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	created, err := h.bs.CreateBook(book)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, created)
}

func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var book entities.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.bs.UpdateBook(vars["id"], book); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.bs.DeleteBook(vars["id"]); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var banner entities.Banner
	if err := json.NewDecoder(r.Body).Decode(&banner); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	created, err := h.bns.CreateBanner(banner)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, created)
}

func (h *Handler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var banner entities.Banner
	if err := json.NewDecoder(r.Body).Decode(&banner); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.bns.UpdateBanner(vars["id"], banner); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.bns.DeleteBanner(vars["id"]); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetUsersWithPurchases(w http.ResponseWriter, r *http.Request) {
	rows, err := h.ors.GetUsersWithPurchases()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, rows)
}

func (h *Handler) GetAllPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.ors.GetAllPurchases()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, purchases)
}

func (h *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var status models.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&status); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := h.ors.SetOrderStatus(vars["id"], status.Status, "admin"); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var status models.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&status); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := h.ors.SetPaymentStatus(vars["id"], status.Status, "admin"); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// middleware

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, e := h.us.CheckAuth(sessionId.Value)
		if !ok {
			if e != nil {
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, err := h.us.CheckAccess(sessionId.Value)
		if !ok {
			if err != nil {
				log.Printf("CheckAccess: %v", err)
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic occured: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Marshal err:%v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonData)
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrServerError):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	case errors.Is(err, models.ErrUnautorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFoundError):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, err.Error(), http.StatusNotAcceptable)
	case errors.Is(err, models.ErrAlreadyExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrCheckoutInFlight):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
