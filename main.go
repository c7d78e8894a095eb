package main

import (
	"context"
	"log"
	"net/http"

	"bookStore/configs"
	"bookStore/handlers"
	"bookStore/repository"
	"bookStore/services"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()

	redisConn := redis.NewClient(&redis.Options{
		Addr: configs.EnvRedisAddr(),
	})
	if err := redisConn.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis connection err: %v", err)
	}

	store, err := repository.NewRemoteStore(configs.EnvStoreBaseURL())
	if err != nil {
		log.Fatalf("remote store err: %v", err)
	}

	sessionRepo, err := repository.NewSessionRepository(redisConn, ctx)
	if err != nil {
		log.Fatalf("session repository err: %v", err)
	}
	collectionRepo, err := repository.NewCollectionRepository(redisConn, ctx)
	if err != nil {
		log.Fatalf("collection repository err: %v", err)
	}
	userRepo, err := repository.NewUserRepository(store)
	if err != nil {
		log.Fatalf("user repository err: %v", err)
	}
	bookRepo, err := repository.NewBookRepository(store)
	if err != nil {
		log.Fatalf("book repository err: %v", err)
	}
	bannerRepo, err := repository.NewBannerRepository(store)
	if err != nil {
		log.Fatalf("banner repository err: %v", err)
	}
	purchaseRepo, err := repository.NewPurchaseRepository(store)
	if err != nil {
		log.Fatalf("purchase repository err: %v", err)
	}

	userService := services.NewUserService(userRepo, sessionRepo)
	bookService := services.NewBookService(bookRepo)
	bannerService := services.NewBannerService(bannerRepo)
	cartService := services.NewCartService(bookRepo, collectionRepo)
	counterService := services.NewCounterService(userService, cartService)
	orderService := services.NewOrderService(sessionRepo, userRepo, purchaseRepo, cartService)

	handler := handlers.NewHandler(handlers.HandlerParams{
		UsrService:     userService,
		BookService:    bookService,
		BannerService:  bannerService,
		CrtService:     cartService,
		CounterService: counterService,
		OrdService:     orderService,
	})

	router := mux.NewRouter()
	router.Use(handler.ErrorHandleMiddleware)

	router.HandleFunc("/", handler.Welcome).Methods("GET")
	router.HandleFunc("/users/signup", handler.Signup).Methods("POST")
	router.HandleFunc("/users/signin", handler.Signin).Methods("POST")
	router.HandleFunc("/books/categories", handler.GetCategories).Methods("GET")
	router.HandleFunc("/books", handler.GetBooks).Methods("GET")
	router.HandleFunc("/books/{id}", handler.GetBook).Methods("GET")
	router.HandleFunc("/banners", handler.GetBanners).Methods("GET")

	subAuth := router.NewRoute().Subrouter()
	subAuth.Use(handler.AuthMiddleware)
	subAuth.HandleFunc("/users/logout", handler.Logout).Methods("POST")
	subAuth.HandleFunc("/users/refresh", handler.Refresh).Methods("POST")
	subAuth.HandleFunc("/users/me", handler.Profile).Methods("GET")
	subAuth.HandleFunc("/users/address", handler.UpdateAddress).Methods("POST")
	subAuth.HandleFunc("/cart", handler.GetCart).Methods("GET")
	subAuth.HandleFunc("/cart", handler.AddToCart).Methods("POST")
	subAuth.HandleFunc("/cart", handler.RemoveFromCart).Methods("DELETE")
	subAuth.HandleFunc("/cart/qty", handler.ChangeQty).Methods("POST")
	subAuth.HandleFunc("/cart/checkout", handler.Checkout).Methods("POST")
	subAuth.HandleFunc("/cart/counts", handler.GetCounts).Methods("GET")
	subAuth.HandleFunc("/saved", handler.GetSaved).Methods("GET")
	subAuth.HandleFunc("/saved", handler.SaveForLater).Methods("POST")
	subAuth.HandleFunc("/saved", handler.RemoveFromSaved).Methods("DELETE")
	subAuth.HandleFunc("/saved/move", handler.MoveToCart).Methods("POST")
	subAuth.HandleFunc("/orders/", handler.GetCurrentUserOrders).Methods("GET")

	subAdmin := router.NewRoute().Subrouter()
	subAdmin.Use(handler.AdminAuthMiddleware)
	subAdmin.HandleFunc("/admin/books/create", handler.CreateBook).Methods("POST")
	subAdmin.HandleFunc("/admin/books/{id}/update", handler.UpdateBook).Methods("POST")
	subAdmin.HandleFunc("/admin/books/{id}/delete", handler.DeleteBook).Methods("DELETE")
	subAdmin.HandleFunc("/admin/banners/create", handler.CreateBanner).Methods("POST")
	subAdmin.HandleFunc("/admin/banners/{id}/update", handler.UpdateBanner).Methods("POST")
	subAdmin.HandleFunc("/admin/banners/{id}/delete", handler.DeleteBanner).Methods("DELETE")
	subAdmin.HandleFunc("/admin/users", handler.GetUsersWithPurchases).Methods("GET")
	subAdmin.HandleFunc("/admin/purchases", handler.GetAllPurchases).Methods("GET")
	subAdmin.HandleFunc("/admin/purchases/{id}/order-status", handler.SetOrderStatus).Methods("POST")
	subAdmin.HandleFunc("/admin/purchases/{id}/payment-status", handler.SetPaymentStatus).Methods("POST")

	addr := configs.EnvListenAddr()
	log.Printf("listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
