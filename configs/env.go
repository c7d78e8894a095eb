package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
}

func EnvListenAddr() string {
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return addr
}

func EnvRedisAddr() string {
	host := os.Getenv("REDIS_HOST")
	port := os.Getenv("REDIS_PORT")
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}
	return host + ":" + port
}

// EnvStoreBaseURL is the base URL of the remote JSON resource store
// (books, banners, users, purchases collections).
func EnvStoreBaseURL() string {
	base := os.Getenv("STORE_BASE_URL")
	if base == "" {
		log.Fatal("STORE_BASE_URL is not set")
	}
	return base
}
