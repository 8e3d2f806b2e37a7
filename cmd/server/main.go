package main

import (
	"github.com/joho/godotenv"

	"hrpay/internal/app/server"
)

func main() {
	// Missing .env is fine; environment variables win either way.
	_ = godotenv.Load()
	server.Run()
}
