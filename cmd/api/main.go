package main

import (
	"context"
	"log"

	"github.com/Apurer/go-shop-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("shop API failed: %v", err)
	}
}
