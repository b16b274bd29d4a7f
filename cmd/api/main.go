package main

import (
	"context"
	"log"

	"github.com/femisayo-autos/autoshop-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("autoshop API exited: %v", err)
	}
}
