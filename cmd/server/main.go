package main

import (
	"fmt"
	"log"
	"net/http"

	handler "compliance-hub-backend/api"
	"compliance-hub-backend/pkg/config"
)

func main() {
	cfg := config.GetCached()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	addr := ":" + cfg.Port
	fmt.Printf("🚀 compliance-hub-backend listening on %s (%s)\n", addr, cfg.Environment)

	if err := http.ListenAndServe(addr, http.HandlerFunc(handler.Handler)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
