package main

import (
	"net/http"
	"os"
	"time"

	"example.com/storefront-cart/app/internal/interface/catalogstub"
	"example.com/storefront-cart/app/internal/logger"
)

func main() {
	log := logger.New(logger.Config{Env: getenv("APP_ENV", "development"), Level: "info"})

	path := getenv("DB_FILE", "server.json")
	db, err := catalogstub.LoadDB(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("load catalog fixture")
	}

	addr := ":" + getenv("PORT", "3333")
	srv := &http.Server{
		Addr:              addr,
		Handler:           catalogstub.New(db).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().
		Str("addr", addr).
		Int("products", len(db.Products)).
		Msg("catalog stub listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("catalog stub stopped")
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
