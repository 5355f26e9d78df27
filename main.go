package main

import (
	"log/slog"
	"os"

	"wtfSocial/crud"
	"wtfSocial/http"
	"wtfSocial/storage"
)

// main is the app's entry point.
func main() {
	// Load configuration from the environment (and a .env file in dev).
	config, err := LoadConfig()
	must(err)

	// Structured logs: JSON in production, text in development.
	if config.IsProd() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	}

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err = Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.Pepper),
		crud.WithProfile(),
		crud.WithTag(),
		crud.WithPost(),
		crud.WithFollow(),
		crud.WithToken(config.JWTSecret, config.AccessTTL, config.RefreshTTL),
	)
	must(err)

	// Set up a webserver and serve the app.
	server := http.NewServer(services, storage.NewImageService())
	server.Run(config.Port)
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
