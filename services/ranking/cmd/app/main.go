package main

import (
	"rankings-admin/pkg/config"
	app "rankings-admin/services/ranking/internal/app"
)

//go:generate swag init --parseInternal -d ../.. -g cmd/app/main.go -o ../../docs

// @title           Rankings Admin API
// @version         1.0
// @description     Administration API for rankings and their ordered items

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey AdminToken
// @in header
// @name x-admin-token

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the login token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
