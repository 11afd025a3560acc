package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/buckneer/CheckMateV2/config"
	"github.com/buckneer/CheckMateV2/database"
	"github.com/buckneer/CheckMateV2/handlers"
	"github.com/buckneer/CheckMateV2/routes"
)

func main() {
	cfg := config.Load()

	// fail fast if the database is unreachable
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Validator = handlers.NewValidator()

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
