package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/appdotbuilder/crm-manager/internal/model"
	"github.com/appdotbuilder/crm-manager/internal/router"
	"github.com/appdotbuilder/crm-manager/pkg/apperror"
	"github.com/appdotbuilder/crm-manager/pkg/config"
	"github.com/appdotbuilder/crm-manager/pkg/database"
	"github.com/appdotbuilder/crm-manager/pkg/seed"
)

func main() {
	cfg := config.Load()

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Lead{},
		&model.Customer{},
		&model.Project{},
		&model.Task{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	if cfg.SeedDemo {
		if err := seed.Run(database.GetDB()); err != nil {
			log.Printf("Seed warning: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "crm-manager",
		ErrorHandler: apperror.ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(cors.New())

	router.Setup(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
