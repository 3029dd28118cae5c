package main

import (
	"flag"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"skillcert/backend/config"
	"skillcert/backend/importer"
	"skillcert/backend/middleware"
	"skillcert/backend/routes"
	"skillcert/backend/utils"
)

func main() {
	importFile := flag.String("import", "", "import questions from an xlsx/csv file and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Side mode: seed the question bank and exit
	if *importFile != "" {
		result, err := importer.ImportQuestions(db, *importFile)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		log.Printf("Import finished: %d processed, %d created, %d skipped, %d errors",
			result.TotalProcessed, result.Created, result.Skipped, len(result.Errors))
		for _, e := range result.Errors {
			log.Println(e)
		}
		return
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, logger)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
