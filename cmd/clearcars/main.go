// Command clearcars removes listings older than the retention window.
// It is meant to run from cron; running it twice in a row deletes nothing
// the second time.
package main

import (
	"log"

	"carsite-backend/config"
	"carsite-backend/repositories"
	"carsite-backend/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	db := config.InitDB()

	carRepo := repositories.NewCarRepository(db)
	carService := services.NewCarService(carRepo)

	count, err := carService.ClearOldCars()
	if err != nil {
		logger.Fatal("clear old cars", zap.Error(err))
	}

	logger.Info("old listings removed", zap.Int64("count", count))
}
