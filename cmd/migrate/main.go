// Schema migration runner.
// cmd/migrate/main.go
package main

import (
	"log"

	"lab-draft-api/config"
	"lab-draft-api/models"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	config.InitDB()

	err := config.DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Lab{},
		&models.Draft{},
		&models.StudentRanking{},
		&models.FacultyChoice{},
		&models.NotificationEvent{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Migration completed!")
}
