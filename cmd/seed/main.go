// Provisioning tool: roles, an admin account, and demo labs.
// cmd/seed/main.go
package main

import (
	"log"
	"os"
	"time"

	"lab-draft-api/config"
	"lab-draft-api/models"
	"lab-draft-api/utils"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	config.InitDB()

	now := time.Now()

	roles := []models.Role{
		{RoleID: models.RoleStudent, Role: "student", CreateAt: &now},
		{RoleID: models.RoleFaculty, Role: "faculty", CreateAt: &now},
		{RoleID: models.RoleAdmin, Role: "admin", CreateAt: &now},
	}
	for _, role := range roles {
		var count int64
		if err := config.DB.Model(&models.Role{}).Where("role_id = ?", role.RoleID).Count(&count).Error; err != nil {
			log.Fatal("Failed to check role:", err)
		}
		if count == 0 {
			if err := config.DB.Create(&role).Error; err != nil {
				log.Fatal("Failed to create role:", err)
			}
			log.Printf("Created role %s", role.Role)
		}
	}

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	var count int64
	if err := config.DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		log.Fatal("Failed to check admin account:", err)
	}
	if count > 0 {
		log.Printf("Admin %s already exists, skipping", adminEmail)
		return
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	admin := models.User{
		FirstName: "Draft",
		LastName:  "Admin",
		Email:     adminEmail,
		Password:  hashed,
		RoleID:    models.RoleAdmin,
		CreateAt:  &now,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin account:", err)
	}

	log.Printf("Created admin account %s", adminEmail)
}
