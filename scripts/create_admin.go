// scripts/create_admin.go
package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rishebss/fifac-backend/config"
	"github.com/rishebss/fifac-backend/database"
	"github.com/rishebss/fifac-backend/models"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "Administrator", "display name")
	flag.Parse()

	if *password == "" {
		log.Fatal().Msg("-password is required")
	}

	_ = godotenv.Load()
	cfg := config.Load()
	database.Connect(cfg)

	var existing models.User
	err := database.DB.Where("username = ?", *username).First(&existing).Error
	if err == nil {
		fmt.Println("admin user already exists:", *username)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("failed to query users")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	u := models.User{
		Username: *username,
		Password: string(hashed),
		Role:     "admin",
		Name:     *name,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to insert admin")
	}

	fmt.Println("admin user created:", *username)
}
