// scripts/create_professor.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/buckneer/CheckMateV2/config"
	"github.com/buckneer/CheckMateV2/database"
	"github.com/buckneer/CheckMateV2/models"
)

// Seeds a professor account for local development.
func main() {
	cfg := config.Load()
	database.Connect(cfg)

	name := "Demo Professor"
	email := "professor@example.com"
	password := "1234"

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.Professor
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query professors: %v", err)
		}
	} else {
		fmt.Println("professor already exists with email:", email)
		os.Exit(0)
	}

	p := models.Professor{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := database.DB.Create(&p).Error; err != nil {
		log.Fatalf("failed to insert professor: %v", err)
	}

	fmt.Println("professor created successfully")
	fmt.Println("  Email:   ", email)
	fmt.Println("  Password:", password, "(plain, change it later!)")
}
