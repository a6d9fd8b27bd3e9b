package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/abdulrafayKhan-10/EventSphere-Management-System/config"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/helpers"
)

// Seeds an initial Admin account so the administrative endpoints are
// reachable on a fresh database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@eventsphere.com"
	password := "admin1234"
	name := "Platform Admin"

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO accounts (name, email, password_hash, role, is_verified)
		VALUES ($1, $2, $3, 'Admin', TRUE)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}
	fmt.Printf("seeded admin account: id=%s email=%s password=%s\n", id, email, password)
}
