package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"sosmed-api/config"
	"sosmed-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	seedUser := func(fullname, username, email string) string {
		var id string
		err := db.QueryRow(`
			INSERT INTO users (fullname, username, email, password)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO UPDATE SET fullname = EXCLUDED.fullname
			RETURNING id
		`, fullname, username, email, hash).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", username, err)
		}
		fmt.Printf("seeded user: id=%s username=%s email=%s password=%s\n", id, username, email, password)
		return id
	}

	adaID := seedUser("Ada Lovelace", "ada", "ada@example.com")
	demoID := seedUser("Demo User", "demo", "demo@example.com")

	// ada follows demo
	if _, err := db.Exec(`
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`, adaID, demoID); err != nil {
		log.Fatalf("failed to seed follow edge: %v", err)
	}
	fmt.Println("seeded follow edge ada -> demo")
}
