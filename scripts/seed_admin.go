package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/minhvu/folio/pkg/auth"
)

// Seeds the admin user and the singleton profile row. The application
// never creates either; this script is the only writer.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if dsn == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("DB_DSN, ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	userQuery := `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = $3
	`
	if _, err := pool.Exec(ctx, userQuery, uuid.New(), adminEmail, hash); err != nil {
		log.Fatalf("cannot seed admin user: %v", err)
	}

	// Insert the profile row only when the table is empty; the Get
	// singleton read fails on zero or multiple rows.
	profileQuery := `
		INSERT INTO profile (name, initials, tagline, about_text, is_available_for_work, email)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE NOT EXISTS (SELECT 1 FROM profile)
	`
	tag, err := pool.Exec(ctx, profileQuery,
		"Your Name", "YN", "Software Engineer", "Write something about yourself.",
		true, adminEmail,
	)
	if err != nil {
		log.Fatalf("cannot seed profile: %v", err)
	}

	if tag.RowsAffected() > 0 {
		fmt.Println("seeded profile row")
	} else {
		fmt.Println("profile row already present, left untouched")
	}
	fmt.Printf("seeded admin '%s' successfully\n", adminEmail)
}
