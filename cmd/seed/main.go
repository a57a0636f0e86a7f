// File: cmd/seed/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"course-marketplace/internal/config"
	"course-marketplace/internal/domain/model"
	"course-marketplace/internal/domain/ports/repository"
	pg "course-marketplace/internal/infra/db/postgres"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		price      DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id              TEXT PRIMARY KEY,
		purchased_course_ids TEXT[] NOT NULL DEFAULT '{}',
		purchases            JSONB  NOT NULL DEFAULT '{}'::jsonb,
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id                     INT PRIMARY KEY,
		is_payment_enabled     BOOLEAN NOT NULL DEFAULT TRUE,
		course_duration_months INT NOT NULL DEFAULT 5,
		updated_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS grant_journal (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		course_ids      TEXT[] NOT NULL,
		order_id        TEXT NOT NULL DEFAULT '',
		payment_id      TEXT NOT NULL DEFAULT '',
		source          TEXT NOT NULL,
		duration_months INT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL,
		retried_at      TIMESTAMPTZ,
		resolved        BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_grant_journal_unresolved
		ON grant_journal (created_at) WHERE NOT resolved`,
}

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("schema: %v", err)
		}
	}
	fmt.Println("schema ready")

	courseRepo := pg.NewCourseRepo(pool)

	// If courses already exist, do nothing
	existing, err := courseRepo.ListAll(ctx, repository.NoTX)
	if err != nil {
		log.Fatalf("list courses: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("%d courses already present. No changes.\n", len(existing))
		for _, c := range existing {
			fmt.Printf("  - %s: %s (price=%.2f)\n", c.ID, c.Title, c.Price)
		}
		return
	}

	// Seed a few sample courses for testing the payment flow
	seed := []struct {
		ID    string
		Title string
		Price float64
	}{
		{"CS301", "Data Structures and Algorithms", 499},
		{"CS302", "Operating Systems", 599},
		{"MA201", "Linear Algebra", 399},
	}

	for _, s := range seed {
		c, err := model.NewCourse(s.ID, s.Title, s.Price)
		if err != nil {
			log.Fatalf("course %q: %v", s.ID, err)
		}
		if err := courseRepo.Save(ctx, repository.NoTX, c); err != nil {
			log.Fatalf("save course %q: %v", s.ID, err)
		}
		fmt.Printf("seeded: %s (%s, price=%.2f)\n", c.ID, c.Title, c.Price)
	}

	fmt.Println("✅ Seeding complete.")
}
