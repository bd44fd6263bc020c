package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/config"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/repository"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/pkg/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	if cmd == "seed" {
		seedCoach(cfg)
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	candidates := []string{}
	current := cwd
	for i := 0; i < 6; i++ {
		candidates = append(candidates, filepath.Join(current, "migrations"))
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	exePath, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exePath)
		candidates = append(candidates,
			filepath.Join(exeDir, "migrations"),
			filepath.Join(exeDir, "..", "migrations"),
			filepath.Join(exeDir, "..", "..", "migrations"),
		)
	}
	var migrationsPath string
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			migrationsPath = candidate
			break
		}
	}
	if migrationsPath == "" {
		log.Fatal("Migrations directory not found")
	}
	absMigrationsPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.New(
		"file://"+absMigrationsPath,
		cfg.DBUrl,
	)
	if err != nil {
		log.Fatal(err)
	}

	if cmd == "down" {
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatal(err)
		}
		log.Println("Migration down successful")
	} else {
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatal(err)
		}
		log.Println("Migration up successful")
	}
}

// seedCoach provisions the coach account. There is no public coach sign-up,
// so this is how the first (and usually only) coach comes to exist.
func seedCoach(cfg *config.Config) {
	if cfg.DefaultCoachEmail == "" || cfg.DefaultCoachPassword == "" {
		log.Fatal("DEFAULT_COACH_EMAIL and DEFAULT_COACH_PASSWORD are required to seed")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	userRepo := repository.NewUserRepository(conn)
	if existing, err := userRepo.GetByEmail(ctx, cfg.DefaultCoachEmail); err == nil && existing != nil {
		log.Printf("Coach account %s already exists, nothing to do", cfg.DefaultCoachEmail)
		return
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Fatalf("Failed to check for existing coach: %v", err)
	}

	hashed, err := utils.HashPassword(cfg.DefaultCoachPassword)
	if err != nil {
		log.Fatalf("Failed to hash coach password: %v", err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txUserRepo := repository.NewUserRepository(tx)
	txProfileRepo := repository.NewProfileRepository(tx)

	user := &models.User{
		Email:        cfg.DefaultCoachEmail,
		PasswordHash: hashed,
	}
	if err := txUserRepo.CreateUser(ctx, user); err != nil {
		log.Fatalf("Failed to create coach user: %v", err)
	}
	// The seeded coach skips email verification.
	if err := txUserRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		log.Fatalf("Failed to verify coach user: %v", err)
	}
	if _, err := txProfileRepo.Create(ctx, repository.CreateProfileInput{
		UserID:   user.ID,
		FullName: cfg.DefaultCoachName,
		Email:    user.Email,
		Role:     "coach",
	}); err != nil {
		log.Fatalf("Failed to create coach profile: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit seed transaction: %v", err)
	}

	log.Printf("Seeded coach account %s", cfg.DefaultCoachEmail)
}
