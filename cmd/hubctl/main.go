package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/refugee-innovation-hub/internal/config"
	"github.com/refugee-innovation-hub/internal/database"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/repository"
	"github.com/refugee-innovation-hub/internal/validation"
	"github.com/refugee-innovation-hub/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "hubctl",
		Usage: "Refugee Innovation Hub administration",
		Commands: []*cli.Command{
			migrateCommand(),
			hashPasswordCommand(),
			createUserCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, "hubctl:", err)
		os.Exit(1)
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or roll back the database schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDB(func(db *database.DB, cfg *config.Config) error {
						return db.RunMigrations(cfg.Database.MigrationsPath)
					})
				},
			},
			{
				Name:  "down",
				Usage: "Roll back the most recent migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDB(func(db *database.DB, cfg *config.Config) error {
						return db.MigrateDown(cfg.Database.MigrationsPath)
					})
				},
			},
		},
	}
}

func hashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "hash-password",
		Usage: "Print the bcrypt hash of a password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(c.String("password")), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func createUserCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-user",
		Usage: "Create a dashboard user",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "role", Value: string(models.RoleEditor), Usage: "admin or editor"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			user, err := newUser(c.String("email"), c.String("password"), c.String("name"), models.Role(c.String("role")))
			if err != nil {
				return err
			}

			return withDB(func(db *database.DB, cfg *config.Config) error {
				repos := repository.New(db)
				if err := repos.User.Create(ctx, user); err != nil {
					if repository.IsUniqueViolation(err) {
						return fmt.Errorf("a user with email %s already exists", user.Email)
					}
					return fmt.Errorf("failed to create user: %w", err)
				}
				fmt.Printf("created %s user %s (id %d)\n", user.Role, user.Email, user.ID)
				return nil
			})
		},
	}
}

// newUser validates the flags and hashes the password
func newUser(email, password, name string, role models.Role) (*models.User, error) {
	if !validation.IsEmail(email) {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if !models.ValidRoles[role] {
		return nil, fmt.Errorf("role must be admin or editor (got %q)", role)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Active:       true,
	}, nil
}

func withDB(fn func(db *database.DB, cfg *config.Config) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, "pretty").Level(maxLevel(cfg.Log.Level))
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db, cfg)
}

// maxLevel keeps the CLI quiet unless debug logging was asked for
func maxLevel(level string) zerolog.Level {
	if l, err := zerolog.ParseLevel(level); err == nil && l < zerolog.InfoLevel {
		return l
	}
	return zerolog.WarnLevel
}
