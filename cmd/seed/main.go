package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// seedUser bundles a demo author with their posts.
type seedUser struct {
	Name     string
	Email    string
	Password string
	Posts    []seedPost
}

type seedPost struct {
	Title     string
	Content   string
	Published bool
}

var seedUsers = []seedUser{
	{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "notes1842",
		Posts: []seedPost{
			{Title: "On analytical engines", Content: "Sketches of a machine that computes.", Published: true},
			{Title: "Draft: second memoir", Content: "Unfinished thoughts.", Published: false},
		},
	},
	{
		Name:     "Grace",
		Email:    "grace@example.com",
		Password: "compile1952",
		Posts: []seedPost{
			{Title: "A compiler, explained", Content: "Programs that write programs.", Published: true},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	posts := repository.NewPostRepository(gormDB)

	created := 0
	for _, su := range seedUsers {
		if existing, err := users.FindByEmail(ctx, su.Email); err == nil && existing != nil {
			log.Printf("User %s already seeded, skipping", su.Email)
			continue
		} else if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check user %s: %v", su.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.Email, err)
		}

		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}

		for _, sp := range su.Posts {
			post := &model.Post{
				Title:     sp.Title,
				Content:   sp.Content,
				Published: sp.Published,
				AuthorID:  user.ID,
			}
			if err := posts.Create(ctx, post); err != nil {
				log.Fatalf("Failed to create post %q: %v", sp.Title, err)
			}
		}
		created++
	}

	log.Printf("Seed complete: %d users created", created)
}
