package main

import (
	"context"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/model"
	"storefront/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	if err := seedAdmin(ctx, repository.NewUserRepository(gormDB)); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, updated, err := seedCatalog(ctx,
		repository.NewCategoryRepository(gormDB),
		repository.NewProductRepository(gormDB),
		gormDB,
	)
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New records created: %d", created)
	log.Printf("  - Existing records updated: %d", updated)
}

// seedAdmin ensures a default admin user exists. Credentials come from
// ADMIN_EMAIL / ADMIN_PASSWORD with local-dev defaults.
func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	email := getEnv("ADMIN_EMAIL", "admin@storefront.local")
	password := getEnv("ADMIN_PASSWORD", "admin123")

	existing, err := users.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if existing != nil {
		log.Printf("Admin user %s already exists, skipping", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}
	admin := &model.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin user %s", email)
	return nil
}

type seedProduct struct {
	Title       string
	Description string
	Price       string
	ImageURL    string
	Stock       int
	Category    string
}

var seedCategories = []model.Category{
	{Name: "Clothing", Icon: "shirt"},
	{Name: "Shoes", Icon: "boot"},
	{Name: "Accessories", Icon: "watch"},
}

var seedProducts = []seedProduct{
	{Title: "Blue T-Shirt", Description: "Classic cotton tee", Price: "19.99", ImageURL: "https://picsum.photos/seed/blue/600/400", Stock: 40, Category: "Clothing"},
	{Title: "Red Hoodie", Description: "Heavyweight fleece hoodie", Price: "45.99", ImageURL: "https://picsum.photos/seed/red/600/400", Stock: 25, Category: "Clothing"},
	{Title: "Sneakers", Description: "Everyday low-top sneakers", Price: "69.99", ImageURL: "https://picsum.photos/seed/shoes/600/400", Stock: 12, Category: "Shoes"},
	{Title: "Leather Belt", Description: "Full-grain leather belt", Price: "24.50", ImageURL: "https://picsum.photos/seed/belt/600/400", Stock: 4, Category: "Accessories"},
}

// seedCatalog upserts the starter categories and products, matching on the
// unique name and on title respectively.
func seedCatalog(ctx context.Context, categories repository.CategoryRepository, products repository.ProductRepository, gormDB *gorm.DB) (created int, updated int, err error) {
	existing, err := categories.List(ctx)
	if err != nil {
		return created, updated, err
	}
	byName := make(map[string]model.Category, len(existing))
	for _, c := range existing {
		byName[c.Name] = c
	}

	for _, c := range seedCategories {
		if prev, ok := byName[c.Name]; ok {
			prev.Icon = c.Icon
			if err := categories.Update(ctx, &prev); err != nil {
				return created, updated, err
			}
			updated++
			continue
		}
		category := c
		if err := categories.Create(ctx, &category); err != nil {
			return created, updated, err
		}
		created++
	}

	for _, p := range seedProducts {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			log.Printf("Skipping product %q with invalid price: %s", p.Title, p.Price)
			continue
		}

		var prev model.Product
		findErr := gormDB.WithContext(ctx).Where("title = ?", p.Title).First(&prev).Error
		if findErr == nil {
			prev.Description = p.Description
			prev.Price = price
			prev.ImageURL = p.ImageURL
			prev.Stock = p.Stock
			prev.Category = p.Category
			if err := products.Update(ctx, &prev); err != nil {
				return created, updated, err
			}
			updated++
			continue
		}
		if findErr != gorm.ErrRecordNotFound {
			return created, updated, findErr
		}

		product := model.Product{
			Title:       p.Title,
			Description: p.Description,
			Price:       price,
			ImageURL:    p.ImageURL,
			Stock:       p.Stock,
			Category:    p.Category,
		}
		if err := products.Create(ctx, &product); err != nil {
			return created, updated, err
		}
		created++
	}

	return created, updated, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
