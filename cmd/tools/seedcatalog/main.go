package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/MarceliJankowski/pizza-project/internal/modules/catalog"
	"github.com/MarceliJankowski/pizza-project/internal/modules/orders"
	"github.com/MarceliJankowski/pizza-project/internal/storage"
)

// Creates the schema and seeds the demo pizza menu. Safe to re-run:
// existing product codes are left alone, unless SEED_REPLACE=true, which
// drops each seeded product (rows and stored images) before recreating
// it from the current definition.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&catalog.Product{},
		&catalog.OptionGroup{},
		&catalog.Option{},
		&catalog.Image{},
		&orders.Order{},
		&orders.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}
	log.Println("✓ schema migrated")

	ctx := context.Background()
	repo := catalog.NewRepo(db)

	st, err := storage.FromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to build storage: %v", err)
	}

	imageKeys := uploadSeedImages(ctx, st.Storage)
	replace := os.Getenv("SEED_REPLACE") == "true"

	for _, p := range seedProducts(imageKeys) {
		if replace {
			if err := removeExisting(ctx, repo, st.Storage, p.Code); err != nil {
				log.Fatalf("Failed to replace %s: %v", p.Code, err)
			}
		}

		created, err := repo.CreateProduct(ctx, p)
		if errors.Is(err, catalog.ErrDuplicateCode) {
			log.Printf("- %s already seeded, skipping", p.Code)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to seed %s: %v", p.Code, err)
		}
		log.Printf("✓ seeded %s (%s)", created.Code, created.ID)
	}
}

// removeExisting drops a previously seeded product, deleting its stored
// images first so replaced uploads don't pile up.
func removeExisting(ctx context.Context, repo *catalog.Repo, st storage.Storage, code string) error {
	existing, err := repo.GetByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, im := range existing.Images {
		if err := st.Delete(ctx, im.StorageKey); err != nil {
			log.Printf("- could not delete image %s: %v", im.StorageKey, err)
		}
	}
	for _, g := range existing.Groups {
		for _, o := range g.Options {
			if o.ImageKey == "" {
				continue
			}
			if err := st.Delete(ctx, o.ImageKey); err != nil {
				log.Printf("- could not delete option image %s: %v", o.ImageKey, err)
			}
		}
	}

	log.Printf("- replacing %s", code)
	return repo.DeleteByCode(ctx, code)
}

// uploadSeedImages pushes bundled placeholder images (SEED_IMAGES_DIR)
// into storage and returns filename -> key. Skipped when the directory
// is absent.
func uploadSeedImages(ctx context.Context, st storage.Storage) map[string]string {
	dir := os.Getenv("SEED_IMAGES_DIR")
	if dir == "" {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("- seed images dir unreadable (%v), skipping uploads", err)
		return nil
	}

	keys := map[string]string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f, err := os.Open(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Fatalf("Failed to open seed image %s: %v", e.Name(), err)
		}
		res, err := st.Put(ctx, f, storage.PutInput{Filename: e.Name(), ContentType: "image/png"})
		f.Close()
		if err != nil {
			log.Fatalf("Failed to upload seed image %s: %v", e.Name(), err)
		}
		keys[e.Name()] = res.Key
		log.Printf("✓ uploaded %s -> %s", e.Name(), res.Key)
	}
	return keys
}

func seedProducts(imageKeys map[string]string) []catalog.Product {
	key := func(name string) string { return imageKeys[name] }

	toppings := func(productKind string) catalog.OptionGroup {
		return catalog.OptionGroup{
			Code:  "toppings",
			Label: "Toppings",
			Options: []catalog.Option{
				{Code: "olives", Label: "Olives", PriceCents: 200, Default: true, ImageKey: key(productKind + "-olives.png")},
				{Code: "mushrooms", Label: "Mushrooms", PriceCents: 200, ImageKey: key(productKind + "-mushrooms.png")},
				{Code: "cheese", Label: "Extra cheese", PriceCents: 300, ImageKey: key(productKind + "-cheese.png")},
				{Code: "salami", Label: "Salami", PriceCents: 400, ImageKey: key(productKind + "-salami.png")},
			},
		}
	}

	sauce := catalog.OptionGroup{
		Code:  "sauce",
		Label: "Sauce",
		Options: []catalog.Option{
			{Code: "tomato", Label: "Tomato", PriceCents: 0, Default: true},
			{Code: "cream", Label: "Sour cream", PriceCents: 200},
		},
	}

	crust := catalog.OptionGroup{
		Code:  "crust",
		Label: "Crust",
		Options: []catalog.Option{
			{Code: "standard", Label: "Standard", PriceCents: 0, Default: true},
			{Code: "thick", Label: "Thick", PriceCents: 300},
		},
	}

	return []catalog.Product{
		{
			Code:           "margherita",
			Name:           "Margherita",
			Description:    "Tomato, mozzarella, basil.",
			BasePriceCents: 3000,
			Groups:         []catalog.OptionGroup{toppings("margherita"), sauce, crust},
		},
		{
			Code:           "capricciosa",
			Name:           "Capricciosa",
			Description:    "Ham, mushrooms, artichokes.",
			BasePriceCents: 3600,
			Groups:         []catalog.OptionGroup{toppings("capricciosa"), sauce, crust},
		},
		{
			Code:           "diavola",
			Name:           "Diavola",
			Description:    "Spicy salami, chili.",
			BasePriceCents: 3800,
			Groups:         []catalog.OptionGroup{toppings("diavola"), sauce, crust},
		},
		{
			Code:           "breadsticks",
			Name:           "Garlic breadsticks",
			Description:    "With garlic butter.",
			BasePriceCents: 1400,
			Groups: []catalog.OptionGroup{
				{
					Code:  "dips",
					Label: "Dips",
					Options: []catalog.Option{
						{Code: "garlic", Label: "Garlic dip", PriceCents: 150, Default: true},
						{Code: "bbq", Label: "BBQ dip", PriceCents: 150},
					},
				},
			},
		},
	}
}
