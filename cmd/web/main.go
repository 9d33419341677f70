package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	apphttp "github.com/MarceliJankowski/pizza-project/internal/http"
	"github.com/MarceliJankowski/pizza-project/internal/http/sessioncookie"
	"github.com/MarceliJankowski/pizza-project/internal/mailer"
	"github.com/MarceliJankowski/pizza-project/internal/modules/cart"
	"github.com/MarceliJankowski/pizza-project/internal/modules/catalog"
	"github.com/MarceliJankowski/pizza-project/internal/modules/orders"
	"github.com/MarceliJankowski/pizza-project/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()

	// The catalog must be fully loaded before anything configures or
	// prices a product; nothing mutates it afterwards.
	cat, err := catalog.Load(ctx, catalog.NewRepo(db), logger)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	if cat.Len() == 0 {
		logger.Warn("catalog is empty; run cmd/tools/seedcatalog")
	}

	store := cart.NewStore(cart.Config{
		DeliveryFeeCents: envInt("DELIVERY_FEE_CENTS", cart.DefaultDeliveryFeeCents),
		AmountMin:        envInt("AMOUNT_MIN", 1),
		AmountMax:        envInt("AMOUNT_MAX", 9),
	})

	st, err := storage.FromEnv(ctx)
	if err != nil {
		log.Fatalf("failed to build storage: %v", err)
	}

	submitter, err := orders.FromEnv(db)
	if err != nil {
		log.Fatalf("failed to build order submitter: %v", err)
	}
	orderSvc := orders.NewService(submitter, mailer.FromEnv(), envOr("SHOP_EMAIL_FROM", "orders@pizza.local"), logger)

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal("SESSION_SECRET environment variable is required")
	}
	sessions := sessioncookie.New([]byte(secret), envOr("SESSION_COOKIE", "pizza_cart"), os.Getenv("COOKIE_SECURE") == "true")

	localUploads := ""
	if st.Driver == "local" {
		localUploads = envOr("LOCAL_UPLOAD_DIR", "./storage/uploads")
	}

	r := apphttp.NewRouter(apphttp.Deps{
		Logger:         logger,
		Catalog:        cat,
		Store:          store,
		Orders:         orderSvc,
		Storage:        st.Storage,
		Sessions:       sessions,
		LocalUploadDir: localUploads,
	})

	addr := envOr("ADDR", ":8080")
	logger.Info("listening", slog.String("addr", addr), slog.String("storage", st.Driver))
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Fatalf("%s must be an integer, got %q", k, os.Getenv(k))
	}
	return def
}
