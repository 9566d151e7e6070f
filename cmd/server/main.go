package main

import (
	"context"
	"database/sql"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"

	todoapp "github.com/milbmr/todoapp-backend"
	"github.com/milbmr/todoapp-backend/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	if err := runMigrations(ctx, db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	repo := todoapp.NewRepositoryManager(db)
	repo.MustValidate()

	tokens := todoapp.NewTokenService(
		[]byte(cfg.JWTSigningKey),
		cfg.AccessTokenTTL,
		cfg.JWTIssuer,
		cfg.JWTAudience,
		nil,
	)
	provider := todoapp.NewUserProvider(repo.Users(), nil)
	auther := todoapp.NewAuthenticator(provider, tokens, repo.Users(), cfg)

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		app := fiber.New(fiber.Config{
			AppName: "todoapp-backend",
		})
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigin,
			AllowCredentials: true,
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization, user",
		}))
		return router.DefaultFiberOptions(app)
	})

	protected := todoapp.ProtectedRoute(cfg, tokens, todoapp.MakeAPIAuthErrorHandler(nil))

	account := todoapp.NewAccountController(auther, repo, cfg,
		todoapp.WithAccountDebug(cfg.Debug),
	)
	account.RegisterRoutes(srv.Router(), protected)

	todos := todoapp.NewTodoController(repo, cfg, nil)
	todos.RegisterRoutes(srv.Router(), protected)

	srv.Router().Get("/health", func(ctx router.Context) error {
		return ctx.JSON(router.StatusOK, map[string]any{"status": "ok"})
	})

	log.Printf("listening on %s", cfg.ServerAddr)
	srv.Serve(cfg.ServerAddr)

	WaitExitSignal()

	if err := db.Close(); err != nil {
		log.Printf("close database: %v", err)
	}
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	sub, err := fs.Sub(todoapp.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	migrations := migrate.NewMigrations()
	if err := migrations.Discover(sub); err != nil {
		return err
	}

	migrator := migrate.NewMigrator(db, migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		log.Println("database schema up to date")
	}

	return nil
}

func WaitExitSignal() os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return <-sigCh
}
