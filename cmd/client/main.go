package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/buildinfo"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/cart"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/cli"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/client"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/config"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/session"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/storage"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(os.Stderr, cfg.LogLevel)

	store, err := storage.Open(ctx, storage.Options{
		Driver:      cfg.StorageDriver,
		Path:        cfg.StoragePath,
		RedisURL:    cfg.RedisURL,
		RedisPrefix: cfg.RedisPrefix,
		Secret:      cfg.StorageSecret,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(ctx, "closing storage", "err", err)
		}
	}()

	var sess *session.Manager
	api, err := client.NewHTTPClient(cfg.ServerBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithTokenSource(func() string { return sess.Token() }),
		client.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	router := cli.NewRouter(os.Stdout, cfg.LoginPath)
	sess = session.New(store, api, router,
		session.WithLogger(logger),
		session.WithLoginPath(cfg.LoginPath),
	)
	defer sess.Close()
	sess.Hydrate(ctx)

	shoppingCart := cart.New(store, cart.WithLogger(logger))
	shoppingCart.Load(ctx)

	app := cli.NewApp(sess, shoppingCart, api, router, os.Stdin,
		cli.WithPageSize(cfg.PageSize),
		cli.WithLogger(logger),
	)
	app.Run(ctx)
	return nil
}
