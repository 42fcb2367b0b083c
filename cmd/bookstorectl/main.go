package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/bookstore-service/bookstore/app"
	"github.com/Astemirdum/bookstore-service/bookstore/cli"
	"github.com/Astemirdum/bookstore-service/bookstore/config"
	"github.com/Astemirdum/bookstore-service/pkg/logger"
	"github.com/Astemirdum/bookstore-service/pkg/stable/s3backup"
)

func main() {
	_ = godotenv.Load()
	cfg := config.NewConfig(config.Quiet(), config.WithLogLevel(zapcore.WarnLevel))
	log := logger.NewLogger(cfg.Log, "bookstorectl")
	defer log.Sync() //nolint:errcheck

	root := cli.NewRootCmd(cli.Deps{
		Open: func(ctx context.Context) (*app.Storage, error) {
			return app.OpenStorage(ctx, cfg.Storage)
		},
		Backup: func(ctx context.Context) (*s3backup.Backup, error) {
			client, err := s3backup.NewClient(ctx, cfg.Backup)
			if err != nil {
				return nil, err
			}
			return s3backup.New(client, cfg.Backup, log), nil
		},
		Log: log,
	})
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
