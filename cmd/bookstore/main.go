package main

import (
	stdLog "log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/bookstore/app"
	"github.com/Astemirdum/bookstore-service/bookstore/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", zap.Error(err))
	}
	cfg := config.NewConfig()

	app.Run(cfg)
}
