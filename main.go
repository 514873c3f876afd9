package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/clearwood/uuidgen/src/entropy"
	"github.com/clearwood/uuidgen/src/server"
)

func main() {
	zapLogger, _ := zap.NewProduction()
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	health := entropy.NewHealth()
	if err := entropy.CheckSource(entropy.Source(), health); err != nil {
		log.Fatal(err)
	}
	health.Set(true, "")

	log.Infow("starting uuid service", "port", port)
	server.New(port, health, log).RunOrDie()
}
