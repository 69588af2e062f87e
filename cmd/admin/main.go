package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/carebook/internal/admin"
	"github.com/dmitrijs2005/carebook/internal/flagx"
	"github.com/dmitrijs2005/carebook/internal/server"
	"github.com/dmitrijs2005/carebook/internal/server/auth"
	"github.com/dmitrijs2005/carebook/internal/server/config"
	"github.com/dmitrijs2005/carebook/internal/server/services"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	args := flagx.Positional(os.Args[1:], config.ValueFlags)

	db, rm, err := server.ConnectDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	logger := server.NewLogger(cfg)
	identities := services.NewIdentityService(db, rm, server.NewHasher(cfg),
		auth.NewIssuer(cfg.SecretKey, cfg.AccessTokenValidityDuration), logger, nil)

	app := admin.NewApp(identities, func(ctx context.Context) error {
		return rm.RunMigrations(ctx, db)
	}, os.Stdin, os.Stdout)

	if err := app.Run(ctx, args); err != nil {
		db.Close()
		log.Fatalf("%v", err)
	}

}
