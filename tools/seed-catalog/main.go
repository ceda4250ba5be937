package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/yashrajoria/storefront/app"
	"github.com/yashrajoria/storefront/config"
	"github.com/yashrajoria/storefront/logger"
	"github.com/yashrajoria/storefront/services"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	var reset bool
	flag.StringVar(&cfg.MongoURI, "mongo", cfg.MongoURI, "MongoDB URI")
	flag.StringVar(&cfg.MongoDBName, "db", cfg.MongoDBName, "MongoDB database name")
	flag.StringVar(&cfg.AdminEmail, "admin-email", cfg.AdminEmail, "bootstrap admin email")
	flag.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "bootstrap admin password")
	flag.BoolVar(&reset, "reset", false, "delete every product and recreate the demo catalog")
	flag.Parse()

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI must be set or provided via -mongo")
	}

	logger.Initialize(cfg.AppEnv)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	mongo, repos, err := app.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mongo.Close()

	if reset {
		catalog := services.NewCatalogService(repos.Products, repos.Reviews, nil)
		n, err := catalog.SyncCatalog(ctx)
		if err != nil {
			log.Fatalf("sync catalog: %v", err)
		}
		fmt.Printf("Catalog reset. products=%d\n", n)
	} else {
		seeder := services.NewSeeder(repos.Products, repos.Users, logger.Log)
		res, err := seeder.SeedCatalog(ctx)
		if err != nil {
			log.Fatalf("seed catalog: %v", err)
		}
		fmt.Printf("Catalog seeded. inserted=%d refreshed=%d\n", res.Inserted, res.Refreshed)
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		seeder := services.NewSeeder(repos.Products, repos.Users, logger.Log)
		created, err := seeder.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("seed admin: %v", err)
		}
		fmt.Printf("Admin %s. created=%t\n", cfg.AdminEmail, created)
	}
}
