package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type config struct {
	dsn         string
	clients     string
	projectsPer int
	withTypes   bool
}

func main() {
	cfg := parseConfig()
	if cfg.dsn == "" {
		log.Fatal("PG_DSN or DATABASE_URL is required")
	}
	if cfg.projectsPer <= 0 {
		log.Fatal("projects-per-client must be > 0")
	}

	db, err := sql.Open("pgx", cfg.dsn)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("db ping: %v", err)
	}

	if cfg.withTypes {
		if err := seedAssetTypes(ctx, db); err != nil {
			log.Fatalf("seed asset types: %v", err)
		}
		log.Print("asset types seeded")
	}

	for _, clientName := range splitNames(cfg.clients) {
		clientID, err := seedClient(ctx, db, clientName)
		if err != nil {
			log.Fatalf("seed client %q: %v", clientName, err)
		}
		for i := 1; i <= cfg.projectsPer; i++ {
			projectName := fmt.Sprintf("%s Site %d", clientName, i)
			if err := seedProject(ctx, db, clientID, projectName); err != nil {
				log.Fatalf("seed project %q: %v", projectName, err)
			}
		}
		log.Printf("client %q seeded with %d projects", clientName, cfg.projectsPer)
	}
}

func parseConfig() config {
	var cfg config
	flag.StringVar(&cfg.dsn, "dsn", getenvDefault("PG_DSN", os.Getenv("DATABASE_URL")), "postgres DSN")
	flag.StringVar(&cfg.clients, "clients", "Acme Wind,Borealis Energy", "comma-separated client names")
	flag.IntVar(&cfg.projectsPer, "projects-per-client", 2, "projects to create per client")
	flag.BoolVar(&cfg.withTypes, "with-asset-types", true, "seed the asset type catalog")
	flag.Parse()
	return cfg
}

func seedAssetTypes(ctx context.Context, db *sql.DB) error {
	types := []struct {
		id   int
		name string
	}{
		{1, "Met Tower"},
		{2, "Lidar"},
		{3, "Sodar"},
	}
	for _, t := range types {
		_, err := db.ExecContext(ctx,
			`INSERT INTO asset_types (asset_type_id, asset_type) VALUES ($1, $2) ON CONFLICT (asset_type_id) DO NOTHING`,
			t.id, t.name)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedClient(ctx context.Context, db *sql.DB, name string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`SELECT client_id FROM clients WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	err = db.QueryRowContext(ctx,
		`INSERT INTO clients (name) VALUES ($1) RETURNING client_id`, name).Scan(&id)
	return id, err
}

func seedProject(ctx context.Context, db *sql.DB, clientID int64, name string) error {
	var existing int64
	err := db.QueryRowContext(ctx,
		`SELECT project_id FROM projects WHERE client_id = $1 AND name = $2`, clientID, name).Scan(&existing)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO projects (client_id, name) VALUES ($1, $2)`, clientID, name)
	return err
}

func splitNames(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
