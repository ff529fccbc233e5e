// cmd/tools/catalog-seeder/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"storebot/internal/common/config"
	"storebot/internal/common/database"
	"storebot/internal/models"
	"storebot/pkg/catalogfile"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validateFile := validateCmd.String("file", "", "Path to a catalog JSON file")

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedFile := seedCmd.String("file", "", "Path to a catalog JSON file")
	seedBackend := seedCmd.String("backend", "elasticsearch", "Target backend (elasticsearch or postgres)")
	seedConfig := seedCmd.String("config", "", "Optional config file path (defaults to the standard search paths)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		if *validateFile == "" {
			fmt.Println("Error: -file is required for validate.")
			validateCmd.Usage()
			os.Exit(1)
		}
		cf, err := catalogfile.Load(*validateFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK: %d products\n", len(cf.Products))

	case "seed":
		seedCmd.Parse(os.Args[2:])
		if *seedFile == "" {
			fmt.Println("Error: -file is required for seed.")
			seedCmd.Usage()
			os.Exit(1)
		}
		if err := seed(*seedFile, *seedBackend, *seedConfig); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

	default:
		help()
		os.Exit(1)
	}
}

func seed(file, backend, configPath string) error {
	cf, err := catalogfile.Load(file)
	if err != nil {
		return err
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch backend {
	case "elasticsearch":
		return seedElasticsearch(ctx, cfg, cf.Products)
	case "postgres":
		return seedPostgres(ctx, cfg, cf.Products)
	default:
		return fmt.Errorf("unknown backend %q", backend)
	}
}

func seedElasticsearch(ctx context.Context, cfg *config.Config, products []models.ProductSummary) error {
	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		return err
	}

	for _, p := range products {
		doc, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal product %s: %w", p.ID, err)
		}

		req := esapi.IndexRequest{
			Index:      cfg.Catalog.Index,
			DocumentID: p.ID,
			Body:       strings.NewReader(string(doc)),
			Refresh:    "true",
		}
		res, err := req.Do(ctx, esClient.Client)
		if err != nil {
			return fmt.Errorf("index product %s: %w", p.ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("index product %s: %s", p.ID, res.Status())
		}
	}

	fmt.Printf("Seeded %d products into index %q\n", len(products), cfg.Catalog.Index)
	return nil
}

func seedPostgres(ctx context.Context, cfg *config.Config, products []models.ProductSummary) error {
	pgClient, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	query := fmt.Sprintf(`INSERT INTO %s (id, title, price, category, section, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			section = EXCLUDED.section,
			description = EXCLUDED.description`, cfg.Catalog.Table)

	for _, p := range products {
		if _, err := pgClient.Exec(ctx, query, p.ID, p.Title, p.Price, p.Category, string(p.Section), p.Description); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}

	fmt.Printf("Seeded %d products into table %q\n", len(products), cfg.Catalog.Table)
	return nil
}

func help() {
	fmt.Println("Usage: catalog-seeder <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  validate -file <path>                       Validate a catalog JSON file")
	fmt.Println("  seed     -file <path> -backend <name>       Load products into a backend")
}
