package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kidshop/kidshop-golang/internal/catalog"
	"github.com/kidshop/kidshop-golang/internal/database"
	"github.com/kidshop/kidshop-golang/internal/feed"
)

// The importer is an offline batch: it reads one feed file, reconciles the
// catalog inside a single transaction and exits. Runs must not overlap; the
// operator serializes them (cron with flock, or just running it by hand).
func main() {
	var feedPath string
	flag.StringVar(&feedPath, "file", "sample.xml", "path to the supplier feed XML file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// Parse the whole document up front: a malformed feed must abort before
	// a single row is written.
	f, err := os.Open(feedPath)
	if err != nil {
		log.Fatalf("Failed to open feed file: %v", err)
	}
	doc, err := feed.Parse(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to parse feed: %v", err)
	}
	log.Printf("Feed loaded: %d producers, %d products", len(doc.Producers), len(doc.Products))

	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	res, err := catalog.NewImporter(db).Run(context.Background(), doc)
	if err != nil {
		log.Fatalf("Import failed, all changes rolled back: %v", err)
	}

	log.Printf("Import %s complete: %d producers, %d products (%d skipped)",
		res.RunID, res.Producers, res.Products, res.Skipped)
}
