package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/models"
)

// Runs the bulk importer against a local CSV/XLSX file and prints the
// result as JSON. Useful for dry-running a client's sheet before they
// upload it.
func main() {
	path := flag.String("file", "", "Path to the CSV or XLSX file to import")
	userId := flag.String("user-id", "admin", "User id to attribute the imported properties to")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: import-file -file <path> [-user-id <id>]")
		os.Exit(1)
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read %s: %v\n", *path, err)
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	models.MigrateTable()

	ctx := context.Background()
	result, err := models.ImportProperties(ctx, filepath.Base(*path), data, *userId)
	if err != nil {
		if errors.Is(err, models.ErrInvalidImportFile) {
			fmt.Fprintf(os.Stderr, "invalid import file: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
	if len(result.FailedRows) > 0 {
		os.Exit(3)
	}
}
