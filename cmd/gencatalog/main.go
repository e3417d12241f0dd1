package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// sampleCatalog is split across files so loading merges several sources.
// "Oatmeal" and "Toast" appear twice to exercise de-duplication.
var sampleCatalog = map[string][]string{
	"foods-breakfast.gz": {
		"Oatmeal",
		"Omelette",
		"Toast",
		"Greek yogurt",
		"Scrambled eggs",
		"Pancakes",
	},
	"foods-mains.gz": {
		"Chicken salad",
		"Tomato soup",
		"Spaghetti bolognese",
		"Grilled salmon",
		"Veggie burger",
		"Toast",
	},
	"foods-snacks.gz": {
		"Apple",
		"Banana",
		"Trail mix",
		"Oatmeal",
		"Dark chocolate",
		"Orange juice",
	},
}

func main() {
	dataDir := flag.String("dir", "data/catalog", "directory to write catalogue files into")
	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	files := make([]string, 0, len(sampleCatalog))
	paths := make([]string, 0, len(sampleCatalog))
	for name := range sampleCatalog {
		files = append(files, name)
	}
	sort.Strings(files)

	for _, filename := range files {
		filePath := filepath.Join(*dataDir, filename)
		names := sampleCatalog[filename]

		if err := createCatalogFile(filePath, names); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d foods\n", filePath, len(names))
		paths = append(paths, filePath)
	}

	fmt.Println("\nSet CATALOG_FILES to load them, e.g.:")
	fmt.Printf("  CATALOG_FILES=%s\n", strings.Join(paths, ","))
}

func createCatalogFile(filePath string, names []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, name := range names {
		if _, err := fmt.Fprintf(gzipWriter, "%s\n", name); err != nil {
			return fmt.Errorf("failed to write name: %w", err)
		}
	}

	return nil
}
