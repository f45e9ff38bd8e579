// importprod bulk loads catalog products from a CSV file.
//
// Usage:
//
//	importprod products.csv
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/stevepenney/LBDesign/internal/importer"
	"github.com/stevepenney/LBDesign/internal/repo"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: importprod <products.csv>")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment")
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	db := repo.InitDB()
	defer db.Close()

	products := repo.NewPostgresProductDB(db)
	sum, err := importer.ImportCSV(context.Background(), products, file)
	if err != nil {
		log.Fatal(err)
	}

	for _, e := range sum.Errors {
		fmt.Println("  -", e)
	}
	fmt.Printf("Imported %d products (%d errors)\n", sum.Imported, len(sum.Errors))
	if len(sum.Errors) > 0 {
		os.Exit(1)
	}
}
