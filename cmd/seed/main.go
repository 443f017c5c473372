package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bigsofa/bigsofa-backend/config"
	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/internal/app/repository"
	"github.com/bigsofa/bigsofa-backend/internal/db"
	"github.com/bigsofa/bigsofa-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Imports a furniture catalogue from an XLSX workbook.
// Expected columns: Name | Description | Price (TZS) | Category | Image URL

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	furnitureRepo := repository.NewFurnitureRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readRows(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	fmt.Printf("Total items to import: %d\n", len(rows))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	categories := make(map[string]uint)
	existing, err := categoryRepo.FindAll()
	if err != nil {
		log.Fatal("Failed to list categories:", err)
	}
	for _, c := range existing {
		categories[strings.ToLower(c.Name)] = c.ID
	}

	imported := 0
	for i, row := range rows {
		categoryID, ok := categories[strings.ToLower(row.Category)]
		if !ok {
			category := &model.Category{Name: row.Category}
			if err := categoryRepo.Create(category); err != nil {
				log.Fatalf("Failed to create category %q: %v", row.Category, err)
			}
			categoryID = category.ID
			categories[strings.ToLower(row.Category)] = categoryID
		}

		item := &model.FurnitureItem{
			Name:        row.Name,
			Description: row.Description,
			PriceCents:  row.PriceCents,
			CategoryID:  categoryID,
			ImageURL:    row.ImageURL,
		}
		if err := furnitureRepo.Create(item); err != nil {
			log.Fatalf("Failed to import row %d (%s): %v", i+2, row.Name, err)
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total items imported: %d\n", imported)
}

type itemRow struct {
	Name        string
	Description string
	PriceCents  int64
	Category    string
	ImageURL    string
}

func readRows(filePath string) ([]itemRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}
	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows found")
	}

	var items []itemRow
	for i, row := range rows[1:] { // skip header
		if len(row) < 4 {
			fmt.Printf("Skipping row %d: not enough columns\n", i+2)
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}

		priceCents, err := util.ParseMajorUnits(row[2])
		if err != nil {
			fmt.Printf("Skipping row %d (%s): invalid price %q\n", i+2, name, row[2])
			continue
		}

		item := itemRow{
			Name:        name,
			Description: strings.TrimSpace(row[1]),
			PriceCents:  priceCents,
			Category:    strings.TrimSpace(row[3]),
		}
		if len(row) > 4 {
			item.ImageURL = strings.TrimSpace(row[4])
		}
		if item.Category == "" {
			fmt.Printf("Skipping row %d (%s): missing category\n", i+2, name)
			continue
		}

		items = append(items, item)
	}

	return items, nil
}
