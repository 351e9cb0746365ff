package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"

	"github.com/pedefood/pedefood-backend/config"
	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/app/repository"
	"github.com/pedefood/pedefood-backend/internal/db"
	"github.com/pedefood/pedefood-backend/pkg/payment/simulator"
)

// Imports a restaurant catalog from an XLSX workbook with two sheets:
//
//	restaurantes: nome, categoria, descricao, imagem, abertura,
//	              fechamento, pagamentos, taxa_normal, tempo_normal,
//	              taxa_rapida, tempo_rapida
//	produtos:     restaurante, nome, descricao, preco, imagem, disponivel
//
// Products are matched to restaurants by the restaurant name. Every
// imported restaurant is owned by the user ID given on the command line.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> <owner_user_id>")
	}

	filePath := os.Args[1]
	ownerID, err := strconv.ParseUint(os.Args[2], 10, 32)
	if err != nil {
		log.Fatal("Invalid owner user ID:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	restaurantRepo := repository.NewRestaurantRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	restaurants, err := readCatalogFromXLSX(filePath, uint(ownerID))
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	productCount := 0
	for _, r := range restaurants {
		productCount += len(r.Products)
	}
	fmt.Printf("Total restaurants to import: %d (%d products)\n", len(restaurants), productCount)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 100
	if err := restaurantRepo.BulkCreate(restaurants, batchSize); err != nil {
		log.Fatal("Failed to bulk create restaurants:", err)
	}

	fmt.Println("Import completed successfully!")
}

func readCatalogFromXLSX(filePath string, ownerID uint) ([]model.Restaurant, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	restaurants, index, err := readRestaurants(f, ownerID)
	if err != nil {
		return nil, err
	}

	if err := readProducts(f, restaurants, index); err != nil {
		return nil, err
	}

	return restaurants, nil
}

func readRestaurants(f *excelize.File, ownerID uint) ([]model.Restaurant, map[string]int, error) {
	rows, err := f.GetRows("restaurantes")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read restaurantes sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("restaurantes sheet has no data rows")
	}

	var restaurants []model.Restaurant
	index := make(map[string]int) // restaurant name -> slice position
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 11 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		category := strings.TrimSpace(row[1])
		if name == "" || category == "" {
			skipped++
			continue
		}
		if _, exists := index[name]; exists {
			skipped++
			continue
		}

		feeNormal, err1 := parsePrice(row[7])
		timeNormal, err2 := strconv.Atoi(strings.TrimSpace(row[8]))
		feeFast, err3 := parsePrice(row[9])
		timeFast, err4 := strconv.Atoi(strings.TrimSpace(row[10]))
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			skipped++
			continue
		}

		methods := parsePaymentMethods(row[6])

		index[name] = len(restaurants)
		restaurants = append(restaurants, model.Restaurant{
			UserID:             ownerID,
			Name:               name,
			Category:           category,
			Description:        strings.TrimSpace(row[2]),
			ImageURL:           strings.TrimSpace(row[3]),
			OpeningTime:        strings.TrimSpace(row[4]),
			ClosingTime:        strings.TrimSpace(row[5]),
			PaymentMethods:     methods,
			DeliveryFeeNormal:  feeNormal,
			DeliveryTimeNormal: timeNormal,
			DeliveryFeeFast:    feeFast,
			DeliveryTimeFast:   timeFast,
		})
	}

	fmt.Printf("Restaurants: %d valid, %d skipped\n", len(restaurants), skipped)
	return restaurants, index, nil
}

func readProducts(f *excelize.File, restaurants []model.Restaurant, index map[string]int) error {
	rows, err := f.GetRows("produtos")
	if err != nil {
		return fmt.Errorf("failed to read produtos sheet: %w", err)
	}

	valid, skipped := 0, 0

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 4 {
			skipped++
			continue
		}

		restaurantName := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		pos, ok := index[restaurantName]
		if !ok || name == "" {
			skipped++
			continue
		}

		price, err := parsePrice(row[3])
		if err != nil || price <= 0 {
			skipped++
			continue
		}

		product := model.Product{
			Name:        name,
			Description: strings.TrimSpace(row[2]),
			Price:       price,
			Available:   true,
		}
		if len(row) > 4 {
			product.ImageURL = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			product.Available = parseBool(row[5])
		}

		restaurants[pos].Products = append(restaurants[pos].Products, product)
		valid++
	}

	fmt.Printf("Products: %d valid, %d skipped\n", valid, skipped)
	return nil
}

// parsePrice accepts both "12.50" and the pt-BR form "12,50".
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

func parsePaymentMethods(s string) pq.StringArray {
	var methods pq.StringArray
	for _, m := range strings.Split(s, ";") {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == string(simulator.MethodCard) || m == string(simulator.MethodPix) {
			methods = append(methods, m)
		}
	}
	if len(methods) == 0 {
		methods = pq.StringArray{string(simulator.MethodCard), string(simulator.MethodPix)}
	}
	return methods
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nao", "não", "false", "0", "n":
		return false
	}
	return true
}
