//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// sample describes one catalogue entry written to the seed file.
type sample struct {
	name, sku, brand, category, gender, collection, material string
	price, discount                                         string
	stock, reviews                                          int
	rating                                                  float64
	sizes, colors                                           []string
}

// main writes data/products.jsonl.gz, one product per line, for cmd/seed.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	samples := []sample{
		{"Classic Oxford Button-Down Shirt", "OX-SH-001", "Urban Threads", "Top Wear", "Men", "Business Casual", "Cotton", "39.99", "34.99", 20, 12, 4.5, []string{"S", "M", "L", "XL"}, []string{"Red", "Blue", "Yellow"}},
		{"Slim-Fit Stretch Shirt", "SLIM-SH-002", "Modern Fit", "Top Wear", "Men", "Formal Wear", "Cotton Blend", "29.99", "24.99", 35, 15, 4.8, []string{"S", "M", "L", "XL"}, []string{"Black", "Navy Blue", "Burgundy"}},
		{"Casual Denim Shirt", "CAS-DEN-003", "Street Style", "Top Wear", "Men", "Casual Wear", "Denim", "49.99", "44.99", 15, 8, 4.6, []string{"S", "M", "L", "XL", "XXL"}, []string{"Light Blue", "Dark Wash"}},
		{"Slim Fit Joggers", "BW-001", "ActiveWear", "Bottom Wear", "Men", "Casual Collection", "Cotton Blend", "40.00", "35.00", 20, 12, 4.5, []string{"S", "M", "L", "XL"}, []string{"Black", "Gray", "Navy"}},
		{"Knit Cropped Top", "TW-W-001", "ChicKnits", "Top Wear", "Women", "Knits Collection", "Cotton", "40.00", "35.00", 25, 22, 4.7, []string{"XS", "S", "M", "L"}, []string{"Black", "White", "Pink"}},
		{"High-Waist Skinny Jeans", "BW-W-001", "DenimStyle", "Bottom Wear", "Women", "Denim Collection", "Denim", "50.00", "45.00", 30, 40, 4.6, []string{"XS", "S", "M", "L", "XL"}, []string{"Blue", "Black", "Gray"}},
		{"Off-Shoulder Top", "TW-W-002", "Elegance", "Top Wear", "Women", "Summer Collection", "Viscose", "45.00", "40.00", 25, 20, 4.6, []string{"XS", "S", "M", "L"}, []string{"White", "Black", "Red"}},
		{"Wide-Leg Trousers", "BW-W-002", "ChicStyle", "Bottom Wear", "Women", "Formal Collection", "Polyester", "60.00", "55.00", 20, 25, 4.5, []string{"S", "M", "L", "XL"}, []string{"White", "Black", "Beige"}},
	}

	filePath := filepath.Join(dataDir, "products.jsonl.gz")
	if err := createProductFile(filePath, samples); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d products\n", filePath, len(samples))
}

func createProductFile(filePath string, samples []sample) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := json.NewEncoder(gzipWriter)
	for i, s := range samples {
		discount := decimal.RequireFromString(s.discount)
		p := model.Product{
			Name:          s.name,
			Description:   fmt.Sprintf("%s from %s.", s.name, s.brand),
			Price:         decimal.RequireFromString(s.price),
			DiscountPrice: &discount,
			CountInStock:  s.stock,
			SKU:           s.sku,
			Category:      s.category,
			Brand:         s.brand,
			Sizes:         s.sizes,
			Colors:        s.colors,
			Collections:   s.collection,
			Material:      s.material,
			Gender:        s.gender,
			Images: []model.ProductImage{{
				URL:     fmt.Sprintf("https://picsum.photos/500/500?random=%d", i+1),
				AltText: s.name,
			}},
			IsPublished: true,
			Rating:      s.rating,
			NumReviews:  s.reviews,
		}
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to write product: %w", err)
		}
	}

	return nil
}
