package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tanklogix/loadplan/core/model"
)

// Config points at the catalog files.
type Config struct {
	TrailersPath string `json:"trailers_path"`
	ProductsPath string `json:"products_path"`
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.TrailersPath == "" {
		return fmt.Errorf("trailers_path is required")
	}
	if c.ProductsPath == "" {
		return fmt.Errorf("products_path is required")
	}
	return nil
}

// LoadFiles reads the trailer and product catalogs from JSON files and builds
// a Store.
func LoadFiles(cfg Config) (*Store, error) {
	var trailers []Trailer
	if err := readJSON(cfg.TrailersPath, &trailers); err != nil {
		return nil, fmt.Errorf("trailer catalog: %w", err)
	}
	var products []model.Product
	if err := readJSON(cfg.ProductsPath, &products); err != nil {
		return nil, fmt.Errorf("product catalog: %w", err)
	}
	return NewStore(trailers, products)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
