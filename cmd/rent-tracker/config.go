package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Search struct {
		CellSizeMeters  float64  `yaml:"cell_size_meters"`
		MaxWorkers      int      `yaml:"max_workers"`
		MonthlyRentFrom *int     `yaml:"monthly_rent_from"`
		MonthlyRentTo   *int     `yaml:"monthly_rent_to"`
		Categories      []string `yaml:"categories"`
		PageSize        int      `yaml:"page_size"`
	} `yaml:"search"`
	Database struct {
		Enabled  bool   `yaml:"enabled"`
		Address  string `yaml:"address"`
		Database string `yaml:"database"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"database"`
	Sheets struct {
		Enabled         bool   `yaml:"enabled"`
		CredentialsFile string `yaml:"credentials_file"`
		SpreadsheetID   string `yaml:"spreadsheet_id"`
		DataRange       string `yaml:"data_range"`
	} `yaml:"sheets"`
}

func newConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("can't open config file: %w", err)
	}
	defer file.Close()

	d := yaml.NewDecoder(file)

	if err := d.Decode(&config); err != nil {
		return nil, fmt.Errorf("can't parse config file: %w", err)
	}

	return config, nil
}
