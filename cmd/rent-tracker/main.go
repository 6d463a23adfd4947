// Command rent-tracker sweeps a polygon for rental listings, aggregates
// median rents by locality and room count, and exports the numbers to
// ClickHouse and/or a Google Sheet. Run it from cron to build a rent time
// series for an area.
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	homegate "github.com/mbeutler/homegate-go"
)

func main() {
	var configFilePath string
	flag.StringVar(&configFilePath, "c", "config.yaml", "path to config file")

	var geojsonFilePath string
	flag.StringVar(&geojsonFilePath, "f", "area.geojson", "path to GeoJSON file with the search area")

	var verbose bool
	flag.BoolVar(&verbose, "v", false, "verbose logging")

	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	config, err := newConfig(configFilePath)
	if err != nil {
		log.Fatalf("can't get config: %s", err)
	}

	geojson, err := os.ReadFile(geojsonFilePath)
	if err != nil {
		log.Fatalf("can't read search area file: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if config.Database.Enabled {
		db = clickhouse.OpenDB(&clickhouse.Options{
			Addr: []string{config.Database.Address},
			Auth: clickhouse.Auth{
				Database: config.Database.Database,
				Username: config.Database.Username,
				Password: config.Database.Password,
			},
		})

		if err := upMigrations(db); err != nil {
			log.Fatalf("can't up migrations: %s", err)
		}
	}

	client := homegate.NewClient(homegate.Config{Logger: log})

	listings, err := client.SearchArea(ctx, string(geojson), searchRequest(config), homegate.AreaSearchOptions{
		CellSizeMeters: config.Search.CellSizeMeters,
		MaxWorkers:     config.Search.MaxWorkers,
		OnProgress: func(current, total int) {
			log.Debugf("finished cell %d of %d", current, total)
		},
	})
	if err != nil {
		log.Fatalf("can't collect listings: %s", err)
	}

	log.Infof("collected %d listings", len(listings))

	rows := rentStatistics(listings)
	if len(rows) == 0 {
		log.Warn("no listings with rent and locality, nothing to export")
		return
	}

	currentTime := time.Now()

	g, gctx := errgroup.WithContext(ctx)

	if config.Database.Enabled {
		g.Go(func() error {
			return saveRentStatistics(gctx, db, currentTime, rows)
		})
	}

	if config.Sheets.Enabled {
		g.Go(func() error {
			return appendRentStatistics(gctx, config.Sheets.CredentialsFile, config.Sheets.SpreadsheetID, config.Sheets.DataRange, currentTime, rows)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("can't export statistics: %s", err)
	}

	log.Infof("exported %d statistics rows", len(rows))
}

// searchRequest turns the config's filter section into a rental search. The
// location is left at its default, SearchArea replaces it per covering cell.
func searchRequest(config *Config) *homegate.SearchRequest {
	req := homegate.DefaultSearchRequest()

	req.Query.MonthlyRent = homegate.FromTo{
		From: config.Search.MonthlyRentFrom,
		To:   config.Search.MonthlyRentTo,
	}

	for _, category := range config.Search.Categories {
		req.Query.Categories = append(req.Query.Categories, homegate.Category(category))
	}

	if config.Search.PageSize > 0 {
		req.Size = config.Search.PageSize
	}

	return req
}
