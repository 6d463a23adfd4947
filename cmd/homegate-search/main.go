package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	homegate "github.com/mbeutler/homegate-go"
)

type searchArgs struct {
	lat    float64
	lon    float64
	radius int

	minPrice int
	maxPrice int
	minRooms float64
	maxRooms float64
	minSpace int
	maxSpace int

	categories        string
	excludeCategories string

	page     int
	pageSize int

	asJSON  bool
	verbose bool
}

func main() {
	var args searchArgs
	flag.Float64Var(&args.lat, "lat", 0, "latitude (-90 to 90)")
	flag.Float64Var(&args.lon, "lon", 0, "longitude (-180 to 180)")
	flag.IntVar(&args.radius, "radius", 5000, "search radius in meters (max 49999)")
	flag.IntVar(&args.minPrice, "min-price", -1, "minimum monthly rent in CHF")
	flag.IntVar(&args.maxPrice, "max-price", -1, "maximum monthly rent in CHF")
	flag.Float64Var(&args.minRooms, "min-rooms", -1, "minimum number of rooms (fractional values like 2.5 are valid)")
	flag.Float64Var(&args.maxRooms, "max-rooms", -1, "maximum number of rooms")
	flag.IntVar(&args.minSpace, "min-space", -1, "minimum living space in m2")
	flag.IntVar(&args.maxSpace, "max-space", -1, "maximum living space in m2")
	flag.StringVar(&args.categories, "category", "", "comma-separated categories to include, e.g. FLAT,ATTIC_FLAT")
	flag.StringVar(&args.excludeCategories, "exclude-category", "", "comma-separated categories to exclude")
	flag.IntVar(&args.page, "page", 1, "page number (1-indexed)")
	flag.IntVar(&args.pageSize, "page-size", 20, "results per page")
	flag.BoolVar(&args.asJSON, "json", false, "output as JSON instead of a table")
	flag.BoolVar(&args.verbose, "v", false, "verbose logging")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if args.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := runSearch(context.Background(), log, args, os.Stdout); err != nil {
		log.Fatalf("search failed: %s", err)
	}
}

func runSearch(ctx context.Context, log *logrus.Logger, args searchArgs, out io.Writer) error {
	if args.page < 1 {
		return fmt.Errorf("page must be 1 or higher, got %d", args.page)
	}

	req, err := buildRequest(args)
	if err != nil {
		return err
	}

	client := homegate.NewClient(homegate.Config{Logger: log})

	page, err := client.Search(ctx, req)
	if err != nil {
		return err
	}

	if args.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	printTable(out, page, args.page, args.pageSize)
	return nil
}

func buildRequest(args searchArgs) (*homegate.SearchRequest, error) {
	req := homegate.DefaultSearchRequest()
	req.Query.Location = homegate.Location{
		Latitude:  args.lat,
		Longitude: args.lon,
		Radius:    args.radius,
	}

	if args.minPrice >= 0 {
		req.Query.MonthlyRent.From = homegate.Int(args.minPrice)
	}
	if args.maxPrice >= 0 {
		req.Query.MonthlyRent.To = homegate.Int(args.maxPrice)
	}
	if args.minRooms >= 0 {
		req.Query.NumberOfRooms.From = homegate.Float(args.minRooms)
	}
	if args.maxRooms >= 0 {
		req.Query.NumberOfRooms.To = homegate.Float(args.maxRooms)
	}
	if args.minSpace >= 0 {
		req.Query.LivingSpace.From = homegate.Int(args.minSpace)
	}
	if args.maxSpace >= 0 {
		req.Query.LivingSpace.To = homegate.Int(args.maxSpace)
	}

	req.Query.Categories = parseCategories(args.categories)
	req.Query.ExcludeCategories = parseCategories(args.excludeCategories)

	req.Size = args.pageSize
	req.From = (args.page - 1) * args.pageSize

	return req, nil
}

// parseCategories accepts the wire names in any case and with dashes, the
// way people type them.
func parseCategories(s string) []homegate.Category {
	if s == "" {
		return nil
	}

	var categories []homegate.Category
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name := strings.ReplaceAll(strings.ToUpper(part), "-", "_")
		categories = append(categories, homegate.Category(name))
	}
	return categories
}

func printTable(out io.Writer, page *homegate.SearchResponse, pageNum, pageSize int) {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tADDRESS\tROOMS\tSPACE\tPRICE (CHF)")

	for _, result := range page.Results {
		listing := result.Listing
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%s\n",
			listing.ID,
			formatAddress(listing.Address),
			listing.Characteristics.NumberOfRooms,
			formatSpace(listing.Characteristics),
			formatPrice(listing.Prices),
		)
	}
	w.Flush()

	if page.Total == 0 {
		fmt.Fprintln(out, "No results found")
		return
	}

	totalPages := (page.Total + pageSize - 1) / pageSize
	start := (pageNum-1)*pageSize + 1
	end := start + len(page.Results) - 1
	fmt.Fprintf(out, "Page %d of %d (%d-%d of %d results)\n", pageNum, totalPages, start, end, page.Total)
}

func formatAddress(addr homegate.Address) string {
	street := "-"
	if addr.Street != nil {
		street = *addr.Street
	}
	postalCode := ""
	if addr.PostalCode != nil {
		postalCode = *addr.PostalCode
	}
	locality := ""
	if addr.Locality != nil {
		locality = *addr.Locality
	}
	return fmt.Sprintf("%s, %s %s", street, postalCode, locality)
}

func formatSpace(ch homegate.Characteristics) string {
	if ch.LivingSpace == nil {
		return "-"
	}
	return fmt.Sprintf("%d m2", *ch.LivingSpace)
}

func formatPrice(prices homegate.Prices) string {
	if prices.Rent != nil {
		if prices.Rent.Gross != nil {
			return fmt.Sprintf("%d/mo", *prices.Rent.Gross)
		}
		if prices.Rent.Net != nil {
			return fmt.Sprintf("%d/mo (net)", *prices.Rent.Net)
		}
	}
	if prices.Buy != nil && prices.Buy.Gross != nil {
		return fmt.Sprintf("%d", *prices.Buy.Gross)
	}
	return "-"
}
