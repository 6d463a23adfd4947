package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mbeutler/homegate-go/internal/utils"
)

// The Sheets API caps request sizes, so rows go out in batches.
const sheetsBatchSize = 500

func appendRentStatistics(ctx context.Context, credentialsFilePath string, spreadsheetID string, dataRange string, currentTime time.Time, rows []rentStatRow) error {
	b, err := os.ReadFile(credentialsFilePath)
	if err != nil {
		return fmt.Errorf("can't read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(b, "https://www.googleapis.com/auth/spreadsheets")
	if err != nil {
		return fmt.Errorf("can't parse credentials file: %w", err)
	}

	client := config.Client(ctx)

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("can't create sheets service: %w", err)
	}

	timestamp := currentTime.UTC().Format(time.DateTime)

	for _, chunk := range utils.Chunks(rows, sheetsBatchSize) {
		var vr sheets.ValueRange

		for _, row := range chunk {
			vr.Values = append(vr.Values, []interface{}{
				timestamp,
				row.Locality,
				row.Rooms,
				row.Listings,
				row.MedianRent,
			})
		}

		_, err = srv.Spreadsheets.Values.Append(spreadsheetID, dataRange, &vr).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("can't write data to sheet: %w", err)
		}
	}

	return nil
}
