package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/audit-data/openmeteo-hourly/internal/timeseries"
	"github.com/audit-data/openmeteo-hourly/internal/weather"
	"github.com/audit-data/openmeteo-hourly/internal/weather/providers"
)

// Example location: Grenoble.
const (
	exampleLatitude  = 45.13573722040256
	exampleLongitude = 5.714254381300856
	exampleTimezone  = "Europe/Paris"
)

func main() {
	client := &http.Client{Timeout: 10 * time.Second}
	provider := providers.NewOpenMeteoProvider(client)
	service := weather.NewService(provider)

	table, err := service.HourlyTemperatures(context.Background(), weather.Query{
		Latitude:  exampleLatitude,
		Longitude: exampleLongitude,
		Timezone:  exampleTimezone,
	})
	if err != nil {
		log.Fatalf("failed to fetch hourly temperatures: %v", err)
	}

	fmt.Println("Next 24 hours:")
	printTable(os.Stdout, table.Head(24))
}

// printTable renders the series as an aligned two-column text table. Missing
// values print as NaN.
func printTable(w io.Writer, table *timeseries.Table) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "time\t%s\n", table.Column())
	for _, p := range table.Points() {
		value := "NaN"
		if p.Value != nil {
			value = strconv.FormatFloat(*p.Value, 'f', -1, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\n", p.Time.Format("2006-01-02T15:04"), value)
	}
	tw.Flush()
}
