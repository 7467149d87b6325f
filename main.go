package main

import (
	"fmt"
	"os"

	"watch-analytics/config"
	"watch-analytics/models"
	"watch-analytics/scraper/amazon"
	"watch-analytics/services"
	"watch-analytics/storage"
	"watch-analytics/utils"
)

// Output table names consumed by the dashboard. Each run fully replaces
// these tables.
const (
	rawListingsTable   = "raw_listings"
	cleanedTable       = "product_price_cleaned"
	menDatasetTable    = "Final_Watch_Dataset_Men_output"
	womenDatasetTable  = "Final_Watch_Dataset_Women_output"
	bestRankTable      = "Best Rank_All"
	brandTotalsTable   = "Brand Totals"
	fineSKUMenTable    = "sku_table_men"
	fineSKUWomenTable  = "sku_table_women"
	top1000Table       = "Top 1000 - Summary"
	top1000MenTable    = "Top 1000 - Men"
	top1000WomenTable  = "Top 1000 - Women"
	allProductsTable   = "All - Product Count"
	menProductsTable   = "Men - Product Count"
	womenProductsTable = "Women - Product Count"
	allSKUsTable       = "All - SKU Count"
	menSKUsTable       = "Men - SKU Count"
	womenSKUsTable     = "Women - SKU Count"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Watch Market Analytics starting ===")
	logger.Info("Config — scrape: %t | pages: %d | concurrency: %d | rate: %dms",
		cfg.ScrapeEnabled, cfg.PagesToScrape, cfg.MaxConcurrency, cfg.RateLimitMs)

	store, err := storage.NewPostgresStore(cfg.DSN(), logger)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer store.Close()

	rawListings := loadRawListings(cfg, store, logger)
	if len(rawListings) == 0 {
		logger.Error("No listings available. Exiting.")
		os.Exit(1)
	}

	cleaner := services.NewCleaner(logger)
	records := cleaner.Clean(rawListings)
	if len(records) == 0 {
		logger.Error("All listings were dropped during cleaning. Exiting.")
		os.Exit(1)
	}

	if err := store.ReplaceCatalogTable(cleanedTable, records); err != nil {
		logger.Error("Failed to store cleaned catalog: %v", err)
		os.Exit(1)
	}
	logger.Info("Cleaned catalog stored (table: %s, %d rows)", cleanedTable, len(records))

	aggregator := services.NewAggregator(logger)
	report := aggregator.Generate(records)

	if err := persistReport(store, report); err != nil {
		logger.Error("Failed to store summary tables: %v", err)
		os.Exit(1)
	}

	excelWriter, err := storage.NewExcelWriter(cfg.ExcelReportPath)
	if err != nil {
		logger.Error("Failed to create Excel writer: %v", err)
		os.Exit(1)
	}
	if err := excelWriter.Write(report); err != nil {
		logger.Error("Excel export failed: %v", err)
	} else {
		logger.Info("Summary workbook saved to %s", cfg.ExcelReportPath)
	}

	buildAttributeDatasets(cfg, store, logger)

	aggregator.Print(report)

	fmt.Printf("  Done. Summary tables → PostgreSQL | Workbook → %s\n\n", cfg.ExcelReportPath)
}

// loadRawListings either runs the scraper or reads previously ingested rows
// from the catalog table. A missing source is fatal: the batch produces no
// partial output.
func loadRawListings(cfg *config.Config, store *storage.PostgresStore, logger *utils.Logger) []*models.RawListing {
	if !cfg.ScrapeEnabled {
		listings, err := store.FetchListings(cfg.CatalogTable)
		if err != nil {
			logger.Error("Failed to read catalog table %q: %v", cfg.CatalogTable, err)
			os.Exit(1)
		}
		return listings
	}

	watchScraper := amazon.New(cfg, logger)
	listings, err := watchScraper.Scrape()
	if err != nil {
		logger.Error("Scrape failed: %v", err)
	}
	if len(listings) == 0 {
		return nil
	}

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
	} else {
		defer csvWriter.Close()
		if err := csvWriter.WriteRaw(listings); err != nil {
			logger.Error("CSV write failed: %v", err)
		} else {
			logger.Info("Raw listings saved to %s", cfg.CSVOutputPath)
		}
	}

	if err := store.ReplaceRawListings(rawListingsTable, listings); err != nil {
		logger.Error("Failed to store raw listings: %v", err)
	}
	return listings
}

// persistReport replaces every summary table the dashboard reads.
func persistReport(store *storage.PostgresStore, report *models.SummaryReport) error {
	pivots := []struct {
		table string
		pivot models.PivotTable
	}{
		{allProductsTable, report.AllProducts},
		{menProductsTable, report.MenProducts},
		{womenProductsTable, report.WomenProducts},
		{allSKUsTable, report.AllSKUs},
		{menSKUsTable, report.MenSKUs},
		{womenSKUsTable, report.WomenSKUs},
		{fineSKUMenTable, report.FineSKUMen},
		{fineSKUWomenTable, report.FineSKUWomen},
	}
	for _, p := range pivots {
		if err := store.ReplacePivotTable(p.table, p.pivot); err != nil {
			return err
		}
	}

	if err := store.ReplaceBrandTotals(brandTotalsTable, report.BrandTotals,
		"Total Product Count", "Total SKU Count"); err != nil {
		return err
	}
	if err := store.ReplaceBrandTotals(top1000Table, report.Top1000,
		"Top 1000 Product Count", "Top 1000 SKU Count"); err != nil {
		return err
	}
	if err := store.ReplaceBrandTotals(top1000MenTable, report.Top1000Men,
		"Men - Product Count (Top 1000)", "Men - SKU Count (Top 1000)"); err != nil {
		return err
	}
	if err := store.ReplaceBrandTotals(top1000WomenTable, report.Top1000Women,
		"Women - Product Count (Top 1000)", "Women - SKU Count (Top 1000)"); err != nil {
		return err
	}

	return store.ReplaceBrandRanks(bestRankTable, report.BestRank, "Best Rank (First Appearance)")
}

// buildAttributeDatasets produces the fixed 20-column normalized attribute
// table per gender segment, reconciling each primary source against its
// "filled" fallback table.
func buildAttributeDatasets(cfg *config.Config, store *storage.PostgresStore, logger *utils.Logger) {
	builder := services.NewAttributeBuilder(logger)
	reconciler := services.NewReconciler(logger)

	segments := []struct {
		name   string
		source string
		filled string
		output string
	}{
		{"Men", cfg.MenTable, cfg.MenFilledTable, menDatasetTable},
		{"Women", cfg.WomenTable, cfg.WomenFilledTable, womenDatasetTable},
	}

	for _, seg := range segments {
		listings, err := store.FetchListings(seg.source)
		if err != nil {
			logger.Error("Failed to read %s source table %q: %v", seg.name, seg.source, err)
			os.Exit(1)
		}

		fallback, err := store.FetchFallbackRows(seg.filled)
		if err != nil {
			logger.Error("Failed to read %s fallback table %q: %v", seg.name, seg.filled, err)
			os.Exit(1)
		}

		rows := builder.Build(listings)
		rows = reconciler.Apply(rows, fallback)
		rows = builder.NormalizeDimensions(rows)

		if err := store.ReplaceAttributeTable(seg.output, rows); err != nil {
			logger.Error("Failed to store %s attribute dataset: %v", seg.name, err)
			os.Exit(1)
		}
		logger.Info("%s attribute dataset stored (table: %s, %d rows)", seg.name, seg.output, len(rows))
	}
}
