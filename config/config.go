package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Scraper settings. When ScrapeEnabled is false the pipeline reads
	// previously ingested rows from the catalog table instead.
	ScrapeEnabled  bool
	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	PagesToScrape  int
	SearchURL      string
	ChromeBin      string

	// Source tables written by the ingestion collaborator.
	CatalogTable     string
	MenTable         string
	MenFilledTable   string
	WomenTable       string
	WomenFilledTable string

	CSVOutputPath   string
	ExcelReportPath string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "analytics"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "analytics123"),
		PostgresDB:       getEnv("POSTGRES_DB", "watch_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ScrapeEnabled:  getEnvBool("SCRAPE_ENABLED", false),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 2000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		PagesToScrape:  getEnvInt("PAGES_TO_SCRAPE", 2),
		SearchURL:      getEnv("SEARCH_URL", "https://www.amazon.in/s?k=watches"),
		ChromeBin:      getEnv("CHROME_BIN", ""),

		CatalogTable:     getEnv("CATALOG_TABLE", "product_price"),
		MenTable:         getEnv("MEN_TABLE", "top_100_men"),
		MenFilledTable:   getEnv("MEN_FILLED_TABLE", "top_100_men_filled"),
		WomenTable:       getEnv("WOMEN_TABLE", "top_100_women"),
		WomenFilledTable: getEnv("WOMEN_FILLED_TABLE", "top_100_women_filled"),

		CSVOutputPath:   getEnv("CSV_OUTPUT_PATH", "./output/raw_listings.csv"),
		ExcelReportPath: getEnv("EXCEL_REPORT_PATH", "./output/brand_summary.xlsx"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
