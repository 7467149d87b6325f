package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"watch-analytics/models"
	"watch-analytics/utils"
)

// insertBatchSize bounds the number of rows per INSERT statement.
const insertBatchSize = 50

// PostgresStore is the single connection object for the pipeline. It is
// constructed once at process start and passed into each stage — no
// module-scope database state.
type PostgresStore struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresStore opens a connection to PostgreSQL and verifies it with a
// few ping retries (the database container may still be starting).
func NewPostgresStore(dsn string, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	return &PostgresStore{db: db, logger: logger}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// listingColumnAliases maps source-table column spellings to RawListing
// fields. Ingested tables vary between url/product_url and
// price/product_price depending on which upload produced them.
var listingColumnAliases = map[string]string{
	"url":              "url",
	"product_url":      "url",
	"product_name":     "name",
	"price":            "price",
	"product_price":    "price",
	"brand_name":       "brand",
	"model_number":     "model",
	"ratings":          "ratings",
	"rating(out_of_5)": "ratings",
	"discount":         "discount",
	"imageurl":         "image",
	"image_url":        "image",
	"specs":            "specs",
}

// FetchListings reads every row of a primary listing table, tolerating the
// column-name drift between ingested tables.
func (s *PostgresStore) FetchListings(table string) ([]*models.RawListing, error) {
	rows, err := s.db.Query(fmt.Sprintf(`SELECT * FROM %s`, pq.QuoteIdentifier(table)))
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch listings from %q: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("postgres: columns of %q: %w", table, err)
	}

	var listings []*models.RawListing
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		scanArgs := make([]any, len(cols))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("postgres: scan %q: %w", table, err)
		}

		l := &models.RawListing{}
		for i, col := range cols {
			field, ok := listingColumnAliases[strings.ToLower(strings.TrimSpace(col))]
			if !ok || !values[i].Valid {
				continue
			}
			switch field {
			case "url":
				l.URL = values[i].String
			case "name":
				l.ProductName = values[i].String
			case "price":
				l.RawPrice = values[i].String
			case "brand":
				l.BrandName = values[i].String
			case "model":
				l.ModelNumber = values[i].String
			case "ratings":
				l.Ratings = values[i].String
			case "discount":
				l.Discount = values[i].String
			case "image":
				l.ImageURL = values[i].String
			case "specs":
				l.Specs = values[i].String
			}
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate %q: %w", table, err)
	}

	s.logger.Info("[postgres] Fetched %d listings from %q", len(listings), table)
	return listings, nil
}

// FetchFallbackRows reads a fallback table as raw column→value maps; the
// reconciler owns the renaming to canonical columns.
func (s *PostgresStore) FetchFallbackRows(table string) ([]map[string]string, error) {
	rows, err := s.db.Query(fmt.Sprintf(`SELECT * FROM %s`, pq.QuoteIdentifier(table)))
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch fallback from %q: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("postgres: columns of %q: %w", table, err)
	}

	var out []map[string]string
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		scanArgs := make([]any, len(cols))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("postgres: scan %q: %w", table, err)
		}

		row := make(map[string]string, len(cols))
		for i, col := range cols {
			if values[i].Valid {
				row[col] = values[i].String
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate %q: %w", table, err)
	}

	s.logger.Info("[postgres] Fetched %d fallback rows from %q", len(out), table)
	return out, nil
}

// ReplaceRawListings persists a scrape run, replacing any previous table.
func (s *PostgresStore) ReplaceRawListings(table string, listings []*models.RawListing) error {
	columns := []string{
		"url", "product_name", "brand_name", "model_number", "price",
		"ratings", "discount", "imageurl", "specs", "scraped_at",
	}
	rows := make([][]any, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, []any{
			l.URL, l.ProductName, l.BrandName, l.ModelNumber, l.RawPrice,
			l.Ratings, l.Discount, l.ImageURL, l.Specs, l.ScrapedAt.Format(time.RFC3339),
		})
	}
	return s.replaceTable(table, columns, nil, rows)
}

// ReplaceCatalogTable writes the cleaned catalog (product code, brand,
// gender, price band per listing).
func (s *PostgresStore) ReplaceCatalogTable(table string, records []*models.CatalogRecord) error {
	columns := []string{"url", "product_name", "product_price", "product_code", "brand", "gender_category", "price_range"}
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		var code any
		if rec.HasCode {
			code = rec.Code
		}
		var price any
		if rec.PriceOK {
			price = rec.Price
		}
		rows = append(rows, []any{
			rec.URL, rec.ProductName, price, code,
			rec.Brand.Label(), rec.Gender.String(), rec.Band.String(),
		})
	}
	return s.replaceTable(table, columns, map[string]string{"product_price": "NUMERIC"}, rows)
}

// ReplaceAttributeTable writes a normalized 20-column attribute table.
func (s *PostgresStore) ReplaceAttributeTable(table string, attrRows []models.AttributeRow) error {
	columns := models.AttributeColumns
	rows := make([][]any, 0, len(attrRows))
	for _, r := range attrRows {
		vals := make([]any, 0, len(columns))
		for _, col := range columns {
			vals = append(vals, r[col])
		}
		rows = append(rows, vals)
	}
	return s.replaceTable(table, columns, nil, rows)
}

// ReplacePivotTable writes a brand × band count matrix.
func (s *PostgresStore) ReplacePivotTable(table string, pivot models.PivotTable) error {
	columns := append([]string{"brand"}, pivot.Columns...)
	types := make(map[string]string, len(pivot.Columns))
	for _, col := range pivot.Columns {
		types[col] = "INTEGER"
	}
	rows := make([][]any, 0, len(pivot.Rows))
	for _, r := range pivot.Rows {
		vals := make([]any, 0, len(columns))
		vals = append(vals, r.Brand)
		for _, col := range pivot.Columns {
			vals = append(vals, r.Counts[col])
		}
		rows = append(rows, vals)
	}
	return s.replaceTable(table, columns, types, rows)
}

// ReplaceBrandTotals writes per-brand product and SKU counts with
// report-specific column titles.
func (s *PostgresStore) ReplaceBrandTotals(table string, totals []models.BrandTotal, productsCol, skusCol string) error {
	columns := []string{"brand", productsCol, skusCol}
	rows := make([][]any, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []any{t.Brand, t.Products, t.SKUs})
	}
	return s.replaceTable(table, columns, map[string]string{productsCol: "INTEGER", skusCol: "INTEGER"}, rows)
}

// ReplaceBrandRanks writes the best-rank-per-brand table.
func (s *PostgresStore) ReplaceBrandRanks(table string, ranks []models.BrandRank, rankCol string) error {
	columns := []string{"brand", rankCol}
	rows := make([][]any, 0, len(ranks))
	for _, r := range ranks {
		rows = append(rows, []any{r.Brand, r.Rank})
	}
	return s.replaceTable(table, columns, map[string]string{rankCol: "INTEGER"}, rows)
}

// replaceTable drops and recreates a table, then batch-inserts its rows.
// The replacement is table-level last-writer-wins: the drop and the inserts
// share one transaction, but a multi-table write sequence is not atomic as a
// whole.
func (s *PostgresStore) replaceTable(table string, columns []string, types map[string]string, rows [][]any) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin replace of %q: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, pq.QuoteIdentifier(table))); err != nil {
		return fmt.Errorf("postgres: drop %q: %w", table, err)
	}

	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		colType := "TEXT"
		if t, ok := types[col]; ok {
			colType = t
		}
		defs = append(defs, pq.QuoteIdentifier(col)+" "+colType)
	}
	createStmt := fmt.Sprintf(`CREATE TABLE %s (%s)`, pq.QuoteIdentifier(table), strings.Join(defs, ", "))
	if _, err := tx.Exec(createStmt); err != nil {
		return fmt.Errorf("postgres: create %q: %w", table, err)
	}

	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := insertBatch(tx, table, columns, rows[start:end]); err != nil {
			return fmt.Errorf("postgres: insert into %q: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit replace of %q: %w", table, err)
	}

	s.logger.Info("[postgres] Replaced table %q (%d rows)", table, len(rows))
	return nil
}

func insertBatch(tx *sql.Tx, table string, columns []string, batch [][]any) error {
	if len(batch) == 0 {
		return nil
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = pq.QuoteIdentifier(col)
	}

	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*len(columns))
	for idx, row := range batch {
		placeholders := make([]string, len(columns))
		base := idx * len(columns)
		for i := range columns {
			placeholders[i] = fmt.Sprintf("$%d", base+i+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs, row...)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES %s`,
		pq.QuoteIdentifier(table), strings.Join(quoted, ","), strings.Join(valueStrings, ","))

	_, err := tx.Exec(query, valueArgs...)
	return err
}
