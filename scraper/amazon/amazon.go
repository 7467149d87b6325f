package amazon

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"watch-analytics/config"
	"watch-analytics/models"
	"watch-analytics/utils"
)

// Scraper crawls watch search-result pages and listing detail pages,
// emitting RawListings for the pipeline.
type Scraper struct {
	cfg        *config.Config
	logger     *utils.Logger
	pool       *utils.WorkerPool
	visitedURL *utils.URLSet
	retry      *utils.RetryConfig

	mu       sync.Mutex
	listings []*models.RawListing
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:        cfg,
		logger:     logger,
		pool:       utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visitedURL: utils.NewURLSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		listings: make([]*models.RawListing, 0),
	}
}

// Scrape drives search-result pagination and detail-page scraping.
func (s *Scraper) Scrape() ([]*models.RawListing, error) {
	s.logger.Info("[amazon] Starting scrape — target: %d pages from %s",
		s.cfg.PagesToScrape, s.cfg.SearchURL)

	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[amazon] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()
	allocCtx = silentCtx

	for page := 1; page <= s.cfg.PagesToScrape; page++ {
		pageURL := searchPageURL(s.cfg.SearchURL, page)
		s.logger.Info("[amazon] Scraping page %d — URL: %s", page, pageURL)

		pageListings, err := s.scrapeSearchPage(allocCtx, pageURL, page)
		if err != nil {
			s.logger.Error("[amazon] Page %d failed: %v", page, err)
			break
		}
		if len(pageListings) == 0 {
			s.logger.Warn("[amazon] Page %d returned 0 listings — stopping", page)
			break
		}

		s.enrichListings(allocCtx, pageListings)

		s.mu.Lock()
		s.listings = append(s.listings, pageListings...)
		s.mu.Unlock()

		s.logger.Info("[amazon] Page %d done — collected %d listings so far", page, len(s.listings))
		time.Sleep(time.Duration(s.cfg.RateLimitMs) * time.Millisecond)
	}

	s.logger.Info("[amazon] Scrape complete — total raw listings: %d", len(s.listings))
	return s.listings, nil
}

// searchPageURL appends or replaces the page parameter on the search URL.
func searchPageURL(base string, page int) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("page", fmt.Sprintf("%d", page))
	u.RawQuery = q.Encode()
	return u.String()
}

// scrapeSearchPage renders one search-results page and parses the listing
// cards out of the final HTML.
func (s *Scraper) scrapeSearchPage(allocCtx context.Context, pageURL string, pageNum int) ([]*models.RawListing, error) {
	var listings []*models.RawListing

	err := s.retry.Do(fmt.Sprintf("scrape-page-%d", pageNum), func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		var html string
		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(5*time.Second),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),
			chromedp.OuterHTML("html", &html),
		)
		if err != nil {
			return fmt.Errorf("chromedp page render: %w", err)
		}

		parsed, err := s.parseSearchHTML(html, pageURL)
		if err != nil {
			return err
		}

		listings = listings[:0]
		for _, l := range parsed {
			if !s.visitedURL.Add(l.URL) {
				s.logger.Debug("[amazon] Skipping duplicate: %s", l.URL)
				continue
			}
			listings = append(listings, l)
		}
		return nil
	})

	return listings, err
}

// parseSearchHTML extracts listing cards from rendered search-result HTML.
func (s *Scraper) parseSearchHTML(html, pageURL string) ([]*models.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse search html: %w", err)
	}

	base, _ := url.Parse(pageURL)

	var listings []*models.RawListing
	doc.Find(`div[data-component-type="s-search-result"]`).Each(func(_ int, card *goquery.Selection) {
		link := card.Find("h2 a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}
		listingURL := href
		if base != nil {
			if abs, err := base.Parse(href); err == nil {
				listingURL = abs.String()
			}
		}

		name := strings.TrimSpace(link.Text())
		if name == "" {
			name = strings.TrimSpace(card.Find("h2").First().Text())
		}

		price := strings.TrimSpace(card.Find("span.a-price > span.a-offscreen").First().Text())
		ratings := strings.TrimSpace(card.Find("span.a-icon-alt").First().Text())
		image, _ := card.Find("img.s-image").First().Attr("src")

		var discount string
		card.Find("span").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := strings.TrimSpace(sel.Text())
			if strings.Contains(text, "% off") {
				discount = text
				return false
			}
			return true
		})

		listings = append(listings, &models.RawListing{
			URL:         listingURL,
			ProductName: name,
			RawPrice:    price,
			Ratings:     ratings,
			Discount:    discount,
			ImageURL:    image,
			ScrapedAt:   time.Now(),
		})
	})

	return listings, nil
}

// enrichListings visits detail pages to pick up the specification blob and
// model number that search cards never carry.
func (s *Scraper) enrichListings(allocCtx context.Context, listings []*models.RawListing) {
	for _, listing := range listings {
		l := listing
		if l.URL == "" {
			continue
		}

		s.pool.Submit(func() {
			specs, model, brand, err := s.scrapeDetailPage(allocCtx, l.URL)
			if err != nil {
				s.logger.Warn("[amazon] Detail page failed for %s: %v", l.URL, err)
				return
			}
			l.Specs = specs
			if l.ModelNumber == "" {
				l.ModelNumber = model
			}
			if l.BrandName == "" {
				l.BrandName = brand
			}
			s.logger.Debug("[amazon] Enriched: %s", l.ProductName)
		})
	}
	s.pool.Wait()
}

// scrapeDetailPage renders a listing detail page and extracts the "Watch
// Information" label/value section as a newline-delimited blob, plus the
// model number and brand rows when present.
func (s *Scraper) scrapeDetailPage(allocCtx context.Context, listingURL string) (specs, model, brand string, err error) {
	err = s.retry.Do("detail-page", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		var html string
		runErr := chromedp.Run(ctx,
			chromedp.Navigate(listingURL),
			chromedp.Sleep(4*time.Second),
			chromedp.OuterHTML("html", &html),
		)
		if runErr != nil {
			return fmt.Errorf("chromedp detail render: %w", runErr)
		}

		doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(html))
		if parseErr != nil {
			return fmt.Errorf("parse detail html: %w", parseErr)
		}

		var lines []string
		doc.Find("#productDetails_techSpec_section_1 tr, table.prodDetTable tr").Each(func(_ int, row *goquery.Selection) {
			label := strings.TrimSpace(row.Find("th").First().Text())
			value := strings.TrimSpace(row.Find("td").First().Text())
			value = strings.Trim(value, "‎‏ \t")
			if label == "" || value == "" {
				return
			}
			lines = append(lines, label, value)

			switch strings.ToLower(label) {
			case "item model number", "model number":
				model = value
			case "brand":
				brand = value
			}
		})

		if len(lines) > 0 {
			specs = "Watch Information\n" + strings.Join(lines, "\n")
		}
		return nil
	})

	return specs, model, brand, err
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
