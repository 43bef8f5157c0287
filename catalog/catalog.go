// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tailscale/hujson"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/giftquiz/models"
)

// Default dataset file names inside a data directory.
const (
	QuestionsFile = "intrebari.json"
	GiftsFile     = "daruri.json"
)

var ErrStatus = errors.New("unexpected response status")

// Catalog holds the immutable question list and gift catalog.
type Catalog struct {
	Questions []models.Question
	Gifts     []models.Gift
}

// Source locates the two datasets. Each location is a file path or an
// http(s) URL.
type Source struct {
	Questions string
	Gifts     string
	Client    *http.Client
}

// DirSource returns a Source for the default file names under dir.
func DirSource(dir string) Source {
	return Source{
		Questions: filepath.Join(dir, QuestionsFile),
		Gifts:     filepath.Join(dir, GiftsFile),
	}
}

// Load fetches both datasets concurrently. A failure in either one fails
// the whole load; no partial catalog is returned.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	var cat Catalog

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := fetchJSON(ctx, src, src.Questions, &cat.Questions); err != nil {
			return fmt.Errorf("load questions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := fetchJSON(ctx, src, src.Gifts, &cat.Gifts); err != nil {
			return fmt.Errorf("load gifts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &cat, nil
}

func fetchJSON(ctx context.Context, src Source, location string, v any) error {
	if location == "" {
		return errors.New("no location configured")
	}

	data, err := read(ctx, src.Client, location)
	if err != nil {
		return err
	}

	// Datasets may carry comments or trailing commas.
	std, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", location, err)
	}
	if err := json.Unmarshal(std, v); err != nil {
		return fmt.Errorf("decode %s: %w", location, err)
	}
	return nil
}

func read(ctx context.Context, client *http.Client, location string) ([]byte, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", location, err)
		}
		return data, nil
	}

	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", location, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %w: %d", location, ErrStatus, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", location, err)
	}
	return data, nil
}

// TotalPages returns the number of quiz pages.
func (c *Catalog) TotalPages() int {
	n := len(c.Questions)
	return (n + models.QuestionsPerPage - 1) / models.QuestionsPerPage
}

// PageBounds returns the half-open question index range shown on page.
// page must already be clamped to [1, TotalPages()].
func (c *Catalog) PageBounds(page int) (start, end int) {
	start = (page - 1) * models.QuestionsPerPage
	end = min(start+models.QuestionsPerPage, len(c.Questions))
	if start > end {
		start = end
	}
	return start, end
}

// Gift looks up a gift by code, ignoring case.
func (c *Catalog) Gift(code string) (models.Gift, bool) {
	for _, g := range c.Gifts {
		if strings.EqualFold(g.Code, code) {
			return g, true
		}
	}
	return models.Gift{}, false
}

// Validate reports shape mismatches against the expected questionnaire.
// The catalog is usable either way; callers only log the result.
func (c *Catalog) Validate() error {
	var errs []error
	if len(c.Questions) != models.TotalQuestions {
		errs = append(errs, fmt.Errorf("expected %d questions, got %d", models.TotalQuestions, len(c.Questions)))
	}
	if len(c.Gifts) != models.TotalGifts {
		errs = append(errs, fmt.Errorf("expected %d gifts, got %d", models.TotalGifts, len(c.Gifts)))
	}

	owned := make(map[string]int, len(c.Gifts))
	for _, g := range c.Gifts {
		owned[g.Code] = 0
	}
	for _, q := range c.Questions {
		if _, ok := owned[q.GiftCode]; !ok {
			errs = append(errs, fmt.Errorf("question %d references unknown gift %q", q.Number, q.GiftCode))
			continue
		}
		owned[q.GiftCode]++
	}
	for _, g := range c.Gifts {
		if owned[g.Code] != models.QuestionsPerGift {
			errs = append(errs, fmt.Errorf("gift %q owns %d questions, expected %d", g.Code, owned[g.Code], models.QuestionsPerGift))
		}
	}

	return errors.Join(errs...)
}
