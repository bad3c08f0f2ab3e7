// Package sheets reads catalog and course rows from Google Sheets.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

type Config struct {
	APIKey             string
	CatalogSpreadsheet string
	CatalogRange       string
}

// Client fetches values through the Sheets v4 API.
type Client struct {
	svc *gsheets.Service
	cfg Config
}

// NewClient creates a Sheets client authenticated with an API key.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	svc, err := gsheets.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("new sheets service: %w", err)
	}

	return &Client{svc: svc, cfg: cfg}, nil
}

// FetchCatalog returns the catalog rows in sheet order.
func (c *Client) FetchCatalog(ctx context.Context) ([]entities.Course, error) {
	values, err := c.values(ctx, c.cfg.CatalogSpreadsheet, c.cfg.CatalogRange)
	if err != nil {
		return nil, err
	}
	return parseCatalog(toRecords(values)), nil
}

// FetchCourse returns the rows of the course sheet behind link.
func (c *Client) FetchCourse(ctx context.Context, link string) ([]entities.CourseEntry, error) {
	spreadsheetID, readRange, err := parseValuesLink(link)
	if err != nil {
		return nil, err
	}

	values, err := c.values(ctx, spreadsheetID, readRange)
	if err != nil {
		return nil, err
	}
	return parseCourse(toRecords(values)), nil
}

func (c *Client) values(ctx context.Context, spreadsheetID, readRange string) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get values %s!%s: %w", spreadsheetID, readRange, err)
	}
	return resp.Values, nil
}
