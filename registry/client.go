/*
Package registry is the HTTP client for the legacy inventory API.

PURPOSE:
  Existing deployments keep their asset records behind the old remote
  REST API. This client pulls those records so they can be imported
  into the local store, translating the legacy JSON shape (assetName,
  assetCost, lifeSpan as loosely-typed fields) into the domain model.

ENDPOINTS CONSUMED:
  GET /api/asset/get/all      Full inventory dump
  GET /api/asset/get/{id}     Single record

TRANSLATION RULES:
  - assetCost arrives as a JSON number or numeric string; both are
    accepted and parsed as exact decimals. Unparsable costs become 0
    rather than failing the whole import.
  - purchaseDate is passed through as-is; the depreciation engine owns
    date parsing and its forgiving degradation.
  - _id becomes the asset ID so re-imports are idempotent upserts.
*/
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/assettrack/asset-engine/asset"
)

// Client is a resty-backed legacy inventory API client.
type Client struct {
	httpClient *resty.Client
	log        *zap.Logger
}

// NewClient builds a legacy API client for the given base URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		// The hosted legacy API sits behind an ngrok tunnel; without
		// this header it answers with an interstitial page.
		SetHeader("ngrok-skip-browser-warning", "true").
		SetTimeout(30 * time.Second)

	return &Client{httpClient: restyClient, log: logger}
}

// legacyAsset mirrors the legacy API's record shape.
type legacyAsset struct {
	ID           string          `json:"_id"`
	AssetName    string          `json:"assetName"`
	Category     string          `json:"category"`
	SerialNumber string          `json:"serialNumber"`
	Description  string          `json:"description"`
	IssuedTo     string          `json:"issuedTo"`
	Status       string          `json:"status"`
	AssetCost    json.RawMessage `json:"assetCost"`
	LifeSpan     json.RawMessage `json:"lifeSpan"`
	PurchaseDate string          `json:"purchaseDate"`
	CreatedAt    string          `json:"createdAt"`
}

// FetchAll pulls every asset record from the legacy API.
func (c *Client) FetchAll(ctx context.Context) ([]asset.Asset, error) {
	var records []legacyAsset

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&records).
		Get("/api/asset/get/all")
	if err != nil {
		return nil, fmt.Errorf("legacy api request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("legacy api returned %s", resp.Status())
	}

	assets := make([]asset.Asset, 0, len(records))
	for _, r := range records {
		assets = append(assets, c.translate(r))
	}
	c.log.Info("fetched legacy inventory",
		zap.Int("records", len(assets)))
	return assets, nil
}

// FetchOne pulls a single asset record by legacy ID.
func (c *Client) FetchOne(ctx context.Context, id string) (*asset.Asset, error) {
	var record legacyAsset

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&record).
		Get("/api/asset/get/" + id)
	if err != nil {
		return nil, fmt.Errorf("legacy api request failed: %w", err)
	}
	if resp.StatusCode() == 404 {
		return nil, asset.ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("legacy api returned %s", resp.Status())
	}

	a := c.translate(record)
	return &a, nil
}

func (c *Client) translate(r legacyAsset) asset.Asset {
	a := asset.Asset{
		ID:           r.ID,
		Name:         r.AssetName,
		Category:     r.Category,
		SerialNumber: r.SerialNumber,
		Description:  r.Description,
		IssuedTo:     r.IssuedTo,
		Status:       r.Status,
		Cost:         parseLooseDecimal(r.AssetCost),
		LifeSpan:     parseLooseInt(r.LifeSpan),
		PurchaseDate: r.PurchaseDate,
	}
	if a.ID == "" {
		a.ID = asset.NewID()
	}
	if created, err := asset.ParseDate(r.CreatedAt); err == nil {
		a.CreatedAt = created
	}
	return a
}

// parseLooseDecimal accepts a JSON number or a numeric string. The
// legacy database stored costs both ways over its lifetime.
func parseLooseDecimal(raw json.RawMessage) decimal.Decimal {
	if len(raw) == 0 {
		return decimal.Zero
	}
	s := strings.Trim(string(raw), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseLooseInt(raw json.RawMessage) int {
	d := parseLooseDecimal(raw)
	return int(d.IntPart())
}
