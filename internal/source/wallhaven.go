package source

import (
	"context"
	"fmt"

	"resty.dev/v3"

	"wallshift/internal/config"
	"wallshift/internal/types"
)

const wallhavenBaseURL = "https://wallhaven.cc/api/v1"

// Wallhaven talks to the wallhaven.cc search API. An API key is optional
// and only needed for NSFW purity levels.
type Wallhaven struct {
	cfg     config.WallhavenConfig
	client  *resty.Client
	baseURL string
}

func NewWallhaven(cfg config.WallhavenConfig) *Wallhaven {
	return &Wallhaven{
		cfg:     cfg,
		client:  resty.New().SetHeader("User-Agent", "wallshift"),
		baseURL: wallhavenBaseURL,
	}
}

func (w *Wallhaven) Name() string                 { return "wallhaven" }
func (w *Wallhaven) SourceType() types.SourceType { return types.SourceWallhaven }

type wallhavenSearchResponse struct {
	Data []struct {
		ID         string `json:"id"`
		Path       string `json:"path"`
		DimensionX int    `json:"dimension_x"`
		DimensionY int    `json:"dimension_y"`
		Category   string `json:"category"`
	} `json:"data"`
}

func (w *Wallhaven) Search(ctx context.Context, query string, count int) ([]Result, error) {
	var body wallhavenSearchResponse
	req := w.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetQueryParam("categories", w.cfg.Categories).
		SetQueryParam("purity", w.cfg.Purity).
		SetQueryParam("sorting", "random").
		SetResult(&body)
	if w.cfg.APIKey != "" {
		req.SetQueryParam("apikey", w.cfg.APIKey)
	}

	res, err := req.Get(w.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("wallhaven search: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("wallhaven search: %s", res.Status())
	}

	results := make([]Result, 0, count)
	for _, item := range body.Data {
		if len(results) == count {
			break
		}
		tags := []string{item.Category}
		if query != "" {
			tags = append(tags, query)
		}
		results = append(results, Result{
			SourceID: item.ID,
			URL:      item.Path,
			Width:    item.DimensionX,
			Height:   item.DimensionY,
			Tags:     tags,
		})
	}
	return results, nil
}
