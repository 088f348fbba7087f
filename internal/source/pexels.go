package source

import (
	"context"
	"fmt"
	"strconv"

	"resty.dev/v3"

	"wallshift/internal/config"
	"wallshift/internal/types"
)

const pexelsBaseURL = "https://api.pexels.com/v1"

// Pexels queries the pexels.com photo search API.
type Pexels struct {
	client  *resty.Client
	baseURL string
}

func NewPexels(cfg config.PexelsConfig) *Pexels {
	return &Pexels{
		client: resty.New().
			SetHeader("User-Agent", "wallshift").
			SetHeader("Authorization", cfg.APIKey),
		baseURL: pexelsBaseURL,
	}
}

func (p *Pexels) Name() string                 { return "pexels" }
func (p *Pexels) SourceType() types.SourceType { return types.SourcePexels }

type pexelsSearchResponse struct {
	Photos []struct {
		ID     int64 `json:"id"`
		Width  int   `json:"width"`
		Height int   `json:"height"`
		Src    struct {
			Original string `json:"original"`
		} `json:"src"`
		Alt string `json:"alt"`
	} `json:"photos"`
}

func (p *Pexels) Search(ctx context.Context, query string, count int) ([]Result, error) {
	if query == "" {
		query = "wallpaper"
	}

	var body pexelsSearchResponse
	res, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		SetQueryParam("per_page", strconv.Itoa(count)).
		SetQueryParam("orientation", "landscape").
		SetResult(&body).
		Get(p.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("pexels search: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("pexels search: %s", res.Status())
	}

	results := make([]Result, 0, len(body.Photos))
	for _, photo := range body.Photos {
		var tags []string
		if photo.Alt != "" {
			tags = append(tags, photo.Alt)
		}
		tags = append(tags, query)
		results = append(results, Result{
			SourceID: strconv.FormatInt(photo.ID, 10),
			URL:      photo.Src.Original,
			Width:    photo.Width,
			Height:   photo.Height,
			Tags:     tags,
		})
	}
	return results, nil
}
