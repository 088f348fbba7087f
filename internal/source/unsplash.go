package source

import (
	"context"
	"fmt"
	"strconv"

	"resty.dev/v3"

	"wallshift/internal/config"
	"wallshift/internal/types"
)

const unsplashBaseURL = "https://api.unsplash.com"

// Unsplash uses the random photo endpoint, which requires an access key.
type Unsplash struct {
	client  *resty.Client
	baseURL string
}

func NewUnsplash(cfg config.UnsplashConfig) *Unsplash {
	return &Unsplash{
		client: resty.New().
			SetHeader("User-Agent", "wallshift").
			SetHeader("Authorization", "Client-ID "+cfg.AccessKey),
		baseURL: unsplashBaseURL,
	}
}

func (u *Unsplash) Name() string                 { return "unsplash" }
func (u *Unsplash) SourceType() types.SourceType { return types.SourceUnsplash }

type unsplashPhoto struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URLs   struct {
		Full string `json:"full"`
	} `json:"urls"`
	Tags []struct {
		Title string `json:"title"`
	} `json:"tags"`
}

func (u *Unsplash) Search(ctx context.Context, query string, count int) ([]Result, error) {
	var photos []unsplashPhoto
	req := u.client.R().
		SetContext(ctx).
		SetQueryParam("count", strconv.Itoa(count)).
		SetQueryParam("orientation", "landscape").
		SetResult(&photos)
	if query != "" {
		req.SetQueryParam("query", query)
	}

	res, err := req.Get(u.baseURL + "/photos/random")
	if err != nil {
		return nil, fmt.Errorf("unsplash search: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("unsplash search: %s", res.Status())
	}

	results := make([]Result, 0, len(photos))
	for _, p := range photos {
		tags := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			tags = append(tags, t.Title)
		}
		results = append(results, Result{
			SourceID: p.ID,
			URL:      p.URLs.Full,
			Width:    p.Width,
			Height:   p.Height,
			Tags:     tags,
		})
	}
	return results, nil
}
