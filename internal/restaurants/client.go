package restaurants

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"mealcart_back_end/internal/apperr"
	"mealcart_back_end/internal/models"
)

const menuCacheTTL = 60 * time.Second

// Client talks to the restaurant service. Public by-slug lookups go
// through a short-lived Redis cache so a burst of checkouts against the
// same restaurant does not hammer the menu endpoint; the snapshot stays
// fresh enough for price validation. A nil cache disables caching.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *redis.Client
}

func NewClient(baseURL string, cache *redis.Client) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

// GetBySlug fetches the public restaurant record, menu included.
func (c *Client) GetBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	cacheKey := "restaurant:slug:" + slug
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey).Result(); err == nil {
			var restaurant models.Restaurant
			if err := json.Unmarshal([]byte(cached), &restaurant); err == nil {
				return &restaurant, nil
			}
			// Unreadable cache entry: fall through to the service.
		}
	}

	restaurant, err := c.fetch(ctx, c.baseURL+"/"+slug, "")
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if raw, err := json.Marshal(restaurant); err == nil {
			if err := c.cache.Set(ctx, cacheKey, raw, menuCacheTTL).Err(); err != nil {
				log.Printf("restaurants: cache write failed for %s: %v", slug, err)
			}
		}
	}
	return restaurant, nil
}

// GetByOwner resolves the restaurant owned by the given user via the
// cms endpoint. The caller's bearer token is forwarded; responses are
// not cached because they are per-operator.
func (c *Client) GetByOwner(ctx context.Context, userID, authHeader string) (*models.Restaurant, error) {
	return c.fetch(ctx, c.baseURL+"/cms/"+userID, authHeader)
}

func (c *Client) fetch(ctx context.Context, url, authHeader string) (*models.Restaurant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build restaurant request: %w", err)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Upstream("restaurant service unreachable", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound("restaurant not found")
	case res.StatusCode != http.StatusOK:
		return nil, apperr.Upstream(fmt.Sprintf("restaurant service returned %d", res.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, apperr.Upstream("read restaurant response", err)
	}

	var restaurant models.Restaurant
	if err := json.Unmarshal(body, &restaurant); err != nil {
		return nil, apperr.Upstream("decode restaurant response", err)
	}
	return &restaurant, nil
}
