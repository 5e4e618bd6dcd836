package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
)

// ErrProductNotFound indicates the catalog has no such product.
var ErrProductNotFound = errors.New("product not found")

// ErrProductUnavailable indicates the product exists but cannot be ordered.
var ErrProductUnavailable = errors.New("product unavailable")

// Client resolves product prices at order-creation time. The returned price
// is a snapshot; later catalog edits never affect existing orders.
type Client interface {
	Product(ctx context.Context, productID int64) (*model.Product, error)
}

// HTTPClient implements Client against the menu catalog HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors JSON payload from the catalog service. Price is cents.
type response struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Available bool   `json:"available"`
}

// NewHTTPClient creates HTTP catalog client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse menu url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("menu url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Product queries the catalog for one priced product.
func (c *HTTPClient) Product(ctx context.Context, productID int64) (*model.Product, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/products/", strconv.FormatInt(productID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		product := &model.Product{ID: data.ID, Name: data.Name, Price: data.Price, Available: data.Available}
		if !product.Available {
			return nil, ErrProductUnavailable
		}
		return product, nil
	case http.StatusNotFound:
		return nil, ErrProductNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("menu request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("menu error: %s", resp.Status)
	}
}
