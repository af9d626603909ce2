// Package goods talks to the upstream Goods Service and shapes the goods
// payload it accepts.
package goods

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/01moynul/shop-backoffice/internal/models"
	"go.uber.org/zap"
)

// Service is the part of the Goods Service the editor needs.
type Service interface {
	Detail(ctx context.Context, token string, id int64) (*models.Goods, error)
	CategoryOptions(ctx context.Context, token string) ([]models.GoodsCategoryOption, error)
	Add(ctx context.Context, token string, g *models.Goods) (*models.Goods, error)
	Edit(ctx context.Context, token string, g *models.Goods) (*models.Goods, error)
}

// APIError is a rejected upstream call: either a non-2xx status or a
// non-zero envelope code.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("goods service: %s (status %d, code %d)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("goods service: %s (status %d)", e.Message, e.Status)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client is an HTTP client for {baseURL}/api/{version}/shop/goods/*.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(apiURL, version string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(apiURL, "/") + "/api/" + strings.Trim(version, "/") + "/",
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) Detail(ctx context.Context, token string, id int64) (*models.Goods, error) {
	var g models.Goods
	q := url.Values{"id": {strconv.FormatInt(id, 10)}}
	if err := c.do(ctx, token, http.MethodGet, "shop/goods/detail", q, nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) CategoryOptions(ctx context.Context, token string) ([]models.GoodsCategoryOption, error) {
	var opts []models.GoodsCategoryOption
	if err := c.do(ctx, token, http.MethodGet, "shop/goods/category_options", nil, nil, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func (c *Client) Add(ctx context.Context, token string, g *models.Goods) (*models.Goods, error) {
	return c.save(ctx, token, "shop/goods/add", g)
}

func (c *Client) Edit(ctx context.Context, token string, g *models.Goods) (*models.Goods, error) {
	return c.save(ctx, token, "shop/goods/edit", g)
}

func (c *Client) save(ctx context.Context, token, endpoint string, g *models.Goods) (*models.Goods, error) {
	var out models.Goods
	if err := c.do(ctx, token, http.MethodPost, endpoint, nil, g, &out); err != nil {
		return nil, err
	}
	// Some endpoints answer with an empty data field; echo the submitted record then.
	if out.ID == 0 && out.Name == "" {
		out = *g
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, token, method, endpoint string, query url.Values, body, out any) error {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if method != http.MethodGet {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("timestamp", strconv.FormatInt(time.Now().Unix(), 10))
	req.Header.Set("nonce", nonce())
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("goods service call",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 300 {
				return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
			}
			return fmt.Errorf("decode %s response: %w", endpoint, err)
		}
	}

	if resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: msg}
	}
	if env.Code != 0 {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", endpoint, err)
	}
	return nil
}

const nonceChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// nonce is a 16 character alphanumeric request nonce.
func nonce() string {
	b := make([]byte, 16)
	n62 := big.NewInt(int64(len(nonceChars)))
	for i := range b {
		n, err := rand.Int(rand.Reader, n62)
		if err != nil {
			b[i] = nonceChars[i]
			continue
		}
		b[i] = nonceChars[n.Int64()]
	}
	return string(b)
}
