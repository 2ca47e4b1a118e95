// Package client implements the cartstate effect boundary against the REST
// API: an HTTP syncer for authenticated sessions and a JSON file store for
// guest carts.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"storefront/internal/cartstate"
	"storefront/internal/model"
)

// CartAPI talks to the cart endpoints with a bearer token. It implements
// cartstate.Syncer.
type CartAPI struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ cartstate.Syncer = (*CartAPI)(nil)

// NewCartAPI creates a cart API client. baseURL is the server root, e.g.
// "http://localhost:8080".
func NewCartAPI(baseURL, token string) *CartAPI {
	return &CartAPI{
		baseURL:    baseURL,
		token:      token,
		httpClient: http.DefaultClient,
	}
}

type cartItemPayload struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// Fetch loads the server-side cart. Lines whose product did not resolve come
// back with a nil Product.
func (a *CartAPI) Fetch(ctx context.Context) ([]cartstate.Line, error) {
	body, err := a.do(ctx, http.MethodGet, "/api/users/cart", nil)
	if err != nil {
		return nil, err
	}

	var items []model.CartItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("parse cart response: %w", err)
	}

	lines := make([]cartstate.Line, 0, len(items))
	for _, item := range items {
		line := cartstate.Line{Quantity: item.Quantity}
		if item.Product.ID != uuid.Nil {
			product := item.Product
			line.Product = &product
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// AddOrUpdate mirrors a line with overwrite semantics.
func (a *CartAPI) AddOrUpdate(ctx context.Context, productID uuid.UUID, quantity int) error {
	payload, err := json.Marshal(cartItemPayload{ProductID: productID, Quantity: quantity})
	if err != nil {
		return fmt.Errorf("marshal cart item: %w", err)
	}
	_, err = a.do(ctx, http.MethodPost, "/api/users/cart", payload)
	return err
}

// Remove deletes one line.
func (a *CartAPI) Remove(ctx context.Context, productID uuid.UUID) error {
	_, err := a.do(ctx, http.MethodDelete, "/api/users/cart/"+productID.String(), nil)
	return err
}

// Clear deletes every line.
func (a *CartAPI) Clear(ctx context.Context) error {
	_, err := a.do(ctx, http.MethodDelete, "/api/users/cart", nil)
	return err
}

func (a *CartAPI) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s returned status: %d", method, path, resp.StatusCode)
	}
	return body, nil
}
