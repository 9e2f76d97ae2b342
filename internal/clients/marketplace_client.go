package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

const maxResponseBytes = 4 << 20

const (
	pathCreateProduct = "/api/product/create"
	pathOrdersByUser  = "/api/order/get-allbyuser"
	pathUpdateStatus  = "/api/order/updateStatus"
	pathCancelOrder   = "/api/order/cancelOrder"
)

type CreateProductResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type OrdersResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Orders  []domain.Order `json:"orders,omitempty"`
}

// MarketplaceClient calls the marketplace backend. Errors are always
// *domain.TransportError. CreateProduct returns any decoded reply, reporting
// success:false for a non-2xx status; the order calls treat a non-2xx status
// as an error.
type MarketplaceClient interface {
	CreateProduct(ctx context.Context, listing domain.Listing) (*CreateProductResponse, error)
	ListOrdersByUser(ctx context.Context) (*OrdersResponse, error)
	UpdateOrderStatus(ctx context.Context, orderID, message string) (*OrdersResponse, error)
	CancelOrder(ctx context.Context, orderID, message string) (*OrdersResponse, error)
}

type marketplaceHTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewMarketplaceHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) MarketplaceClient {
	return &marketplaceHTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

type createProductRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       json.Number     `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    domain.Category `json:"category"`
}

type orderActionRequest struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

func (c *marketplaceHTTPClient) CreateProduct(ctx context.Context, listing domain.Listing) (*CreateProductResponse, error) {
	payload := createProductRequest{
		Title:       listing.Title,
		Description: listing.Description,
		Price:       json.Number(listing.Price.String()),
		ImageURL:    listing.ImageURL,
		Category:    listing.Category,
	}

	var out CreateProductResponse
	status, err := c.do(ctx, "create product", http.MethodPost, pathCreateProduct, payload, &out)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusMultipleChoices {
		out.Success = false
	}
	c.log.Infof("MarketplaceClient: CreateProduct for '%s' answered success=%t", listing.Title, out.Success)
	return &out, nil
}

func (c *marketplaceHTTPClient) ListOrdersByUser(ctx context.Context) (*OrdersResponse, error) {
	var out OrdersResponse
	status, err := c.do(ctx, "list orders", http.MethodGet, pathOrdersByUser, nil, &out)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusMultipleChoices {
		return nil, rejected("list orders", status, out.Message)
	}
	c.log.Infof("MarketplaceClient: ListOrdersByUser answered success=%t with %d orders", out.Success, len(out.Orders))
	return &out, nil
}

func (c *marketplaceHTTPClient) UpdateOrderStatus(ctx context.Context, orderID, message string) (*OrdersResponse, error) {
	return c.orderAction(ctx, "update order status", pathUpdateStatus, orderID, message)
}

func (c *marketplaceHTTPClient) CancelOrder(ctx context.Context, orderID, message string) (*OrdersResponse, error) {
	return c.orderAction(ctx, "cancel order", pathCancelOrder, orderID, message)
}

func (c *marketplaceHTTPClient) orderAction(ctx context.Context, op, path, orderID, message string) (*OrdersResponse, error) {
	var out OrdersResponse
	status, err := c.do(ctx, op, http.MethodPut, path, orderActionRequest{OrderID: orderID, Message: message}, &out)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusMultipleChoices {
		return nil, rejected(op, status, out.Message)
	}
	c.log.Infof("MarketplaceClient: %s for order %s answered success=%t", op, orderID, out.Success)
	return &out, nil
}

// do sends one request and decodes the JSON reply into out. It returns the
// HTTP status when a reply body was decoded, whatever that status was.
func (c *marketplaceHTTPClient) do(ctx context.Context, op, method, path string, body, out any) (int, error) {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.log.Errorf("MarketplaceClient: Failed to encode %s request: %v", op, err)
			return 0, &domain.TransportError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		c.log.Errorf("MarketplaceClient: Failed to create %s request: %v", op, err)
		return 0, &domain.TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	creds := CredentialsFrom(ctx)
	if creds.Authorization != "" {
		req.Header.Set("Authorization", creds.Authorization)
	}
	if creds.Cookie != "" {
		req.Header.Set("Cookie", creds.Cookie)
	}

	c.log.Debugf("MarketplaceClient: %s %s", method, url)
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("MarketplaceClient: Failed to execute %s request: %v", op, err)
		return 0, &domain.TransportError{Op: op, Err: fmt.Errorf("failed to communicate with marketplace backend: %w", err)}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.log.Errorf("MarketplaceClient: Failed to read %s response: %v", op, err)
		return 0, &domain.TransportError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		if resp.StatusCode >= http.StatusMultipleChoices {
			c.log.Errorf("MarketplaceClient: %s failed with status %d. Response body: %s", op, resp.StatusCode, string(bodyBytes))
			return 0, rejected(op, resp.StatusCode, "")
		}
		c.log.Errorf("MarketplaceClient: Failed to decode %s response: %v", op, err)
		return 0, &domain.TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Warnf("MarketplaceClient: %s returned status %d", op, resp.StatusCode)
	}
	return resp.StatusCode, nil
}

func rejected(op string, status int, message string) *domain.TransportError {
	err := fmt.Errorf("%w: status %d", domain.ErrRejectedStatus, status)
	if message != "" {
		err = fmt.Errorf("%w: status %d: %s", domain.ErrRejectedStatus, status, message)
	}
	return &domain.TransportError{Op: op, Status: status, Err: err}
}
