// Package courier provides HTTP adapters for the external shipping and
// storefront collaborators. Calls honor the request context and return
// errors on any non-success response; callers rely on that to keep state
// transitions uncommitted when a collaborator fails.
package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khallark/studio-sub002/internal/domain/integration"
	"github.com/khallark/studio-sub002/internal/infrastructure/config"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 1 * 1024 * 1024 // 1MB

// HTTPGateway implements CourierGateway and StorefrontGateway against the
// courier aggregator's REST API and the storefront webhook endpoint
type HTTPGateway struct {
	baseURL           string
	apiKey            string
	storefrontBaseURL string
	httpClient        *http.Client
	logger            *zap.Logger
}

// NewHTTPGateway creates a new HTTP gateway
func NewHTTPGateway(cfg config.CourierConfig, logger *zap.Logger) *HTTPGateway {
	return &HTTPGateway{
		baseURL:           cfg.BaseURL,
		apiKey:            cfg.APIKey,
		storefrontBaseURL: cfg.StorefrontBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type shipmentPayload struct {
	TenantID    string `json:"tenant_id"`
	StoreID     string `json:"store_id"`
	OrderID     string `json:"order_id"`
	ExternalRef string `json:"external_ref"`
	CourierCode string `json:"courier_code,omitempty"`
}

type shipmentResponse struct {
	AWB     string `json:"awb"`
	Courier string `json:"courier"`
	Message string `json:"message"`
}

// CreateShipment books a forward shipment and returns its AWB
func (g *HTTPGateway) CreateShipment(ctx context.Context, req integration.ShipmentRequest) (*integration.Shipment, error) {
	return g.bookShipment(ctx, "/v1/shipments", req)
}

// BookReturn books a reverse (customer-to-origin) shipment
func (g *HTTPGateway) BookReturn(ctx context.Context, req integration.ShipmentRequest) (*integration.Shipment, error) {
	return g.bookShipment(ctx, "/v1/returns", req)
}

func (g *HTTPGateway) bookShipment(ctx context.Context, path string, req integration.ShipmentRequest) (*integration.Shipment, error) {
	payload := shipmentPayload{
		TenantID:    req.TenantID.String(),
		StoreID:     req.StoreID.String(),
		OrderID:     req.OrderID.String(),
		ExternalRef: req.ExternalRef,
		CourierCode: req.CourierCode,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shipment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build shipment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	start := time.Now()
	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("courier request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read courier response: %w", err)
	}

	g.logger.Debug("Courier call completed",
		zap.String("path", path),
		zap.String("order_id", req.OrderID.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("courier returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed shipmentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode courier response: %w", err)
	}
	if parsed.AWB == "" || parsed.Courier == "" {
		return nil, fmt.Errorf("courier response missing awb or courier: %s", string(respBody))
	}

	return &integration.Shipment{AWB: parsed.AWB, Courier: parsed.Courier}, nil
}

type statusPayload struct {
	StoreID     string `json:"store_id"`
	ExternalRef string `json:"external_ref"`
	Status      string `json:"status"`
}

// NotifyStatus informs the storefront of an order's new status
func (g *HTTPGateway) NotifyStatus(ctx context.Context, tenantID, storeID uuid.UUID, externalRef, status string) error {
	payload := statusPayload{
		StoreID:     storeID.String(),
		ExternalRef: externalRef,
		Status:      status,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal status notification: %w", err)
	}

	url := fmt.Sprintf("%s/v1/tenants/%s/order-status", g.storefrontBaseURL, tenantID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build status notification: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("storefront notification failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("storefront returned status %d", resp.StatusCode)
	}
	return nil
}

// Ensure HTTPGateway implements the collaborator interfaces
var (
	_ integration.CourierGateway    = (*HTTPGateway)(nil)
	_ integration.StorefrontGateway = (*HTTPGateway)(nil)
)
