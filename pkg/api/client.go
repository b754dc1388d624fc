// Package api is the typed binding for the 3A Frios backend REST API.
//
// One Client wraps a single base URL and a pre-configured resty client;
// every view of the console goes through it. The backend owns all data;
// this layer only fetches, posts and resolves media paths.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// Client talks to the backend. Safe for concurrent use.
type Client struct {
	rest    *resty.Client
	baseURL string
}

// NewClient builds a Client for the given base URL. An empty baseURL falls
// back to DefaultBaseURL; a zero timeout disables the client-side deadline
// (the original console never aborted a request).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	rest := resty.New().SetBaseURL(baseURL)
	if timeout > 0 {
		rest.SetTimeout(timeout)
	}

	return &Client{rest: rest, baseURL: baseURL}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WebSocketURL derives the push-channel endpoint for the given client ID by
// swapping the http scheme for ws.
func (c *Client) WebSocketURL(clientID int64) string {
	ws := c.baseURL
	switch {
	case strings.HasPrefix(ws, "https://"):
		ws = "wss://" + strings.TrimPrefix(ws, "https://")
	case strings.HasPrefix(ws, "http://"):
		ws = "ws://" + strings.TrimPrefix(ws, "http://")
	}
	return fmt.Sprintf("%s/conversations/ws/%d", ws, clientID)
}

// MediaURL resolves a backend-relative media path (e.g. /static/uploads/x.png)
// against the base URL. Absolute URLs pass through untouched.
func (c *Client) MediaURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// Ping checks backend reachability.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.rest.R().SetContext(ctx).Get("/ping")
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("ping: backend returned %s", resp.Status())
	}
	return nil
}

// Conversations fetches the conversation list, most recently updated first,
// each optionally carrying a partial message list.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	var out []Conversation
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).Get("/conversations/")
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list conversations: backend returned %s", resp.Status())
	}
	return out, nil
}

// Messages fetches the full ordered transcript of one conversation.
func (c *Client) Messages(ctx context.Context, conversationID int) ([]Message, error) {
	var out []Message
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/conversations/%d/messages", conversationID))
	if err != nil {
		return nil, fmt.Errorf("fetch messages for conversation %d: %w", conversationID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch messages for conversation %d: backend returned %s", conversationID, resp.Status())
	}
	return out, nil
}

// SendAttachment posts an agent message with a file (and optional caption)
// as multipart form data. The new message is not returned into local state;
// the backend echoes it over the push channel.
func (c *Client) SendAttachment(ctx context.Context, conversationID int, content, filePath string) (*Message, error) {
	req := c.rest.R().SetContext(ctx)
	if content != "" {
		req.SetFormData(map[string]string{"content": content})
	}
	if filePath != "" {
		req.SetFile("file", filePath)
	}

	var out Message
	resp, err := req.
		SetResult(&out).
		Post(fmt.Sprintf("/conversations/%d/messages", conversationID))
	if err != nil {
		return nil, fmt.Errorf("send message to conversation %d: %w", conversationID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("send message to conversation %d: backend returned %s", conversationID, resp.Status())
	}
	return &out, nil
}

// BroadcastEncarte triggers a promotional broadcast. With an empty customerIDs
// slice the backend targets every customer. Fire-and-forget: the only feedback
// is the list of customer IDs the backend accepted.
func (c *Client) BroadcastEncarte(ctx context.Context, content, filePath string, customerIDs []int) (*BroadcastResult, error) {
	form := map[string]string{"content": content}
	if len(customerIDs) > 0 {
		ids := make([]string, len(customerIDs))
		for i, id := range customerIDs {
			ids[i] = strconv.Itoa(id)
		}
		form["customer_ids_json"] = "[" + strings.Join(ids, ",") + "]"
	}

	req := c.rest.R().SetContext(ctx).SetFormData(form)
	if filePath != "" {
		req.SetFile("file", filePath)
	}

	var out BroadcastResult
	resp, err := req.SetResult(&out).Post("/conversations/broadcast-encarte")
	if err != nil {
		return nil, fmt.Errorf("broadcast encarte: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("broadcast encarte: backend returned %s", resp.Status())
	}

	log.Info().Int("recipients", len(out.SentTo)).Msg("Encarte broadcast accepted")
	return &out, nil
}

// AttachOrder links an order to a conversation.
func (c *Client) AttachOrder(ctx context.Context, conversationID, orderID int) (*Conversation, error) {
	var out Conversation
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&out).
		Post(fmt.Sprintf("/conversations/%d/attach-order/%d", conversationID, orderID))
	if err != nil {
		return nil, fmt.Errorf("attach order %d to conversation %d: %w", orderID, conversationID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("attach order %d to conversation %d: backend returned %s", orderID, conversationID, resp.Status())
	}
	return &out, nil
}

// ConversationMetricsSnapshot fetches the support metrics aggregate.
func (c *Client) ConversationMetricsSnapshot(ctx context.Context) (*ConversationMetrics, error) {
	var out ConversationMetrics
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).Get("/conversations/metrics")
	if err != nil {
		return nil, fmt.Errorf("conversation metrics: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("conversation metrics: backend returned %s", resp.Status())
	}
	return &out, nil
}

// DashboardMetricsSnapshot fetches the landing-page aggregate.
func (c *Client) DashboardMetricsSnapshot(ctx context.Context) (*DashboardMetrics, error) {
	var out DashboardMetrics
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).Get("/dashboard/metrics")
	if err != nil {
		return nil, fmt.Errorf("dashboard metrics: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("dashboard metrics: backend returned %s", resp.Status())
	}
	return &out, nil
}

// SalesMetricsForPeriod fetches the sales report. Zero times omit the bound
// and let the backend apply its default window.
func (c *Client) SalesMetricsForPeriod(ctx context.Context, start, end time.Time) (*SalesMetrics, error) {
	params := url.Values{}
	if !start.IsZero() {
		params.Set("start_date", start.Format("2006-01-02"))
	}
	if !end.IsZero() {
		params.Set("end_date", end.Format("2006-01-02"))
	}

	var out SalesMetrics
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetResult(&out).
		Get("/reports/sales-metrics")
	if err != nil {
		return nil, fmt.Errorf("sales metrics: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sales metrics: backend returned %s", resp.Status())
	}
	return &out, nil
}

// CustomerMetricsSnapshot fetches the customer analytics report.
func (c *Client) CustomerMetricsSnapshot(ctx context.Context) (*CustomerMetrics, error) {
	var out CustomerMetrics
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).Get("/reports/customer-metrics")
	if err != nil {
		return nil, fmt.Errorf("customer metrics: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("customer metrics: backend returned %s", resp.Status())
	}
	return &out, nil
}

// ServiceMetricsSnapshot fetches the service-level report aggregate.
func (c *Client) ServiceMetricsSnapshot(ctx context.Context) (*ServiceMetrics, error) {
	var out ServiceMetrics
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).Get("/reports/service-metrics")
	if err != nil {
		return nil, fmt.Errorf("service metrics: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("service metrics: backend returned %s", resp.Status())
	}
	return &out, nil
}

// OrdersReport fetches the flattened orders table.
func (c *Client) OrdersReport(ctx context.Context) ([]OrderReportItem, error) {
	var out []OrderReportItem
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).Get("/reports/orders-report")
	if err != nil {
		return nil, fmt.Errorf("orders report: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("orders report: backend returned %s", resp.Status())
	}
	return out, nil
}

// Salespeople fetches the report filter options.
func (c *Client) Salespeople(ctx context.Context) ([]Salesperson, error) {
	var out []Salesperson
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).Get("/reports/salespeople")
	if err != nil {
		return nil, fmt.Errorf("salespeople: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("salespeople: backend returned %s", resp.Status())
	}
	return out, nil
}

// Customers fetches the customer list.
func (c *Client) Customers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).Get("/customers/")
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list customers: backend returned %s", resp.Status())
	}
	return out, nil
}

// Orders fetches the order list.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).Get("/orders/")
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list orders: backend returned %s", resp.Status())
	}
	return out, nil
}
