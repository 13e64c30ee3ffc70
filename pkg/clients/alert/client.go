package alert

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// Client exposes the outbound alerting operations used by the snapshot
// scheduler.
type Client interface {
	SendLowStockAlert(ctx context.Context, req LowStockAlertRequest) error
}

// WebhookClient is a resty-backed implementation of Client. It posts a
// Slack-compatible {"text": ...} payload to the configured webhook URL.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewWebhookClient builds an alert client from the provided configuration
// values.
func NewWebhookClient(cfg config.AlertConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// LowStockAlertRequest carries the scarce rows worth flagging and the
// threshold that selected them.
type LowStockAlertRequest struct {
	Threshold int
	Rows      []models.Row
}

// SendLowStockAlert posts the alert. Sending nothing for an empty row set is
// deliberate; the scheduler calls this unconditionally after every snapshot.
func (c *WebhookClient) SendLowStockAlert(ctx context.Context, req LowStockAlertRequest) error {
	if len(req.Rows) == 0 {
		return nil
	}

	payload := map[string]any{"text": formatMessage(req)}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send low stock alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("alert webhook error: code=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}

func formatMessage(req LowStockAlertRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Low stock: %d product(s) at or below %d units\n", len(req.Rows), req.Threshold)
	for _, row := range req.Rows {
		fmt.Fprintf(&b, "• %s (%s): %d left\n", row.Name, row.SKU, row.Quantity)
	}
	return strings.TrimRight(b.String(), "\n")
}
