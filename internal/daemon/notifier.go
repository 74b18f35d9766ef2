package daemon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fenilsonani/appsweep/internal/config"
	"github.com/fenilsonani/appsweep/internal/discovery"
	"github.com/fenilsonani/appsweep/pkg/utils"
)

// Notifier posts scan reports to the configured webhook
type Notifier struct {
	config  config.NotifyConfig
	minSize int64
	logger  *Logger
	client  *http.Client
}

// NewNotifier creates a new notifier
func NewNotifier(cfg config.NotifyConfig, logger *Logger) *Notifier {
	var minSize int64
	if cfg.MinOrphanSize != "" {
		// Validated at config load time
		minSize, _ = utils.ParseSize(cfg.MinOrphanSize)
	}

	return &Notifier{
		config:  cfg,
		minSize: minSize,
		logger:  logger,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NotificationMessage represents a notification
type NotificationMessage struct {
	Title     string
	Message   string
	Timestamp time.Time
	Type      string // "startup", "shutdown", "scan_report"
	Data      map[string]interface{}
}

// SendStartup sends a startup notification
func (n *Notifier) SendStartup() {
	n.send(&NotificationMessage{
		Title:     "AppSweep Daemon Started",
		Message:   "The orphan scan daemon has started successfully",
		Timestamp: time.Now(),
		Type:      "startup",
	})
}

// SendShutdown sends a shutdown notification
func (n *Notifier) SendShutdown() {
	n.send(&NotificationMessage{
		Title:     "AppSweep Daemon Stopped",
		Message:   "The orphan scan daemon has stopped",
		Timestamp: time.Now(),
		Type:      "shutdown",
	})
}

// SendScanReport sends the result of a completed orphan scan. Reports
// below the configured minimum size are suppressed.
func (n *Notifier) SendScanReport(groups []discovery.OrphanGroup, duration time.Duration) {
	var total int64
	var artifacts int
	for _, g := range groups {
		total += g.TotalSize
		artifacts += len(g.Artifacts)
	}

	if total < n.minSize {
		n.logger.Debug().
			Str("reclaimable", utils.FormatBytes(total)).
			Str("threshold", utils.FormatBytes(n.minSize)).
			Msg("scan report below notification threshold")
		return
	}

	msg := &NotificationMessage{
		Title: fmt.Sprintf("Orphan Scan: %d leftover identifiers", len(groups)),
		Message: fmt.Sprintf("Found %d orphaned identifiers (%d artifacts), %s reclaimable in %s",
			len(groups), artifacts, utils.FormatBytes(total), duration.Round(time.Second)),
		Timestamp: time.Now(),
		Type:      "scan_report",
		Data: map[string]interface{}{
			"orphan_groups":     len(groups),
			"artifacts":         artifacts,
			"reclaimable_bytes": total,
			"reclaimable":       utils.FormatBytes(total),
			"duration":          duration.String(),
		},
	}

	n.send(msg)
}

// send posts the notification to the webhook
func (n *Notifier) send(msg *NotificationMessage) {
	if n.config.Webhook == "" {
		return
	}

	if err := n.sendWebhook(msg); err != nil {
		n.logger.Error().Err(err).Str("title", msg.Title).Msg("failed to send webhook notification")
		return
	}
	n.logger.Info().Str("title", msg.Title).Msg("webhook notification sent")
}

func (n *Notifier) sendWebhook(msg *NotificationMessage) error {
	payload := map[string]interface{}{
		"title":     msg.Title,
		"message":   msg.Message,
		"timestamp": msg.Timestamp.Format(time.RFC3339),
		"type":      msg.Type,
		"data":      msg.Data,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", n.config.Webhook, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
