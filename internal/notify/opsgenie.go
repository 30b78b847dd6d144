package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/opscheck/internal/domain"
)

type Opsgenie struct {
	URL    string
	Key    string
	Client *http.Client
	Logger *zap.Logger
}

func NewOpsgenie(url, key string, timeout time.Duration, logger *zap.Logger) *Opsgenie {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Opsgenie{
		URL:    url,
		Key:    key,
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

type opsgeniePayload struct {
	Message     string             `json:"message"`
	Priority    domain.Priority    `json:"priority"`
	Description string             `json:"description"`
	Tags        []string           `json:"tags"`
	Entity      string             `json:"entity"`
	Responders  []domain.Responder `json:"responders"`
}

func (o *Opsgenie) Name() string { return "opsgenie" }

func (o *Opsgenie) Notify(ctx context.Context, ev domain.EscalationEvent) error {
	o.Logger.Info("opsgenie_posting_alert")
	body, err := json.Marshal(opsgeniePayload{
		Message:     ev.Message,
		Priority:    ev.Priority,
		Description: ev.Description,
		Tags:        ev.Tags,
		Entity:      ev.Entity,
		Responders:  ev.Responders,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "GenieKey "+o.Key)

	resp, err := o.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	o.Logger.Info("opsgenie_response",
		zap.Int("status", resp.StatusCode),
		zap.String("body", readLogged(resp)),
	)
	return statusErr("opsgenie", resp)
}
