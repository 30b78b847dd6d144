package notify

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/opscheck/internal/domain"
)

type Mailgun struct {
	BaseURL string // e.g. https://api.mailgun.net/v2
	Domain  string
	Key     string
	From    string
	To      []string
	Client  *http.Client
	Logger  *zap.Logger
}

func NewMailgun(baseURL, domainName, key, from string, to []string, timeout time.Duration, logger *zap.Logger) *Mailgun {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailgun{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Domain:  domainName,
		Key:     key,
		From:    from,
		To:      to,
		Client:  &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

func (m *Mailgun) Name() string { return "mailgun" }

func (m *Mailgun) Notify(ctx context.Context, ev domain.EscalationEvent) error {
	m.Logger.Info("mailgun_sending_email", zap.Strings("to", m.To))
	if len(m.To) == 0 {
		return errors.New("mailgun: no recipients configured")
	}

	form := url.Values{}
	form.Set("from", m.From)
	for _, to := range m.To {
		form.Add("to", to)
	}
	form.Set("subject", ev.Message)
	form.Set("text", ev.Description)

	endpoint := m.BaseURL + "/" + url.PathEscape(m.Domain) + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", m.Key)

	resp, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	m.Logger.Info("mailgun_response",
		zap.Int("status", resp.StatusCode),
		zap.String("body", readLogged(resp)),
	)
	return statusErr("mailgun", resp)
}
