package notify

import (
	"context"
	"fmt"

	"dashboard-core/internal/common/aws"
	"dashboard-core/internal/common/config"
	stderrors "dashboard-core/internal/common/errors"
	"dashboard-core/internal/common/logger"
	"dashboard-core/internal/finance"
	"dashboard-core/internal/models"
)

// AlertSender delivers an out-of-band alert (email, push topic).
type AlertSender interface {
	SendAlert(ctx context.Context, subject, body string) error
}

// SESAlertSender emails alerts through SES.
type SESAlertSender struct {
	client *aws.SESClient
	from   string
	to     string
}

func NewSESAlertSender(client *aws.SESClient, cfg config.NotificationConfig) *SESAlertSender {
	return &SESAlertSender{client: client, from: cfg.EmailFrom, to: cfg.EmailTo}
}

func (s *SESAlertSender) SendAlert(ctx context.Context, subject, body string) error {
	if err := s.client.SendText(ctx, s.from, s.to, subject, body); err != nil {
		return stderrors.NewNotificationSendFailedError("ses", err)
	}
	return nil
}

// SNSAlertSender publishes alerts to an SNS topic.
type SNSAlertSender struct {
	client   *aws.SNSClient
	topicARN string
}

func NewSNSAlertSender(client *aws.SNSClient, cfg config.NotificationConfig) *SNSAlertSender {
	return &SNSAlertSender{client: client, topicARN: cfg.SNSTopicARN}
}

func (s *SNSAlertSender) SendAlert(ctx context.Context, subject, body string) error {
	if err := s.client.PublishMessage(ctx, s.topicARN, subject, body); err != nil {
		return stderrors.NewNotificationSendFailedError("sns", err)
	}
	return nil
}

// BudgetWatcher raises one alert per category the first time its
// spending exceeds its budget. Alerting is advisory; failures are
// logged and never affect slice state.
type BudgetWatcher struct {
	budget  map[string]float64
	sender  AlertSender
	logger  logger.Logger
	alerted map[string]bool
}

func NewBudgetWatcher(budget map[string]float64, sender AlertSender, log logger.Logger) *BudgetWatcher {
	return &BudgetWatcher{
		budget:  budget,
		sender:  sender,
		logger:  log.WithFields(map[string]interface{}{"component": "budget-watcher"}),
		alerted: make(map[string]bool),
	}
}

// Check recomputes budget metrics over the collection and alerts on
// newly overspent categories.
func (w *BudgetWatcher) Check(ctx context.Context, transactions []models.Transaction) {
	if w == nil || w.sender == nil {
		return
	}

	for category, metric := range finance.BudgetMetrics(transactions, w.budget) {
		if metric.Remaining >= 0 || w.alerted[category] {
			continue
		}
		// Unbudgeted categories always have negative remaining; skip them.
		if _, ok := w.budget[category]; !ok {
			continue
		}

		w.alerted[category] = true
		subject := fmt.Sprintf("Budget exceeded: %s", category)
		body := fmt.Sprintf("Category %q spent %s against a budget of %s (%.1f%%).",
			category,
			finance.FormatCurrency(metric.Spent),
			finance.FormatCurrency(w.budget[category]),
			metric.Percentage,
		)
		if err := w.sender.SendAlert(ctx, subject, body); err != nil {
			w.logger.Warn("budget alert delivery failed", map[string]interface{}{
				"category": category,
				"error":    err.Error(),
			})
		}
	}
}
