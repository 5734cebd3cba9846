package alert

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vignesh678/stock-glass-visualizer/internal/client"
	"github.com/vignesh678/stock-glass-visualizer/internal/events"
	"github.com/vignesh678/stock-glass-visualizer/internal/logger"
	"github.com/vignesh678/stock-glass-visualizer/internal/watchlist"
)

// Notifier delivers a crossing to one channel.
type Notifier interface {
	Notify(ctx context.Context, e events.AlertCrossed) error
}

// LogNotifier writes alerts to the session log.
type LogNotifier struct {
	log *zap.SugaredLogger
}

// NewLogNotifier creates a LogNotifier on the "alert" logger.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.Named("alert")}
}

// Notify logs the alert message.
func (n *LogNotifier) Notify(_ context.Context, e events.AlertCrossed) error {
	n.log.Infow(Message(e),
		"symbol", e.Symbol,
		"target", e.TargetPrice.String(),
		"price", e.Price.String(),
		"direction", e.Direction,
	)
	return nil
}

// EmailSender is the part of the backend client EmailNotifier needs.
type EmailSender interface {
	SendEmailNotification(ctx context.Context, email client.Email) error
}

// PreferencesSource returns the current notification preferences.
type PreferencesSource interface {
	Preferences(ctx context.Context) watchlist.Preferences
}

// EmailNotifier asks the backend to email the user. Sends run in the
// background with their own timeout; failures are logged, never returned.
type EmailNotifier struct {
	sender  EmailSender
	prefs   PreferencesSource
	timeout time.Duration
	log     *zap.SugaredLogger
	wg      sync.WaitGroup
}

// NewEmailNotifier creates an EmailNotifier. A non-positive timeout uses
// client.DefaultTimeout.
func NewEmailNotifier(sender EmailSender, prefs PreferencesSource, timeout time.Duration) *EmailNotifier {
	if timeout <= 0 {
		timeout = client.DefaultTimeout
	}
	return &EmailNotifier{sender: sender, prefs: prefs, timeout: timeout, log: logger.Named("alert.email")}
}

// Notify starts a send if email alerts are enabled and an address is set.
func (n *EmailNotifier) Notify(ctx context.Context, e events.AlertCrossed) error {
	p := n.prefs.Preferences(ctx)
	if !p.EmailEnabled() {
		return nil
	}

	email := client.Email{Email: p.EmailAddress, Subject: Subject(e), Message: Message(e)}
	sendCtx := context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(sendCtx, n.timeout)
		defer cancel()
		if err := n.sender.SendEmailNotification(ctx, email); err != nil {
			n.log.Warnw("Failed to send email notification", "symbol", e.Symbol, "error", err)
			return
		}
		n.log.Debugw("Email notification sent", "symbol", e.Symbol)
	}()
	return nil
}

// Wait blocks until every started send has finished.
func (n *EmailNotifier) Wait() {
	n.wg.Wait()
}

// AlertPublisher publishes crossing events.
type AlertPublisher interface {
	PublishAlertCrossed(ctx context.Context, e events.AlertCrossed) error
}

// DefaultPublishTimeout bounds one KafkaNotifier publish.
const DefaultPublishTimeout = 5 * time.Second

// KafkaNotifier publishes each crossing as an ALERT_CROSSED event.
type KafkaNotifier struct {
	publisher AlertPublisher
	timeout   time.Duration
}

// NewKafkaNotifier creates a KafkaNotifier. A non-positive timeout uses
// DefaultPublishTimeout.
func NewKafkaNotifier(publisher AlertPublisher, timeout time.Duration) *KafkaNotifier {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &KafkaNotifier{publisher: publisher, timeout: timeout}
}

// Notify publishes e, giving up after the notifier's timeout so a slow
// broker cannot hold up the rest of the tick.
func (n *KafkaNotifier) Notify(ctx context.Context, e events.AlertCrossed) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	return n.publisher.PublishAlertCrossed(ctx, e)
}
