package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	html "github.com/gofiber/template/html/v2"
	"golang.org/x/time/rate"

	applog "workersdeck/internal/log"
)

//go:embed templates/*.html
var templateFS embed.FS

const sendTimeout = 30 * time.Second

// Notifier sends password-reset mail in the background. Delivery failures are
// logged and never reported to the caller.
type Notifier struct {
	sender  Sender
	views   *html.Engine
	limiter *rate.Limiter
	baseURL string
	ttl     time.Duration
	wg      sync.WaitGroup
}

// NewNotifier renders mail from the embedded templates. perSecond bounds the
// outbound send rate; zero or less means unlimited.
func NewNotifier(sender Sender, baseURL string, resetTTL time.Duration, perSecond float64) (*Notifier, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	views := html.NewFileSystem(http.FS(sub), ".html")
	if err := views.Load(); err != nil {
		return nil, fmt.Errorf("mail.NewNotifier: %w", err)
	}

	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Notifier{
		sender:  sender,
		views:   views,
		limiter: rate.NewLimiter(limit, 1),
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     resetTTL,
	}, nil
}

// ResetLink is the frontend URL that carries token.
func (n *Notifier) ResetLink(token string) string {
	return n.baseURL + "/reset-password?token=" + url.QueryEscape(token)
}

// SendPasswordReset renders and dispatches the reset mail on its own
// goroutine and returns immediately.
func (n *Notifier) SendPasswordReset(name, email, token string) {
	if name == "" {
		name = "user"
	}
	link := n.ResetLink(token)

	var body bytes.Buffer
	err := n.views.Render(&body, "reset_password", map[string]any{
		"Name": name,
		"Link": link,
		"TTL":  n.ttl.String(),
	})
	if err != nil {
		applog.Error(nil, "mail.reset.render.fail", err, map[string]any{"to": email})
		return
	}
	msg := Message{To: email, Subject: "Reset your Workers Deck password", HTML: body.String()}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := n.limiter.Wait(ctx); err != nil {
			applog.Error(nil, "mail.reset.throttle.fail", err, map[string]any{"to": email})
			return
		}
		if err := n.sender.Send(ctx, msg); err != nil {
			applog.Error(nil, "mail.reset.fail", err, map[string]any{"to": email})
			return
		}
		applog.Info(nil, "mail.reset.sent", map[string]any{"to": email})
	}()
}

// Wait blocks until every dispatched message has been attempted.
func (n *Notifier) Wait() { n.wg.Wait() }
