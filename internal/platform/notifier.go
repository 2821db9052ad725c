package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Push struct {
	Title string
	Body  string
}

type Notifier interface {
	Notify(ctx context.Context, p Push) error
}

type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, Push) error { return nil }

type DesktopNotifier struct {
	goos string
	run  func(ctx context.Context, name string, args ...string) error
}

func NewDesktopNotifier() DesktopNotifier {
	return DesktopNotifier{goos: runtime.GOOS, run: runCommand}
}

func (d DesktopNotifier) Notify(ctx context.Context, p Push) error {
	switch d.goos {
	case "linux":
		return d.run(ctx, "notify-send", p.Title, p.Body)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(p.Body), escapeAppleScript(p.Title))
		return d.run(ctx, "osascript", "-e", script)
	default:
		return nil
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramNotifier struct {
	bot    telegramSender
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("platform: empty telegram token")
	}
	if chatID == 0 {
		return nil, errors.New("platform: missing telegram chat id")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: api, chatID: chatID}, nil
}

func (t *TelegramNotifier) Notify(_ context.Context, p Push) error {
	text := p.Body
	if p.Title != "" {
		text = p.Title + "\n" + p.Body
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// MultiNotifier fans a push out to every channel and joins the failures.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, p Push) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
