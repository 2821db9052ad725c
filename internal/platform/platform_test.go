package platform

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/storage"
)

func newStore() *storage.Store {
	return storage.NewStore(storage.NewMemoryBackend(), storage.DefaultPrefix, log.New(io.Discard, "", 0))
}

func TestDesktopPermissionsGrantOnceAndPersist(t *testing.T) {
	store := newStore()
	probes := 0
	p := NewDesktopPermissions(store, false)
	p.goos = "linux"
	p.lookPath = func(name string) (string, error) {
		probes++
		if name != "notify-send" {
			t.Fatalf("unexpected probe %q", name)
		}
		return "/usr/bin/notify-send", nil
	}

	if got := p.State(); got != model.PermissionDefault {
		t.Fatalf("expected default state, got %s", got)
	}
	got, err := p.Request(context.Background())
	if err != nil || got != model.PermissionGranted {
		t.Fatalf("expected granted, got %s err=%v", got, err)
	}
	if _, err := p.Request(context.Background()); err != nil {
		t.Fatalf("second request: %v", err)
	}
	if probes != 1 {
		t.Fatalf("expected a single prompt, got %d", probes)
	}

	reloaded := NewDesktopPermissions(store, false)
	if got := reloaded.State(); got != model.PermissionGranted {
		t.Fatalf("expected persisted granted state, got %s", got)
	}
}

func TestDesktopPermissionsDeniedIsNeverReprompted(t *testing.T) {
	p := NewDesktopPermissions(newStore(), false)
	p.goos = "linux"
	calls := 0
	p.lookPath = func(string) (string, error) {
		calls++
		return "", errors.New("not found")
	}

	for i := 0; i < 3; i++ {
		got, err := p.Request(context.Background())
		if err != nil || got != model.PermissionDenied {
			t.Fatalf("expected denied, got %s err=%v", got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("denied state was re-prompted %d times", calls)
	}
}

func TestDesktopPermissionsRemoteChannelGrants(t *testing.T) {
	p := NewDesktopPermissions(newStore(), true)
	p.goos = "plan9"
	got, err := p.Request(context.Background())
	if err != nil || got != model.PermissionGranted {
		t.Fatalf("expected granted with remote channel, got %s err=%v", got, err)
	}
}

func TestDesktopNotifierCommands(t *testing.T) {
	var gotName string
	var gotArgs []string
	run := func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	linux := DesktopNotifier{goos: "linux", run: run}
	if err := linux.Notify(context.Background(), Push{Title: "Reminder", Body: "2 tasks left"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if gotName != "notify-send" || len(gotArgs) != 2 || gotArgs[1] != "2 tasks left" {
		t.Fatalf("unexpected linux command %s %v", gotName, gotArgs)
	}

	darwin := DesktopNotifier{goos: "darwin", run: run}
	if err := darwin.Notify(context.Background(), Push{Title: "T", Body: `say "hi"`}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if gotName != "osascript" || gotArgs[1] != `display notification "say \"hi\"" with title "T"` {
		t.Fatalf("unexpected darwin command %s %v", gotName, gotArgs)
	}
}

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramNotifierSendsToChat(t *testing.T) {
	sender := &fakeSender{}
	n := &TelegramNotifier{bot: sender, chatID: 42}
	if err := n.Notify(context.Background(), Push{Title: "Level up", Body: "You reached level 2"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(sender.sent))
	}
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("unexpected chattable %T", sender.sent[0])
	}
	if msg.ChatID != 42 || msg.Text != "Level up\nYou reached level 2" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestNewTelegramNotifierValidatesInput(t *testing.T) {
	if _, err := NewTelegramNotifier("", 1); err == nil {
		t.Fatalf("expected error for empty token")
	}
	if _, err := NewTelegramNotifier("token", 0); err == nil {
		t.Fatalf("expected error for missing chat id")
	}
}

type countingNotifier struct {
	calls int
	err   error
}

func (c *countingNotifier) Notify(context.Context, Push) error {
	c.calls++
	return c.err
}

func TestMultiNotifierFansOutAndJoinsErrors(t *testing.T) {
	ok := &countingNotifier{}
	bad := &countingNotifier{err: errors.New("offline")}
	m := MultiNotifier{ok, nil, bad, NoopNotifier{}}

	err := m.Notify(context.Background(), Push{Body: "x"})
	if err == nil || !errors.Is(err, bad.err) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if ok.calls != 1 || bad.calls != 1 {
		t.Fatalf("expected every notifier called once, got ok=%d bad=%d", ok.calls, bad.calls)
	}
}
