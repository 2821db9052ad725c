package platform

import (
	"context"
	"os/exec"
	"runtime"
	"sync"

	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/storage"
)

const permissionKey = "notification-permission"

// Permissions is the tri-state push permission of the host. Request only
// prompts while the state is default; a denied state is never re-prompted.
type Permissions interface {
	State() model.PermissionState
	Request(ctx context.Context) (model.PermissionState, error)
}

// DesktopPermissions grants push when the host has a usable notifier: a
// remote channel is configured, or notify-send/osascript is on PATH.
type DesktopPermissions struct {
	mu       sync.Mutex
	store    *storage.Store
	goos     string
	lookPath func(string) (string, error)
	remote   bool
}

func NewDesktopPermissions(store *storage.Store, remoteConfigured bool) *DesktopPermissions {
	return &DesktopPermissions{
		store:    store,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		remote:   remoteConfigured,
	}
}

func (p *DesktopPermissions) State() model.PermissionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *DesktopPermissions) Request(ctx context.Context) (model.PermissionState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	current := p.stateLocked()
	if current != model.PermissionDefault {
		return current, nil
	}
	if err := ctx.Err(); err != nil {
		return current, err
	}
	next := model.PermissionDenied
	if p.remote || p.hasDesktopNotifier() {
		next = model.PermissionGranted
	}
	storage.Set(p.store, permissionKey, next)
	return next, nil
}

func (p *DesktopPermissions) stateLocked() model.PermissionState {
	state := storage.Get(p.store, permissionKey, model.PermissionDefault)
	if !state.IsValid() {
		return model.PermissionDefault
	}
	return state
}

func (p *DesktopPermissions) hasDesktopNotifier() bool {
	var bin string
	switch p.goos {
	case "linux":
		bin = "notify-send"
	case "darwin":
		bin = "osascript"
	default:
		return false
	}
	_, err := p.lookPath(bin)
	return err == nil
}

// StaticPermissions always reports the same state. Used for headless runs.
type StaticPermissions struct {
	Value model.PermissionState
}

func (s StaticPermissions) State() model.PermissionState { return s.Value }

func (s StaticPermissions) Request(context.Context) (model.PermissionState, error) {
	return s.Value, nil
}
