package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidNotificationType = errors.New("model: invalid notification type")
	ErrInvalidPermissionState  = errors.New("model: invalid permission state")
)

type NotificationType string

const (
	NotificationAchievement NotificationType = "achievement"
	NotificationLevelUp     NotificationType = "levelup"
	NotificationReminder    NotificationType = "reminder"
)

func (n NotificationType) IsValid() bool {
	switch n {
	case NotificationAchievement, NotificationLevelUp, NotificationReminder:
		return true
	default:
		return false
	}
}

type AppNotification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
	Read      bool             `json:"read"`
}

func (n AppNotification) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("model: notification id is required")
	}
	if strings.TrimSpace(n.Message) == "" {
		return errors.New("model: notification message is required")
	}
	if !n.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidNotificationType, n.Type)
	}
	if n.CreatedAt.IsZero() {
		return errors.New("model: notification created_at is required")
	}
	return nil
}

type NotificationSettings struct {
	DailyReminders        bool `json:"dailyReminders"`
	WeeklyReviewReminders bool `json:"weeklyReviewReminders"`
}

// PermissionState mirrors the platform's push permission. Only default is
// ever prompted; denied is final.
type PermissionState string

const (
	PermissionDefault PermissionState = "default"
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
)

func (p PermissionState) IsValid() bool {
	switch p {
	case PermissionDefault, PermissionGranted, PermissionDenied:
		return true
	default:
		return false
	}
}
