package model

import "fmt"

// BaseXP scales the XP needed for the next level: BaseXP * level.
const BaseXP = 100

type UserStats struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
}

func (s UserStats) Threshold() int {
	return BaseXP * s.Level
}

func (s UserStats) Validate() error {
	if s.Level < 1 {
		return fmt.Errorf("model: level must be positive, got %d", s.Level)
	}
	if s.XP < 0 || s.XP >= s.Threshold() {
		return fmt.Errorf("model: xp %d outside [0,%d)", s.XP, s.Threshold())
	}
	return nil
}
