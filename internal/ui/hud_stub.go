//go:build !ebiten

package ui

import "electric-fields/internal/core"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Tunable, int, string) *HUD { return nil }

// Width is zero in the headless build.
func (h *HUD) Width() int { return 0 }

// SetStatus is a no-op in the headless build.
func (h *HUD) SetStatus(string) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) bool { return false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}

// MinHeight is zero in the headless build.
func (h *HUD) MinHeight() int { return 0 }
