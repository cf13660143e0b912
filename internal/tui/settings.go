package tui

import (
	"fmt"
	"time"

	"github.com/cristianoliveira/rowswipe/internal/config"
	"github.com/cristianoliveira/rowswipe/internal/inbox"
	"github.com/cristianoliveira/rowswipe/internal/swipe"
)

// Zone IDs used by inbox rows.
const (
	zoneLeave  = "leave"
	zoneDelete = "delete"
	zoneRead   = "read"
)

// Settings holds the swipe tuning and zone layout of the list, in cells.
type Settings struct {
	Swipe swipe.Options

	LeaveWidth  float64
	DeleteWidth float64
	ReadWidth   float64

	ConfirmDelete bool
	ConfirmLeave  bool
}

// DefaultSettings returns settings matching the configuration defaults.
func DefaultSettings() Settings {
	opts := swipe.DefaultOptions()
	opts.ForceThreshold = 40
	opts.MaxOverscroll = 6
	opts.JitterThreshold = 1
	opts.FlickVelocity = 0.15
	opts.CornerRadius = 1
	return Settings{
		Swipe:         opts,
		LeaveWidth:    12,
		DeleteWidth:   12,
		ReadWidth:     12,
		ConfirmDelete: true,
		ConfirmLeave:  true,
	}
}

// SettingsFromConfig reads settings from the loaded configuration.
func SettingsFromConfig() Settings {
	s := DefaultSettings()
	s.Swipe.Spring = swipe.SpringConfig{
		FPS:       config.GetInt("swipe_fps", s.Swipe.Spring.FPS),
		Frequency: config.GetFloat("swipe_spring_frequency", s.Swipe.Spring.Frequency),
		Damping:   config.GetFloat("swipe_spring_damping", s.Swipe.Spring.Damping),
	}
	s.Swipe.FlickVelocity = config.GetFloat("swipe_flick_velocity", s.Swipe.FlickVelocity)
	s.Swipe.JitterThreshold = config.GetFloat("swipe_jitter", s.Swipe.JitterThreshold)
	s.Swipe.ForceThreshold = config.GetFloat("swipe_force_threshold", s.Swipe.ForceThreshold)
	s.Swipe.MaxOverscroll = config.GetFloat("swipe_max_overscroll", s.Swipe.MaxOverscroll)
	s.LeaveWidth = config.GetFloat("zone_leave_width", s.LeaveWidth)
	s.DeleteWidth = config.GetFloat("zone_delete_width", s.DeleteWidth)
	s.ReadWidth = config.GetFloat("zone_read_width", s.ReadWidth)
	s.ConfirmDelete = config.GetBool("confirm_delete", s.ConfirmDelete)
	s.ConfirmLeave = config.GetBool("confirm_leave", s.ConfirmLeave)
	return s
}

// Validate checks that both row kinds can be built with these settings.
func (s Settings) Validate() error {
	for _, kind := range []inbox.Kind{inbox.KindConversation, inbox.KindRecord} {
		opts := s.Swipe
		opts.Zones = s.zones(inbox.Item{Kind: kind, UnreadCount: 1})
		// Rows get the prompt-backed confirmer; any one passes validation.
		opts.Confirmer = swipe.ConfirmFunc(func(swipe.ConfirmRequest) {})
		if _, err := swipe.NewSession(opts, nil); err != nil {
			return fmt.Errorf("invalid swipe settings for %s rows: %w", kind, err)
		}
	}
	return nil
}

// frameInterval is the delay between animation ticks.
func (s Settings) frameInterval() time.Duration {
	fps := s.Swipe.Spring.FPS
	if fps <= 0 {
		fps = swipe.DefaultSpringConfig().FPS
	}
	return time.Second / time.Duration(fps)
}

// zones returns the action zones for an item, without callbacks.
// Leave sits at the row edge with delete behind it, so a long pull
// escalates into delete.
func (s Settings) zones(item inbox.Item) []swipe.ActionZone {
	del := swipe.ActionZone{
		ID:                   zoneDelete,
		Side:                 swipe.SideLeft,
		Width:                s.DeleteWidth,
		Label:                "Delete",
		RequiresConfirmation: s.ConfirmDelete,
		StickyReveal:         true,
		Force:                true,
		Available:            true,
	}
	if item.Kind == inbox.KindRecord {
		return []swipe.ActionZone{del}
	}
	return []swipe.ActionZone{
		{
			ID:                   zoneLeave,
			Side:                 swipe.SideLeft,
			Width:                s.LeaveWidth,
			Label:                "Leave",
			RequiresConfirmation: s.ConfirmLeave,
			StickyReveal:         true,
			Available:            true,
		},
		del,
		{
			ID:        zoneRead,
			Side:      swipe.SideRight,
			Width:     s.ReadWidth,
			Label:     "Read",
			Available: item.UnreadCount > 0,
		},
	}
}
