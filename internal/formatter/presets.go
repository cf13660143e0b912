package formatter

import "fmt"

// Preset is a named template.
type Preset struct {
	Name        string
	Template    string
	Description string
}

// PresetRegistry holds presets in registration order.
type PresetRegistry struct {
	presets map[string]Preset
	order   []string
}

// NewPresetRegistry returns a registry with the default presets.
func NewPresetRegistry() *PresetRegistry {
	r := &PresetRegistry{presets: make(map[string]Preset)}
	for _, p := range []Preset{
		{"compact", "[{{unread-count}}] {{latest-title}}", "Unread messages and the newest title"},
		{"detailed", "{{unread-count}} unread in {{unread-items}} of {{conversation-count}} conversations, {{record-count}} records", "All counts"},
		{"count-only", "{{unread-count}}", "Only the unread message count"},
		{"json", `{"unread":{{unread-count}},"total":{{total-count}},"conversations":{{conversation-count}},"records":{{record-count}}}`, "JSON for scripts"},
	} {
		_ = r.Register(p)
	}
	return r
}

// Get returns a preset by name.
func (r *PresetRegistry) Get(name string) (Preset, error) {
	p, ok := r.presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("preset not found: %s", name)
	}
	return p, nil
}

// List returns all presets in registration order.
func (r *PresetRegistry) List() []Preset {
	out := make([]Preset, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.presets[name])
	}
	return out
}

// Register adds a preset or replaces one with the same name.
func (r *PresetRegistry) Register(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if p.Template == "" {
		return fmt.Errorf("preset template cannot be empty")
	}
	if err := Validate(p.Template); err != nil {
		return fmt.Errorf("preset %s: %w", p.Name, err)
	}
	if _, exists := r.presets[p.Name]; !exists {
		r.order = append(r.order, p.Name)
	}
	r.presets[p.Name] = p
	return nil
}
