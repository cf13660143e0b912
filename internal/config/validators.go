package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cristianoliveira/rowswipe/internal/colors"
)

// Validator validates and normalizes a configuration value.
// Returns the normalized value and an error if validation fails.
type Validator func(key, value, defaultValue string) (normalized string, err error)

type validatorRegistry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

var registry = &validatorRegistry{
	validators: make(map[string]Validator),
}

// RegisterValidator registers a validator for a configuration key.
// Panics if a validator is already registered for the key.
func RegisterValidator(key string, validator Validator) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.validators[key]; exists {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	registry.validators[key] = validator
}

func getValidator(key string) Validator {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.validators[key]
}

// PositiveIntValidator returns a validator that ensures a value is a positive integer.
func PositiveIntValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': must be a positive integer, using default: %s", key, value, defaultValue))
			return defaultValue, nil
		}
		return value, nil
	}
}

// NonNegativeFloatValidator returns a validator for decimal values >= 0.
// When strict is set, zero is rejected as well.
func NonNegativeFloatValidator(strict bool) Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || (strict && f == 0) {
			want := "a non-negative number"
			if strict {
				want = "a positive number"
			}
			colors.Warning(fmt.Sprintf("invalid %s value '%s': must be %s, using default: %s", key, value, want, defaultValue))
			return defaultValue, nil
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
}

// EnumValidator returns a validator that ensures a value is one of the allowed enum values.
func EnumValidator(allowed map[string]bool) Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		valueLower := strings.ToLower(value)
		if !allowed[valueLower] {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': must be one of: %s; using default: %s", key, value, allowedValues(allowed), defaultValue))
			return defaultValue, nil
		}
		return valueLower, nil
	}
}

// BoolValidator returns a validator that normalizes and validates boolean values.
func BoolValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		normalized := normalizeBool(value)
		if normalized != "true" && normalized != "false" {
			colors.Warning(fmt.Sprintf("invalid boolean value for %s: '%s', must be one of: 1, true, yes, on, 0, false, no, off; using default: %s", key, value, defaultValue))
			return defaultValue, nil
		}
		return normalized, nil
	}
}

func initValidators() {
	positiveInt := PositiveIntValidator()
	RegisterValidator("logging_max_files", positiveInt)
	RegisterValidator("swipe_fps", positiveInt)
	RegisterValidator("hooks_timeout", positiveInt)
	RegisterValidator("hooks_max_async", positiveInt)

	positiveFloat := NonNegativeFloatValidator(true)
	RegisterValidator("swipe_spring_frequency", positiveFloat)
	RegisterValidator("swipe_spring_damping", positiveFloat)
	RegisterValidator("zone_leave_width", positiveFloat)
	RegisterValidator("zone_delete_width", positiveFloat)
	RegisterValidator("zone_read_width", positiveFloat)

	// Zero disables the behavior for these.
	nonNegativeFloat := NonNegativeFloatValidator(false)
	RegisterValidator("swipe_flick_velocity", nonNegativeFloat)
	RegisterValidator("swipe_jitter", nonNegativeFloat)
	RegisterValidator("swipe_force_threshold", nonNegativeFloat)
	RegisterValidator("swipe_max_overscroll", nonNegativeFloat)

	RegisterValidator("logging_level", EnumValidator(map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}))

	RegisterValidator("hooks_failure_mode", EnumValidator(map[string]bool{
		"abort":  true,
		"warn":   true,
		"ignore": true,
	}))

	boolValidator := BoolValidator()
	RegisterValidator("logging_enabled", boolValidator)
	RegisterValidator("confirm_delete", boolValidator)
	RegisterValidator("confirm_leave", boolValidator)
	RegisterValidator("hooks_async", boolValidator)
	RegisterValidator("debug", boolValidator)
	RegisterValidator("quiet", boolValidator)
}

// normalizeBool converts various boolean representations to "true"/"false".
func normalizeBool(val string) string {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return "true"
	case "0", "false", "no", "off":
		return "false"
	default:
		return val
	}
}

func allowedValues(allowed map[string]bool) string {
	values := make([]string, 0, len(allowed))
	for k := range allowed {
		values = append(values, k)
	}
	sort.Strings(values)
	return strings.Join(values, ", ")
}
