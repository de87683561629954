package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// HabitKey identifies one of the fixed daily habits of the program.
type HabitKey string

const (
	HabitWorkout1 HabitKey = "workout1"
	HabitWorkout2 HabitKey = "workout2"
	HabitDiet     HabitKey = "diet"
	HabitWater    HabitKey = "water"
	HabitReading  HabitKey = "reading"
	HabitSleep    HabitKey = "sleep"
	HabitPhoto    HabitKey = "photo"
)

// HabitKeys is the fixed display order of the program's habits.
var HabitKeys = []HabitKey{
	HabitWorkout1,
	HabitWorkout2,
	HabitDiet,
	HabitWater,
	HabitReading,
	HabitSleep,
	HabitPhoto,
}

// DefaultHabitLabels are shown until a user customizes them.
var DefaultHabitLabels = HabitLabels{
	HabitWorkout1: "Physical Training Quest",
	HabitWorkout2: "Combat Training Quest",
	HabitDiet:     "Nutrition Management",
	HabitWater:    "Hydration Protocol",
	HabitReading:  "Knowledge Acquisition",
	HabitSleep:    "Recovery Period",
	HabitPhoto:    "Progress Documentation",
}

// ParseHabitKey accepts a key name ("diet") or its 1-based position ("3" or "task3").
func ParseHabitKey(s string) (HabitKey, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range HabitKeys {
		if string(k) == name {
			return k, nil
		}
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(name, "task")); err == nil {
		if idx >= 1 && idx <= len(HabitKeys) {
			return HabitKeys[idx-1], nil
		}
	}
	return "", fmt.Errorf("unknown habit %q", s)
}

// HabitLabels maps habit keys to display labels. A nil map means "use defaults".
type HabitLabels map[HabitKey]string

// Label returns the display label for key, falling back to the default.
func (l HabitLabels) Label(key HabitKey) string {
	if l != nil {
		if v, ok := l[key]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return DefaultHabitLabels[key]
}

// Resolved returns a complete label set with defaults filled in.
func (l HabitLabels) Resolved() HabitLabels {
	out := make(HabitLabels, len(HabitKeys))
	for _, k := range HabitKeys {
		out[k] = l.Label(k)
	}
	return out
}

// Merge returns a copy of l with overrides applied. An empty override restores the default.
func (l HabitLabels) Merge(overrides HabitLabels) HabitLabels {
	out := l.Resolved()
	for k, v := range overrides {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		} else {
			out[k] = DefaultHabitLabels[k]
		}
	}
	return out
}

// MarshalLabels encodes labels for the custom_habits column. Nil stays nil.
func MarshalLabels(l HabitLabels) (*string, error) {
	if l == nil {
		return nil, nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode habit labels: %w", err)
	}
	s := string(data)
	return &s, nil
}

// UnmarshalLabels decodes the custom_habits column.
func UnmarshalLabels(s *string) (HabitLabels, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	var l HabitLabels
	if err := json.Unmarshal([]byte(*s), &l); err != nil {
		return nil, fmt.Errorf("failed to decode habit labels: %w", err)
	}
	return l, nil
}
