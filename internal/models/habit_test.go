package models

import (
	"strings"
	"testing"
)

func TestParseHabitKey(t *testing.T) {
	tests := []struct {
		input   string
		want    HabitKey
		wantErr bool
	}{
		{input: "diet", want: HabitDiet},
		{input: " Water ", want: HabitWater},
		{input: "1", want: HabitWorkout1},
		{input: "7", want: HabitPhoto},
		{input: "task3", want: HabitDiet},
		{input: "0", wantErr: true},
		{input: "8", wantErr: true},
		{input: "task", wantErr: true},
		{input: "yoga", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHabitKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHabitKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHabitKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHabitLabels(t *testing.T) {
	var none HabitLabels
	if got := none.Label(HabitReading); got != "Knowledge Acquisition" {
		t.Errorf("nil labels Label() = %q", got)
	}

	custom := HabitLabels{HabitReading: "Read 10 pages", HabitDiet: "   "}
	if got := custom.Label(HabitReading); got != "Read 10 pages" {
		t.Errorf("Label() = %q, want custom label", got)
	}
	if got := custom.Label(HabitDiet); got != DefaultHabitLabels[HabitDiet] {
		t.Errorf("blank label should fall back to default, got %q", got)
	}

	resolved := custom.Resolved()
	if len(resolved) != len(HabitKeys) {
		t.Fatalf("Resolved() has %d entries, want %d", len(resolved), len(HabitKeys))
	}

	merged := custom.Merge(HabitLabels{HabitWater: " Gallon ", HabitReading: ""})
	if merged[HabitWater] != "Gallon" {
		t.Errorf("Merge() water = %q, want trimmed override", merged[HabitWater])
	}
	if merged[HabitReading] != DefaultHabitLabels[HabitReading] {
		t.Errorf("Merge() with empty override should restore default, got %q", merged[HabitReading])
	}
	if custom[HabitWater] != "" {
		t.Error("Merge() must not mutate the receiver")
	}
}

func TestMarshalLabels(t *testing.T) {
	s, err := MarshalLabels(nil)
	if err != nil || s != nil {
		t.Fatalf("MarshalLabels(nil) = %v, %v; want nil, nil", s, err)
	}

	s, err = MarshalLabels(HabitLabels{HabitPhoto: "Selfie"})
	if err != nil {
		t.Fatalf("MarshalLabels() error = %v", err)
	}
	if !strings.Contains(*s, `"photo":"Selfie"`) {
		t.Errorf("MarshalLabels() = %s", *s)
	}

	l, err := UnmarshalLabels(s)
	if err != nil {
		t.Fatalf("UnmarshalLabels() error = %v", err)
	}
	if l.Label(HabitPhoto) != "Selfie" {
		t.Errorf("UnmarshalLabels() photo = %q", l.Label(HabitPhoto))
	}

	bad := "{not json"
	if _, err := UnmarshalLabels(&bad); err == nil {
		t.Error("UnmarshalLabels() expected error for malformed JSON")
	}
}
