package reminder

import (
	"reflect"
	"testing"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
)

func TestMatchWindowBounds(t *testing.T) {
	offsets := []int{60}

	tests := []struct {
		minutes int
		want    bool
	}{
		{58, false},
		{59, true},
		{60, true},
		{61, true},
		{62, false},
	}

	for _, tt := range tests {
		got := Match(tt.minutes, offsets, DefaultWindowMinutes)
		if (len(got) > 0) != tt.want {
			t.Errorf("Match(%d, {60}) triggered=%v, want %v", tt.minutes, len(got) > 0, tt.want)
		}
	}
}

func TestMatchMultipleOffsetsSameTick(t *testing.T) {
	// Adjacent offsets can both have open windows on the same tick.
	got := Match(60, []int{61, 60, 59}, 1)
	want := []int{61, 60, 59}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Match = %v, want %v", got, want)
	}
}

func TestMatchEmptyOffsets(t *testing.T) {
	if got := Match(60, nil, 1); got != nil {
		t.Fatalf("Match with no offsets = %v, want nil", got)
	}
}

func TestMatchWiderWindow(t *testing.T) {
	if got := Match(57, []int{60}, 3); len(got) != 1 {
		t.Fatalf("Match(57, {60}, 3) = %v, want one trigger", got)
	}
	if got := Match(56, []int{60}, 3); got != nil {
		t.Fatalf("Match(56, {60}, 3) = %v, want none", got)
	}
}

func TestEffectiveOffsetsOverride(t *testing.T) {
	defaults := []int{60, 10}

	tests := []struct {
		name string
		task model.Task
		want []int
	}{
		{"no override uses defaults", model.Task{}, []int{60, 10}},
		{"empty override uses defaults", model.Task{ReminderOffsets: []int{}}, []int{60, 10}},
		{"override replaces defaults entirely", model.Task{ReminderOffsets: []int{15}}, []int{15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveOffsets(tt.task, defaults)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("EffectiveOffsets = %v, want %v", got, tt.want)
			}
		})
	}
}
