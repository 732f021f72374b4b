package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tempo-sh/tempo/timer"
)

func TestFormatStatus(t *testing.T) {
	testCases := []struct {
		name string
		view timer.ViewState
		want string
	}{
		{
			name: "work interval",
			view: timer.ViewState{
				Kind:      timer.KindInterval,
				Round:     3,
				Remaining: "24:10",
			},
			want: "[Work] 24:10 (round 3)",
		},
		{
			name: "paused",
			view: timer.ViewState{
				Kind:      timer.KindInterval,
				Remaining: "25:00",
				IsPaused:  true,
			},
			want: "[Work] 25:00 (round 0) [paused]",
		},
		{
			name: "short break",
			view: timer.ViewState{
				Kind:      timer.KindShortBreak,
				IsBreak:   true,
				Round:     1,
				Remaining: "05:00",
			},
			want: "[Short break] 05:00 (round 1)",
		},
		{
			name: "postponed long break",
			view: timer.ViewState{
				Kind:          timer.KindPostponedLongBreak,
				IsPostponed:   true,
				PostponeCount: 2,
				Round:         4,
				Remaining:     "03:30",
			},
			want: "[Postponed x2] 03:30 (round 4)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatStatus(tc.view))
		})
	}
}

func TestCommandKindsCoverAllControls(t *testing.T) {
	for _, name := range []string{"toggle", "skip", "postpone", "reset"} {
		kind, ok := commandKinds[name]
		assert.True(t, ok, "command %s has no wire mapping", name)
		assert.NotEmpty(t, kind)
	}
}
