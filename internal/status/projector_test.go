package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_KnownStatuses(t *testing.T) {
	tests := []struct {
		raw      string
		label    string
		tone     Tone
		progress int
		terminal bool
	}{
		{"pending", "Order Placed", ToneAmber, 5, false},
		{"confirmed", "Packing", ToneSlate, 35, false},
		{"assigned", "En Route", ToneIndigo, 65, false},
		{"picked_up", "En Route", ToneIndigo, 65, false},
		{"in_transit", "En Route", ToneIndigo, 65, false},
		{"delivered", "Delivered", ToneEmerald, 100, true},
		{"cancelled", "Cancelled", ToneRed, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v := Project(tt.raw)
			assert.Equal(t, tt.label, v.Label)
			assert.Equal(t, tt.tone, v.Tone)
			assert.Equal(t, tt.progress, v.ProgressPercent)
			assert.Equal(t, tt.terminal, v.IsTerminal)
		})
	}
}

func TestProject_UnknownStatusFallsBack(t *testing.T) {
	v := Project("bogus_status")
	assert.Equal(t, "bogus_status", v.Label)
	assert.Equal(t, ToneGray, v.Tone)
	assert.Equal(t, 0, v.ProgressPercent)
	assert.False(t, v.IsTerminal)

	// Empty string is just another unknown value.
	assert.Equal(t, ToneGray, Project("").Tone)
}

func TestProject_IsPure(t *testing.T) {
	assert.Equal(t, Project("confirmed"), Project("confirmed"))
}

func TestMilestones_StrictlyIncreasing(t *testing.T) {
	ms := Milestones()
	require.Len(t, ms, 4)
	for i := 1; i < len(ms); i++ {
		assert.Greater(t, ms[i].Threshold, ms[i-1].Threshold)
	}
}

func TestView_Reached(t *testing.T) {
	ms := Milestones()

	packing := Project("confirmed")
	assert.True(t, packing.Reached(ms[0]))
	assert.True(t, packing.Reached(ms[1]))
	assert.False(t, packing.Reached(ms[2]))

	delivered := Project("delivered")
	for _, m := range ms {
		assert.True(t, delivered.Reached(m))
	}

	// A cancelled order lights no milestone.
	cancelled := Project("cancelled")
	for _, m := range ms {
		assert.False(t, cancelled.Reached(m))
	}
}
