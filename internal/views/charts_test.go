package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/groundstation/internal/store"
	"github.com/banshee-data/groundstation/internal/timeutil"
)

func TestSummariseActivity(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	activity := []store.ActivityEntry{
		{Type: store.TypeSelectSatellite, At: t0},
		{Type: store.TypeSelectFile, At: t0.Add(2 * time.Second)},
		{Type: store.TypeSelectFile, At: t0.Add(4 * time.Second)},
		{Type: store.TypeSelectDecoder, At: t0.Add(6 * time.Second)},
	}

	got := SummariseActivity(activity)

	want := ActivitySummary{
		Types:        []store.ActionType{store.TypeSelectDecoder, store.TypeSelectFile, store.TypeSelectSatellite},
		Counts:       []int{1, 2, 1},
		MeanInterval: 2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SummariseActivity mismatch (-want +got):\n%s", diff)
	}
}

func TestSummariseActivity_Sparse(t *testing.T) {
	assert.Equal(t, ActivitySummary{}, SummariseActivity(nil))

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	one := SummariseActivity([]store.ActivityEntry{
		{Type: store.TypeClearFile, At: t0},
		{Type: store.TypeClearFile, At: t0.Add(3 * time.Second)},
	})
	assert.Equal(t, 3.0, one.MeanInterval)
	assert.Zero(t, one.StdDevInterval)
}

func TestRenderActivityChart(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s := store.New(store.WithClock(clock))
	s.Dispatch(store.SelectSatellite{Satellite: "meteor"})
	clock.Advance(time.Second)
	s.Dispatch(store.SelectDecoder{Satellite: "meteor", Decoder: "soft"})

	var buf bytes.Buffer
	require.NoError(t, RenderActivityChart(&buf, s.GetState()))

	out := buf.String()
	assert.Contains(t, out, "Session activity")
	assert.Contains(t, out, "select_satellite")
	assert.Contains(t, out, "select_decoder")
	assert.Contains(t, out, echartsAssetsHost)
}

func TestRenderActivityChart_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderActivityChart(&buf, store.New().GetState()))
	assert.Contains(t, buf.String(), "Actions (0 applied)")
}
