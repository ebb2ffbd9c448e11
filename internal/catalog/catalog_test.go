package catalog

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/groundstation/internal/monitoring"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	m.Run()
}

func openCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("close catalog: %v", err)
		}
	})
	return c
}

func TestOpen_AppliesAllMigrations(t *testing.T) {
	c := openCatalog(t)

	version, dirty, err := c.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)
}

func TestSatellites(t *testing.T) {
	c := openCatalog(t)

	sats, err := c.Satellites()
	require.NoError(t, err)

	want := []Satellite{
		{
			ID:           "meteor",
			Name:         "Meteor-M2",
			Datalink:     "lrpt",
			DatalinkName: "Low Rate Picture Transmission",
			Decoders:     []Decoder{{Kind: "soft", Description: "QPSK soft symbols"}},
		},
		{
			ID:           "npoess",
			Name:         "Suomi NPP / NOAA-20",
			Datalink:     "hrd",
			DatalinkName: "High Rate Data",
			Decoders: []Decoder{
				{Kind: "soft", Description: "QPSK soft symbols"},
				{Kind: "cadu", Description: "CADU frames"},
				{Kind: "asm", Description: "ASM-synchronised stream"},
			},
		},
	}
	if diff := cmp.Diff(want, sats); diff != "" {
		t.Errorf("Satellites() mismatch (-want +got):\n%s", diff)
	}
}

func TestSatellite(t *testing.T) {
	c := openCatalog(t)

	s, err := c.Satellite("npoess")
	require.NoError(t, err)
	assert.Equal(t, "hrd", s.Datalink)
	assert.True(t, s.HasDecoder("cadu"))
	assert.False(t, s.HasDecoder("qpsk"))

	_, err = c.Satellite("hubble")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSatellite))
}

func TestDecoders_UnknownDatalink(t *testing.T) {
	c := openCatalog(t)

	decoders, err := c.Decoders("apt")
	require.NoError(t, err)
	assert.Empty(t, decoders)
}

func TestOpen_Independent(t *testing.T) {
	a := openCatalog(t)
	b := openCatalog(t)

	_, err := a.db.Exec("DELETE FROM satellites WHERE satellite_id = 'meteor'")
	require.NoError(t, err)

	_, err = b.Satellite("meteor")
	assert.NoError(t, err, "catalogs must not share an in-memory database")
}
