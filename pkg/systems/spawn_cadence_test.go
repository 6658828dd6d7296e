package systems

import (
	"math"
	"testing"

	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/game"
	"github.com/stretchr/testify/assert"
)

func TestSpawnDelay_Values(t *testing.T) {
	cad := config.DefaultWaveConfig().Cadence

	tests := []struct {
		wave int
		want float64
	}{
		{0, 0.5},
		{1, 0.47},
		{5, 0.35},
		{10, 0.2},
		{11, 0.17},
		{12, 0.15},
		{20, 0.15},
		{1000, 0.15},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, SpawnDelay(tt.wave, cad), 1e-9, "wave %d", tt.wave)
	}
}

func TestSpawnDelay_MonotonicAndBounded(t *testing.T) {
	cad := config.DefaultWaveConfig().Cadence

	prev := math.Inf(1)
	for wave := 0; wave <= 200; wave++ {
		d := SpawnDelay(wave, cad)
		assert.LessOrEqual(t, d, prev, "cadence increased at wave %d", wave)
		assert.GreaterOrEqual(t, d, 0.15)
		assert.LessOrEqual(t, d, 0.5)
		prev = d
	}
}

func TestSpawnPosition_OnCircle(t *testing.T) {
	place := config.DefaultWaveConfig().Placement
	rng := game.NewRandomSource(5)

	for i := 0; i < 500; i++ {
		pos := SpawnPosition(rng, place)
		assert.InDelta(t, 20.0, math.Hypot(pos.X, pos.Z), 1e-9)
		assert.Equal(t, 1.2, pos.Y)
	}
}

func TestSpawnPosition_Angle(t *testing.T) {
	place := config.PlacementConfig{Radius: 10, Height: 3}

	tests := []struct {
		f    float64
		x, z float64
	}{
		{0, 10, 0},
		{0.25, 0, 10},
		{0.5, -10, 0},
		{0.75, 0, -10},
	}

	for _, tt := range tests {
		pos := SpawnPosition(fixedRand{f: tt.f}, place)
		assert.InDelta(t, tt.x, pos.X, 1e-9, "f=%v", tt.f)
		assert.InDelta(t, tt.z, pos.Z, 1e-9, "f=%v", tt.f)
		assert.Equal(t, 3.0, pos.Y)
	}
}
