package systems

import (
	"math"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/config"
)

// SpawnPosition 在以竞技场中心为圆心的圆周上均匀随机选取出生点
//
//	(r·cos θ, height, r·sin θ)，θ ∈ [0, 2π)
//
// 与单位类型无关。
func SpawnPosition(rng Rand, p config.PlacementConfig) components.Vec3 {
	angle := rng.Float64() * 2 * math.Pi
	return components.Vec3{
		X: math.Cos(angle) * p.Radius,
		Y: p.Height,
		Z: math.Sin(angle) * p.Radius,
	}
}
