package systems

import (
	"math"

	"github.com/gonewx/arena/pkg/config"
)

// SpawnDelay 返回第 wave 波相邻两次刷怪之间的间隔（秒）
//
//	max(Floor, Base - wave*Step)
//
// 随波次单调不增，不低于 Floor。
func SpawnDelay(wave int, cad config.CadenceConfig) float64 {
	return math.Max(cad.Floor, cad.Base-float64(wave)*cad.Step)
}
