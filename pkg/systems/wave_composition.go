package systems

import (
	"fmt"
	"math"

	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/types"
)

// Rand 波次调度所需的随机数来源
// game.RandomSource 实现了该接口；测试可注入固定序列
type Rand interface {
	// Intn 返回 [0, n) 范围内的随机整数
	Intn(n int) int
	// Float64 返回 [0.0, 1.0) 范围内的随机浮点数
	Float64() float64
}

// DroneCount 返回第 wave 波的无人机数量
//
//	min(DroneBase + wave*DronePerWave, DroneCap)
func DroneCount(wave int, comp config.CompositionConfig) int {
	return min(comp.DroneBase+wave*comp.DronePerWave, comp.DroneCap)
}

// SoldierCount 返回第 wave 波的士兵数量，SoldierStartWave 之前为 0
//
// 默认配置下等价于 min(floor((wave-2)*1.5), 10)
func SoldierCount(wave int, comp config.CompositionConfig) int {
	if wave < comp.SoldierStartWave {
		return 0
	}
	n := int(math.Floor(float64(wave-comp.SoldierStartWave+1) * comp.SoldierPerWave))
	return min(n, comp.SoldierCap)
}

// PlanWave 生成第 wave 波的刷怪队列
//
// 先放入全部无人机，再放入全部士兵，然后用 Fisher–Yates 均匀洗牌：
// i 从末尾递减到 1，与 [0, i] 中随机选出的位置交换。
// 队列长度即本波敌人总数。
//
// wave 必须 >= 1（空闲状态只会在自增之后调用本函数），否则 panic。
func PlanWave(wave int, rng Rand, comp config.CompositionConfig) []types.UnitKind {
	if wave < 1 {
		panic(fmt.Sprintf("PlanWave: wave must be >= 1, got %d", wave))
	}

	drones := DroneCount(wave, comp)
	soldiers := SoldierCount(wave, comp)

	queue := make([]types.UnitKind, 0, drones+soldiers)
	for i := 0; i < drones; i++ {
		queue = append(queue, types.UnitDrone)
	}
	for i := 0; i < soldiers; i++ {
		queue = append(queue, types.UnitSoldier)
	}

	for i := len(queue) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		queue[i], queue[j] = queue[j], queue[i]
	}

	return queue
}
