package components

import "github.com/gonewx/arena/pkg/types"

// Vec3 竞技场中的三维坐标（Y 轴朝上）
type Vec3 struct {
	X, Y, Z float64
}

// PositionComponent 实体在竞技场中的位置
type PositionComponent struct {
	Pos Vec3
}

// HostileComponent 敌方单位标记组件
// 拥有此组件的实体计入场上存活敌人数量
type HostileComponent struct {
	// Kind 单位类型（无人机/士兵）
	Kind types.UnitKind

	// Wave 生成时所属的波次编号（1-based）
	Wave int
}

// LifetimeComponent 实体剩余存活时间
// 宿主程序用它模拟敌人被击杀，倒计时归零即视为死亡
type LifetimeComponent struct {
	Remaining float64 // 剩余存活时间(秒)
	Expired   bool
}
