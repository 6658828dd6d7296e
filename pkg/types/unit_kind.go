// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// UnitKind 定义敌方单位的种类（刷怪队列中的令牌）
type UnitKind int

const (
	// UnitUnknown 未知单位类型
	UnitUnknown UnitKind = iota

	// UnitDrone 无人机：速度快、血量低，第1波起出现
	UnitDrone

	// UnitSoldier 士兵：移动慢、带护甲，第3波起出现
	UnitSoldier
)

var unitKindStringMap = map[UnitKind]string{
	UnitDrone:   "drone",
	UnitSoldier: "soldier",
}

// String 返回单位类型的名称（用于日志与 HUD）
func (k UnitKind) String() string {
	if s, ok := unitKindStringMap[k]; ok {
		return s
	}
	return "unknown"
}

// AllUnitKinds 返回所有可生成的单位类型（按生成队列中的排列顺序）
func AllUnitKinds() []UnitKind {
	return []UnitKind{UnitDrone, UnitSoldier}
}
