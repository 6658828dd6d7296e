package systems

import (
	"log"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/types"
)

// HostileRoster 基于 ECS 的敌方单位管理器，实现 EnemyManager
//
// Spawn 创建带 HostileComponent / PositionComponent 的实体；
// lifetime > 0 时额外挂上 LifetimeComponent，由 LifetimeSystem 到期销毁（模拟被击杀）。
// Count 统计未被标记删除的敌方实体。
type HostileRoster struct {
	entityManager *ecs.EntityManager

	// lifetime 新生成单位的存活时间（秒），0 表示不自动销毁
	lifetime float64

	// waveSource 提供生成时的波次编号，可为 nil
	waveSource func() int
}

// NewHostileRoster 创建敌方单位管理器
func NewHostileRoster(em *ecs.EntityManager, lifetime float64) *HostileRoster {
	return &HostileRoster{
		entityManager: em,
		lifetime:      lifetime,
	}
}

// SetWaveSource 设置波次编号来源（通常是 WaveScheduler.Wave）
func (r *HostileRoster) SetWaveSource(fn func() int) {
	r.waveSource = fn
}

// Spawn 生成一个敌方单位
func (r *HostileRoster) Spawn(kind types.UnitKind, pos components.Vec3) {
	wave := 0
	if r.waveSource != nil {
		wave = r.waveSource()
	}

	id := r.entityManager.CreateEntity()
	ecs.AddComponent(r.entityManager, id, &components.HostileComponent{Kind: kind, Wave: wave})
	ecs.AddComponent(r.entityManager, id, &components.PositionComponent{Pos: pos})
	if r.lifetime > 0 {
		ecs.AddComponent(r.entityManager, id, &components.LifetimeComponent{Remaining: r.lifetime})
	}
}

// Count 返回场上存活的敌方单位数量
func (r *HostileRoster) Count() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.HostileComponent](r.entityManager) {
		if !r.entityManager.IsPendingDestroy(id) {
			count++
		}
	}
	return count
}

// IDs 返回场上存活的敌方单位 ID（按创建顺序）
func (r *HostileRoster) IDs() []ecs.EntityID {
	all := ecs.GetEntitiesWith1[*components.HostileComponent](r.entityManager)
	ids := make([]ecs.EntityID, 0, len(all))
	for _, id := range all {
		if !r.entityManager.IsPendingDestroy(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// CountByKind 按单位类型统计存活数量
func (r *HostileRoster) CountByKind() map[types.UnitKind]int {
	result := make(map[types.UnitKind]int)
	for _, id := range ecs.GetEntitiesWith1[*components.HostileComponent](r.entityManager) {
		if r.entityManager.IsPendingDestroy(id) {
			continue
		}
		hostile, ok := ecs.GetComponent[*components.HostileComponent](r.entityManager, id)
		if !ok {
			continue
		}
		result[hostile.Kind]++
	}
	return result
}

// Kill 标记一个敌方单位死亡，返回是否成功
func (r *HostileRoster) Kill(id ecs.EntityID) bool {
	if !ecs.HasComponent[*components.HostileComponent](r.entityManager, id) || r.entityManager.IsPendingDestroy(id) {
		return false
	}
	r.entityManager.DestroyEntity(id)
	return true
}

// Clear 移除所有敌方单位（游戏重开时使用）
func (r *HostileRoster) Clear() {
	ids := ecs.GetEntitiesWith1[*components.HostileComponent](r.entityManager)
	for _, id := range ids {
		r.entityManager.DestroyEntity(id)
	}
	r.entityManager.RemoveMarkedEntities()
	log.Printf("[HostileRoster] Cleared %d hostiles", len(ids))
}
