package systems

import (
	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 倒计时归零的实体会被标记删除，并通过 onExpire 通知宿主（例如计入击杀数）
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	onExpire      func(id ecs.EntityID)
}

// NewLifetimeSystem 创建一个新的生命周期系统
// onExpire 可为 nil
func NewLifetimeSystem(em *ecs.EntityManager, onExpire func(id ecs.EntityID)) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
		onExpire:      onExpire,
	}
}

// Update 更新所有拥有生命周期组件的实体，返回本帧过期的实体数量
// 被删除的实体在帧末统一清理
func (s *LifetimeSystem) Update(deltaTime float64) int {
	expired := 0
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.Expired || s.entityManager.IsPendingDestroy(id) {
			continue
		}

		lifetime.Remaining -= deltaTime
		if lifetime.Remaining > 0 {
			continue
		}

		lifetime.Expired = true
		s.entityManager.DestroyEntity(id)
		expired++
		if s.onExpire != nil {
			s.onExpire(id)
		}
	}

	s.entityManager.RemoveMarkedEntities()
	return expired
}
