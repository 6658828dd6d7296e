// Package ecs 提供最小的实体-组件存储
//
// 组件以其动态类型为键存放；推荐通过泛型辅助函数访问：
//
//	ecs.AddComponent(em, id, &components.HostileComponent{...})
//	hostile, ok := ecs.GetComponent[*components.HostileComponent](em, id)
//	ids := ecs.GetEntitiesWith1[*components.HostileComponent](em)
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效ID
type EntityID uint64

// EntityManager 管理所有实体和组件
// 非并发安全：只应在游戏循环所在的 goroutine 中使用
type EntityManager struct {
	nextID     uint64
	components map[EntityID]map[reflect.Type]any
	// 待删除的实体ID列表（延迟到 RemoveMarkedEntities 统一删除）
	pendingDestroy map[EntityID]struct{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:         1,
		components:     make(map[EntityID]map[reflect.Type]any),
		pendingDestroy: make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
// 重复标记同一实体是安全的
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.components[id]; !ok {
		return
	}
	em.pendingDestroy[id] = struct{}{}
}

// IsPendingDestroy 实体是否已被标记删除
func (em *EntityManager) IsPendingDestroy(id EntityID) bool {
	_, ok := em.pendingDestroy[id]
	return ok
}

// RemoveMarkedEntities 清理所有标记删除的实体，返回实际删除数量
func (em *EntityManager) RemoveMarkedEntities() int {
	removed := 0
	for id := range em.pendingDestroy {
		if _, ok := em.components[id]; ok {
			delete(em.components, id)
			removed++
		}
		delete(em.pendingDestroy, id)
	}
	return removed
}

// Clear 立即删除全部实体（ID 计数不回退）
func (em *EntityManager) Clear() {
	em.components = make(map[EntityID]map[reflect.Type]any)
	em.pendingDestroy = make(map[EntityID]struct{})
}

// EntityCount 返回当前存在的实体数量（包括已标记但尚未删除的实体）
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// AddComponent 为实体添加组件；同类型组件会被替换
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if compMap, exists := em.components[id]; exists {
		compMap[reflect.TypeOf(component)] = component
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	compMap, exists := em.components[id]
	if !exists {
		return nil, false
	}
	comp, found := compMap[componentType]
	return comp, found
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, found := em.GetComponent(id, componentType)
	return found
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 结果按ID升序排列，保证遍历顺序稳定（便于测试复现）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// AddComponent 泛型版本的 AddComponent
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.AddComponent(id, component)
}

// GetComponent 泛型版本的 GetComponent
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 泛型版本的 HasComponent
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, reflect.TypeFor[T]())
}

// GetEntitiesWith1 查询拥有组件 T 的所有实体
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(reflect.TypeFor[T]())
}

// GetEntitiesWith2 查询同时拥有组件 T1、T2 的所有实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(reflect.TypeFor[T1](), reflect.TypeFor[T2]())
}
