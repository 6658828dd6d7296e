package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y, Z float64
}

type testTagComponent struct {
	Name string
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	// ID从1开始，0保留为无效ID
	if id1 != 1 || id2 != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", id1, id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.EntityCount())
	}
}

func TestGenericAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 20, Y: 1.2, Z: -3})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if pos.X != 20 || pos.Y != 1.2 || pos.Z != -3 {
		t.Errorf("Component data mismatch, got %+v", *pos)
	}

	// 泛型与反射访问方式应一致
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Reflection lookup should see the generic component")
	}
	if HasComponent[*testTagComponent](em, id) {
		t.Error("Should not have a component that was never added")
	}
}

func TestAddComponentReplacesSameType(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testTagComponent{Name: "first"})
	AddComponent(em, id, &testTagComponent{Name: "second"})

	tag, _ := GetComponent[*testTagComponent](em, id)
	if tag.Name != "second" {
		t.Errorf("Expected replaced component, got %q", tag.Name)
	}
}

func TestAddComponentToUnknownEntity(t *testing.T) {
	em := NewEntityManager()
	AddComponent(em, EntityID(42), &testTagComponent{})

	if HasComponent[*testTagComponent](em, EntityID(42)) {
		t.Error("Unknown entity should not gain components")
	}
	if em.EntityCount() != 0 {
		t.Errorf("Expected no entities, got %d", em.EntityCount())
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testTagComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !HasComponent[*testTagComponent](em, id) {
		t.Error("Entity should still exist before cleanup")
	}
	if !em.IsPendingDestroy(id) {
		t.Error("Entity should be marked for destruction")
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("Expected 1 removed entity, got %d", removed)
	}
	if HasComponent[*testTagComponent](em, id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.IsPendingDestroy(id) {
		t.Error("Pending set should be empty after cleanup")
	}
}

func TestGetEntitiesWithIsSorted(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 10)
	for i := 0; i < 10; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testTagComponent{})
		if i%2 == 0 {
			AddComponent(em, id, &testPositionComponent{})
		}
		ids = append(ids, id)
	}

	tagged := GetEntitiesWith1[*testTagComponent](em)
	if len(tagged) != 10 {
		t.Fatalf("Expected 10 tagged entities, got %d", len(tagged))
	}
	for i := 1; i < len(tagged); i++ {
		if tagged[i-1] >= tagged[i] {
			t.Fatalf("Expected ascending IDs, got %v", tagged)
		}
	}

	both := GetEntitiesWith2[*testTagComponent, *testPositionComponent](em)
	if len(both) != 5 {
		t.Errorf("Expected 5 entities with both components, got %d", len(both))
	}
	if len(both) > 0 && both[0] != ids[0] {
		t.Errorf("Expected first match %d, got %d", ids[0], both[0])
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	first := em.CreateEntity()
	em.CreateEntity()
	em.DestroyEntity(first)

	em.Clear()

	if em.EntityCount() != 0 {
		t.Errorf("Expected no entities after Clear, got %d", em.EntityCount())
	}
	if em.RemoveMarkedEntities() != 0 {
		t.Error("Clear should drop pending destructions")
	}
	// ID 计数不回退
	if next := em.CreateEntity(); next != 3 {
		t.Errorf("Expected next ID 3 after Clear, got %d", next)
	}
}
