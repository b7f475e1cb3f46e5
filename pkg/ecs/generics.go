package ecs

import "reflect"

// 泛型辅助函数
//
// EntityManager 的方法基于 reflect.Type,调用方需要手写
// reflect.TypeOf(&components.X{}) 并做类型断言。
// 本文件提供类型安全的泛型包装,T 一律使用组件指针类型,
// 如 GetComponent[*components.TargetComponent](em, id)。

// AddComponent 为实体添加组件(泛型版)
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.AddComponent(id, component)
}

// GetComponent 获取实体的特定类型组件(泛型版)
// 返回: 组件实例和是否存在
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, found := em.GetComponent(id, reflect.TypeOf(zero))
	if !found {
		return zero, false
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// HasComponent 检查实体是否拥有特定类型组件(泛型版)
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	var zero T
	return em.HasComponent(id, reflect.TypeOf(zero))
}

// RemoveComponent 从实体移除指定类型的组件(泛型版)
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	var zero T
	em.RemoveComponent(id, reflect.TypeOf(zero))
}

// GetEntitiesWith1 查询拥有组件 T 的所有实体,按创建顺序排列
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	var zero T
	return em.GetEntitiesWith(reflect.TypeOf(zero))
}

// GetEntitiesWith2 查询同时拥有组件 T1 和 T2 的所有实体,按创建顺序排列
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	var zero1 T1
	var zero2 T2
	return em.GetEntitiesWith(reflect.TypeOf(zero1), reflect.TypeOf(zero2))
}

// GetEntitiesWith3 查询同时拥有组件 T1、T2 和 T3 的所有实体,按创建顺序排列
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	var zero1 T1
	var zero2 T2
	var zero3 T3
	return em.GetEntitiesWith(reflect.TypeOf(zero1), reflect.TypeOf(zero2), reflect.TypeOf(zero3))
}
