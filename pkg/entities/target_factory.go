package entities

import (
	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// NewTargetEntity 创建一个目标实体
// 参数:
//   - manager: EntityManager 实例
//   - position: 球心位置(世界坐标)
//   - velocity: 速度,零向量表示静止目标
//   - radius: 球体半径
//   - spawnTime: 生成时刻(会话时钟,秒)
//   - lifetime: 存活时长(秒)
//
// 返回: 创建的实体ID
func NewTargetEntity(manager *ecs.EntityManager, position, velocity mgl32.Vec3, radius float32, spawnTime, lifetime float64) ecs.EntityID {
	// 创建实体
	id := manager.CreateEntity()

	// 添加空间组件
	ecs.AddComponent(manager, id, &components.TransformComponent{
		Position: position,
		Velocity: velocity,
	})

	// 添加目标组件,初始为存活未命中
	ecs.AddComponent(manager, id, &components.TargetComponent{
		Radius:    radius,
		SpawnTime: spawnTime,
		Lifetime:  lifetime,
		Active:    true,
		Hit:       false,
	})

	return id
}
