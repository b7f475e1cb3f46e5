package entities

import (
	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// 命中标记的存活时长(秒)
const hitMarkerLifetime = 0.3

// NewHitMarkerEntity 创建一个命中标记特效实体
// 在被命中目标的球心处渲染一个扩散圆环,到期后由 LifetimeSystem 清理
// 参数:
//   - manager: EntityManager 实例
//   - position: 特效中心(世界坐标)
//   - maxRadius: 圆环扩散的最大半径
//
// 返回: 创建的实体ID
func NewHitMarkerEntity(manager *ecs.EntityManager, position mgl32.Vec3, maxRadius float32) ecs.EntityID {
	// 创建实体
	id := manager.CreateEntity()

	// 添加特效组件
	ecs.AddComponent(manager, id, &components.HitMarkerComponent{
		Position:  position,
		MaxRadius: maxRadius,
	})

	// 添加生命周期组件,到期自动销毁
	ecs.AddComponent(manager, id, &components.LifetimeComponent{
		MaxLifetime:     hitMarkerLifetime,
		CurrentLifetime: 0,
		IsExpired:       false,
	})

	return id
}
