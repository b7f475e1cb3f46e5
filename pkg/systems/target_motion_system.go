package systems

import (
	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// TargetMotionSystem 推进移动目标的位置
// 速度按时间增量积分,越过活动边界时逐轴反弹:位置钳回边界,
// 该轴速度取反,其余轴不受影响。静止目标(零速度)直接跳过
type TargetMotionSystem struct {
	entityManager *ecs.EntityManager
	boundsMin     mgl32.Vec3
	boundsMax     mgl32.Vec3
}

// NewTargetMotionSystem 创建一个新的目标运动系统
//
// 参数:
//   - em: EntityManager 实例
//   - cfg: 训练配置(读取 WorldBounds 部分)
func NewTargetMotionSystem(em *ecs.EntityManager, cfg *config.TrainerConfig) *TargetMotionSystem {
	return &TargetMotionSystem{
		entityManager: em,
		boundsMin:     cfg.WorldBounds.Min.Vec3(),
		boundsMax:     cfg.WorldBounds.Max.Vec3(),
	}
}

// Update 更新所有移动目标的位置
// 参数:
//   - deltaTime: 时间增量(秒)
func (s *TargetMotionSystem) Update(deltaTime float64) {
	dt := float32(deltaTime)

	ids := ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](s.entityManager)
	for _, id := range ids {
		target, ok := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		if !ok || !target.Active {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok {
			continue
		}
		if transform.Velocity.Len() == 0 {
			continue
		}

		transform.Position = transform.Position.Add(transform.Velocity.Mul(dt))

		// 逐轴反弹
		for axis := 0; axis < 3; axis++ {
			if transform.Position[axis] < s.boundsMin[axis] {
				transform.Position[axis] = s.boundsMin[axis]
				transform.Velocity[axis] = -transform.Velocity[axis]
			} else if transform.Position[axis] > s.boundsMax[axis] {
				transform.Position[axis] = s.boundsMax[axis]
				transform.Velocity[axis] = -transform.Velocity[axis]
			}
		}
	}
}
