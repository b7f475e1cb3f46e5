package components

import "github.com/go-gl/mathgl/mgl32"

// TransformComponent 定义实体在3D世界中的位置和速度
// 速度为零向量时实体静止,运动系统会跳过积分
type TransformComponent struct {
	Position mgl32.Vec3 // 世界坐标位置(球心)
	Velocity mgl32.Vec3 // 速度(世界单位/秒)
}
