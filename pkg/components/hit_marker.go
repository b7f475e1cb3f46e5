package components

import "github.com/go-gl/mathgl/mgl32"

// HitMarkerComponent 定义命中标记特效
// 命中目标时在命中点生成,渲染为扩散的圆环,
// 存活时长由 LifetimeComponent 控制
type HitMarkerComponent struct {
	Position  mgl32.Vec3 // 特效中心(世界坐标,即被命中目标的球心)
	MaxRadius float32    // 圆环扩散的最大半径(世界单位)
}
