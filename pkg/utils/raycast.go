// Package utils 提供训练场景中常用的数学工具函数
//
// raycast.go 提供射线相交检测工具,用于射击命中判定。
// 射线由起点和方向定义,方向在检测前会被归一化,
// 因此返回的距离 t 以世界单位计。
package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// 方向向量的最小长度平方,低于该值视为退化射线(不产生命中)
const minRayDirLengthSq = 1e-12

// RaySphereIntersect 射线-球体相交检测
//
// 求解 |origin + t*dir - center|² = radius² 的二次方程,
// 返回最近的非负根。判定规则:
//   - 判别式 < 0: 射线与球体不相交,未命中
//   - 判别式 = 0: 射线与球面相切,算命中
//   - 两个根都 < 0: 球体完全在射线起点后方,未命中
//   - 射线起点在球体内部: 命中(取离开球面的正根)
//
// 参数:
//   - origin: 射线起点(世界坐标)
//   - dir: 射线方向(无需预先归一化,零向量视为未命中)
//   - center: 球心(世界坐标)
//   - radius: 球体半径,必须 > 0
//
// 返回:
//   - float32: 命中距离 t(沿归一化方向的世界单位),未命中时为 0
//   - bool: 是否命中
func RaySphereIntersect(origin, dir, center mgl32.Vec3, radius float32) (float32, bool) {
	lenSq := dir.Dot(dir)
	if lenSq < minRayDirLengthSq {
		return 0, false
	}
	d := dir.Mul(1 / float32(math.Sqrt(float64(lenSq))))

	// 归一化后 a = 1,二次方程简化为 t² + bt + c = 0
	oc := origin.Sub(center)
	b := 2 * oc.Dot(d)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtDisc := float32(math.Sqrt(float64(discriminant)))
	t1 := (-b - sqrtDisc) / 2
	t2 := (-b + sqrtDisc) / 2

	// 取最近的非负根
	if t1 >= 0 {
		return t1, true
	}
	if t2 >= 0 {
		return t2, true
	}
	return 0, false
}
