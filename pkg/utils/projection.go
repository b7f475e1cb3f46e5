// projection.go 提供 3D 世界坐标到 2D 屏幕坐标的投影工具
//
// # 坐标系统概述
//
// 本项目使用以下坐标系统:
//   - **世界坐标**: 右手系,+X 向右,+Y 向上,-Z 为摄像机初始朝向
//   - **裁剪坐标**: viewProj 矩阵(Perspective × LookAt)变换后的齐次坐标
//   - **屏幕坐标**: 相对于窗口左上角,+Y 向下(Ebiten 默认)
//
// # 核心转换公式
//
//	clip = viewProj × (x, y, z, 1)
//	ndc  = clip.xyz / clip.w
//	sx   = (ndc.x + 1) / 2 × screenW
//	sy   = (1 - ndc.y) / 2 × screenH
//
// 摄像机后方的点(clip.z + clip.w <= 0)投影会发生镜像翻转,
// 因此点投影直接拒绝,线段投影在近平面处裁剪后再投影。

package utils

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectPoint 将世界坐标点投影到屏幕
//
// 参数:
//   - viewProj: 投影矩阵 × 视图矩阵
//   - screenW, screenH: 逻辑屏幕尺寸(像素)
//   - p: 世界坐标点
//
// 返回:
//   - x, y: 屏幕坐标(点在屏幕外时可能超出 [0, screenW/H] 范围)
//   - depth: 观察空间深度(clip.w,用于按距离缩放)
//   - visible: 点是否在近平面前方
func ProjectPoint(viewProj mgl32.Mat4, screenW, screenH float32, p mgl32.Vec3) (x, y, depth float32, visible bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.Z()+clip.W() <= 0 || clip.W() <= 0 {
		return 0, 0, 0, false
	}

	invW := 1 / clip.W()
	x = (clip.X()*invW + 1) * 0.5 * screenW
	y = (1 - clip.Y()*invW) * 0.5 * screenH
	return x, y, clip.W(), true
}

// ProjectSegment 将世界坐标线段投影到屏幕,并在近平面处裁剪
//
// 线段两端都在近平面后方时不可见;跨越近平面时,
// 后方端点被裁剪到近平面上,保证投影不发生镜像翻转。
//
// 返回:
//   - x0, y0, x1, y1: 裁剪后线段两端的屏幕坐标
//   - visible: 线段是否有可见部分
func ProjectSegment(viewProj mgl32.Mat4, screenW, screenH float32, a, b mgl32.Vec3) (x0, y0, x1, y1 float32, visible bool) {
	ca := viewProj.Mul4x1(a.Vec4(1))
	cb := viewProj.Mul4x1(b.Vec4(1))

	// 近平面条件: clip.z + clip.w > 0
	da := ca.Z() + ca.W()
	db := cb.Z() + cb.W()

	if da <= 0 && db <= 0 {
		return 0, 0, 0, 0, false
	}

	// 一端在近平面后方,在近平面处插值裁剪
	if da <= 0 || db <= 0 {
		t := da / (da - db)
		cut := ca.Add(cb.Sub(ca).Mul(t))
		if da <= 0 {
			ca = cut
		} else {
			cb = cut
		}
	}

	x0, y0 = clipToScreen(ca, screenW, screenH)
	x1, y1 = clipToScreen(cb, screenW, screenH)
	return x0, y0, x1, y1, true
}

// clipToScreen 将裁剪坐标转换为屏幕坐标
// 调用方必须保证 clip.w > 0(已通过近平面裁剪)
func clipToScreen(clip mgl32.Vec4, screenW, screenH float32) (float32, float32) {
	w := clip.W()
	if w < 1e-6 {
		w = 1e-6
	}
	invW := 1 / w
	x := (clip.X()*invW + 1) * 0.5 * screenW
	y := (1 - clip.Y()*invW) * 0.5 * screenH
	return x, y
}
