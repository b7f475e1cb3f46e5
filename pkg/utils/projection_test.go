package utils

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	testScreenW = 1280.0
	testScreenH = 720.0
)

// testViewProj 构造测试用的投影矩阵: 摄像机在原点,朝向 -Z
func testViewProj() mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(60), testScreenW/testScreenH, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// TestProjectPoint 测试点投影
func TestProjectPoint(t *testing.T) {
	vp := testViewProj()

	t.Run("视线正前方的点投影到屏幕中心", func(t *testing.T) {
		x, y, depth, visible := ProjectPoint(vp, testScreenW, testScreenH, mgl32.Vec3{0, 0, -10})
		if !visible {
			t.Fatal("正前方的点应可见")
		}
		if math.Abs(float64(x-testScreenW/2)) > 0.5 || math.Abs(float64(y-testScreenH/2)) > 0.5 {
			t.Errorf("投影坐标 = (%v, %v), 期望屏幕中心 (%v, %v)", x, y, testScreenW/2, testScreenH/2)
		}
		if math.Abs(float64(depth-10)) > 0.01 {
			t.Errorf("深度 = %v, 期望 10", depth)
		}
	})

	t.Run("右侧的点投影在中心右方", func(t *testing.T) {
		x, y, _, visible := ProjectPoint(vp, testScreenW, testScreenH, mgl32.Vec3{1, 0, -10})
		if !visible {
			t.Fatal("点应可见")
		}
		if x <= testScreenW/2 {
			t.Errorf("x = %v, 期望大于屏幕中心 %v", x, testScreenW/2)
		}
		if math.Abs(float64(y-testScreenH/2)) > 0.5 {
			t.Errorf("y = %v, 期望保持在屏幕中线 %v", y, testScreenH/2)
		}
	})

	t.Run("上方的点投影在中心上方", func(t *testing.T) {
		// 屏幕坐标 +Y 向下,世界 +Y 的点应得到更小的 y
		_, y, _, visible := ProjectPoint(vp, testScreenW, testScreenH, mgl32.Vec3{0, 1, -10})
		if !visible {
			t.Fatal("点应可见")
		}
		if y >= testScreenH/2 {
			t.Errorf("y = %v, 期望小于屏幕中心 %v", y, testScreenH/2)
		}
	})

	t.Run("摄像机后方的点不可见", func(t *testing.T) {
		_, _, _, visible := ProjectPoint(vp, testScreenW, testScreenH, mgl32.Vec3{0, 0, 10})
		if visible {
			t.Error("摄像机后方的点不应可见")
		}
	})

	t.Run("深度随距离增长", func(t *testing.T) {
		_, _, near, _ := ProjectPoint(vp, testScreenW, testScreenH, mgl32.Vec3{0, 0, -5})
		_, _, far, _ := ProjectPoint(vp, testScreenW, testScreenH, mgl32.Vec3{0, 0, -20})
		if near >= far {
			t.Errorf("近处深度 %v 应小于远处深度 %v", near, far)
		}
	})
}

// TestProjectSegment 测试线段投影和近平面裁剪
func TestProjectSegment(t *testing.T) {
	vp := testViewProj()

	t.Run("完全在前方的线段可见", func(t *testing.T) {
		x0, y0, x1, y1, visible := ProjectSegment(vp, testScreenW, testScreenH,
			mgl32.Vec3{-1, 0, -10}, mgl32.Vec3{1, 0, -10})
		if !visible {
			t.Fatal("前方线段应可见")
		}
		if x0 >= x1 {
			t.Errorf("左端 x=%v 应小于右端 x=%v", x0, x1)
		}
		if math.Abs(float64(y0-y1)) > 0.5 {
			t.Errorf("水平线段两端 y 应相等: %v, %v", y0, y1)
		}
	})

	t.Run("完全在后方的线段不可见", func(t *testing.T) {
		_, _, _, _, visible := ProjectSegment(vp, testScreenW, testScreenH,
			mgl32.Vec3{-1, 0, 10}, mgl32.Vec3{1, 0, 10})
		if visible {
			t.Error("后方线段不应可见")
		}
	})

	t.Run("跨越近平面的线段被裁剪后可见", func(t *testing.T) {
		// 一端在前方一端在后方,裁剪后两端都应得到有限坐标
		x0, y0, x1, y1, visible := ProjectSegment(vp, testScreenW, testScreenH,
			mgl32.Vec3{1, 0, -10}, mgl32.Vec3{1, 0, 10})
		if !visible {
			t.Fatal("跨越近平面的线段应部分可见")
		}
		for _, v := range []float32{x0, y0, x1, y1} {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("裁剪后坐标出现非法值: (%v,%v)-(%v,%v)", x0, y0, x1, y1)
			}
		}
		// 线段位于视线右侧(x=1),裁剪端离摄像机更近,投影偏移更大
		if x1 <= x0 {
			t.Errorf("裁剪端投影 x=%v 应大于远端 x=%v", x1, x0)
		}
	})
}
