package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/ecs"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/decker502/aimtrainer/pkg/utils"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 场景视觉常量
var (
	// 天空背景色(深蓝夜色)
	skyColor = color.RGBA{R: 26, G: 26, B: 51, A: 255}

	// 地面网格颜色(细线/主线)
	gridMinorColor = color.RGBA{R: 77, G: 77, B: 77, A: 255}
	gridMajorColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

	// 坐标轴颜色(X红 Y绿 Z蓝)
	axisXColor = color.RGBA{R: 230, G: 60, B: 60, A: 255}
	axisYColor = color.RGBA{R: 60, G: 230, B: 60, A: 255}
	axisZColor = color.RGBA{R: 60, G: 60, B: 230, A: 255}

	// 目标轮廓颜色
	targetOutlineColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// 场景几何常量
const (
	gridHalfSize  = 50  // 地面网格半边长(世界单位)
	gridSpacing   = 2   // 网格线间距
	gridMajorStep = 10  // 主网格线间距
	axisLength    = 3.0 // 坐标轴长度

	// 目标基础色 (橙红),亮度随剩余存活比例衰减
	targetColorR = 1.0
	targetColorG = 0.3
	targetColorB = 0.1

	// 目标呼吸脉动: 半径在 ±5% 内随剩余时间波动
	targetPulseAmplitude = 0.05
	targetPulseRate      = 20.0

	// 轮廓半径相对目标半径的放大比例
	targetOutlineScale = 1.01
)

// circleItem 一个待绘制的圆形元素(目标或命中标记)
// depth 用于由远及近排序,保证近处目标遮挡远处目标
type circleItem struct {
	x, y        float32
	radius      float32
	depth       float32
	fill        color.RGBA
	hasFill     bool
	stroke      color.RGBA
	strokeWidth float32
	hasStroke   bool
}

// SceneRenderSystem 负责 3D 训练场景的渲染
// 没有真正的 3D 管线:所有世界坐标经 视图×投影 矩阵手工投影到屏幕,
// 球形目标画成实心圆,半径按透视深度缩放,远小近大。
// 绘制顺序: 天空 -> 地面网格 -> 坐标轴 -> 目标与命中标记(由远及近)
type SceneRenderSystem struct {
	entityManager *ecs.EntityManager
	camera        *game.Camera
	targetManager *game.TargetManager

	screenWidth  int
	screenHeight int
	fov          float32 // 垂直视场角(度)
	nearPlane    float32
	farPlane     float32
}

// NewSceneRenderSystem 创建场景渲染系统
//
// 参数:
//   - em: EntityManager 实例(查询命中标记)
//   - camera: 摄像机
//   - tm: 目标管理器(获取目标快照)
//   - cfg: 训练配置(读取 Window 和 Camera 部分)
func NewSceneRenderSystem(em *ecs.EntityManager, camera *game.Camera, tm *game.TargetManager, cfg *config.TrainerConfig) *SceneRenderSystem {
	return &SceneRenderSystem{
		entityManager: em,
		camera:        camera,
		targetManager: tm,
		screenWidth:   cfg.Window.Width,
		screenHeight:  cfg.Window.Height,
		fov:           float32(cfg.Camera.FOV),
		nearPlane:     float32(cfg.Camera.NearPlane),
		farPlane:      float32(cfg.Camera.FarPlane),
	}
}

// Draw 渲染整个训练场景
// 参数:
//   - screen: 目标画布
//   - now: 会话时钟(秒),用于目标淡出与脉动动画
func (s *SceneRenderSystem) Draw(screen *ebiten.Image, now float64) {
	screen.Fill(skyColor)

	aspect := float32(s.screenWidth) / float32(s.screenHeight)
	projection := mgl32.Perspective(mgl32.DegToRad(s.fov), aspect, s.nearPlane, s.farPlane)
	viewProj := projection.Mul4(s.camera.ViewMatrix())

	s.drawGrid(screen, viewProj)
	s.drawAxes(screen, viewProj)

	// 投影半径 = 世界半径 * 焦距 / 深度
	focal := projection.At(1, 1) * float32(s.screenHeight) * 0.5

	items := s.collectTargets(viewProj, focal, now)
	items = append(items, s.collectHitMarkers(viewProj, focal)...)

	// 由远及近绘制
	sort.Slice(items, func(i, j int) bool {
		return items[i].depth > items[j].depth
	})

	for _, item := range items {
		if item.hasFill {
			vector.DrawFilledCircle(screen, item.x, item.y, item.radius, item.fill, true)
		}
		if item.hasStroke {
			vector.StrokeCircle(screen, item.x, item.y, item.radius*targetOutlineScale, item.strokeWidth, item.stroke, true)
		}
	}
}

// drawGrid 绘制 XZ 平面上的地面网格
func (s *SceneRenderSystem) drawGrid(screen *ebiten.Image, viewProj mgl32.Mat4) {
	w := float32(s.screenWidth)
	h := float32(s.screenHeight)

	for i := -gridHalfSize; i <= gridHalfSize; i += gridSpacing {
		coord := float32(i)
		lineColor := gridMinorColor
		if i%gridMajorStep == 0 {
			lineColor = gridMajorColor
		}

		// 平行于 X 轴的线
		if x0, y0, x1, y1, visible := utils.ProjectSegment(viewProj, w, h,
			mgl32.Vec3{-gridHalfSize, 0, coord}, mgl32.Vec3{gridHalfSize, 0, coord}); visible {
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, lineColor, true)
		}

		// 平行于 Z 轴的线
		if x0, y0, x1, y1, visible := utils.ProjectSegment(viewProj, w, h,
			mgl32.Vec3{coord, 0, -gridHalfSize}, mgl32.Vec3{coord, 0, gridHalfSize}); visible {
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, lineColor, true)
		}
	}
}

// drawAxes 绘制原点处的坐标轴参照物
func (s *SceneRenderSystem) drawAxes(screen *ebiten.Image, viewProj mgl32.Mat4) {
	w := float32(s.screenWidth)
	h := float32(s.screenHeight)
	origin := mgl32.Vec3{}

	axes := []struct {
		end mgl32.Vec3
		col color.RGBA
	}{
		{mgl32.Vec3{axisLength, 0, 0}, axisXColor},
		{mgl32.Vec3{0, axisLength, 0}, axisYColor},
		{mgl32.Vec3{0, 0, axisLength}, axisZColor},
	}

	for _, axis := range axes {
		if x0, y0, x1, y1, visible := utils.ProjectSegment(viewProj, w, h, origin, axis.end); visible {
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, axis.col, true)
		}
	}
}

// collectTargets 把存活目标投影成待绘制的圆
func (s *SceneRenderSystem) collectTargets(viewProj mgl32.Mat4, focal float32, now float64) []circleItem {
	snapshots := s.targetManager.ActiveTargets(now)
	items := make([]circleItem, 0, len(snapshots))

	for _, snap := range snapshots {
		x, y, depth, visible := utils.ProjectPoint(viewProj, float32(s.screenWidth), float32(s.screenHeight), snap.Position)
		if !visible {
			continue
		}

		// 剩余时间越少越暗,同时带轻微呼吸脉动
		fade := float32(utils.Lerp(0.3, 1.0, snap.Remaining))
		pulse := 1 + targetPulseAmplitude*math.Sin(snap.Remaining*targetPulseRate)
		radius := snap.Radius * float32(pulse) * focal / depth

		items = append(items, circleItem{
			x:      x,
			y:      y,
			radius: radius,
			depth:  depth,
			fill: color.RGBA{
				R: uint8(targetColorR * fade * 255),
				G: uint8(targetColorG * fade * 255),
				B: uint8(targetColorB * fade * 255),
				A: 255,
			},
			hasFill:     true,
			stroke:      targetOutlineColor,
			strokeWidth: 2,
			hasStroke:   true,
		})
	}

	return items
}

// collectHitMarkers 把命中标记投影成扩散的圆环
// 圆环半径按缓出曲线扩大,透明度按缓入曲线衰减
func (s *SceneRenderSystem) collectHitMarkers(viewProj mgl32.Mat4, focal float32) []circleItem {
	ids := ecs.GetEntitiesWith2[*components.HitMarkerComponent, *components.LifetimeComponent](s.entityManager)
	items := make([]circleItem, 0, len(ids))

	for _, id := range ids {
		marker, ok := ecs.GetComponent[*components.HitMarkerComponent](s.entityManager, id)
		if !ok {
			continue
		}
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.MaxLifetime <= 0 {
			continue
		}

		progress := lifetime.CurrentLifetime / lifetime.MaxLifetime
		if progress > 1 {
			progress = 1
		}

		x, y, depth, visible := utils.ProjectPoint(viewProj, float32(s.screenWidth), float32(s.screenHeight), marker.Position)
		if !visible {
			continue
		}

		worldRadius := marker.MaxRadius * float32(utils.EaseOutCubic(progress))
		alpha := 1 - utils.EaseInQuad(progress)

		items = append(items, circleItem{
			x:           x,
			y:           y,
			radius:      worldRadius * focal / depth,
			depth:       depth,
			stroke:      color.RGBA{R: 255, G: 255, B: 255, A: uint8(alpha * 255)},
			strokeWidth: 3,
			hasStroke:   true,
		})
	}

	return items
}
