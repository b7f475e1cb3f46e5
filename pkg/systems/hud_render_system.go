package systems

import (
	"fmt"
	"image/color"

	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD 视觉常量
var (
	crosshairColor     = color.RGBA{R: 0, G: 255, B: 0, A: 204}
	statsBackdropColor = color.RGBA{R: 0, G: 0, B: 0, A: 128}
	hitsBarColor       = color.RGBA{R: 50, G: 205, B: 50, A: 255}
	missesBarColor     = color.RGBA{R: 220, G: 50, B: 50, A: 255}
	accuracyBarColor   = color.RGBA{R: 230, G: 230, B: 50, A: 255}
	pauseOverlayColor  = color.RGBA{R: 0, G: 0, B: 0, A: 110}
)

// 准星几何(像素)
const (
	crosshairSize      = 10 // 单臂长度
	crosshairGap       = 3  // 中心空隙
	crosshairThickness = 2  // 线宽
)

// 统计面板几何(像素)
const (
	statsPanelX      = 10
	statsPanelY      = 10
	statsPanelWidth  = 140
	statsPanelHeight = 70
	statsBarX        = 20
	statsBarHeight   = 8
	statsBarMaxWidth = 120
	hitsBarY         = 25
	missesBarY       = 45
	accuracyBarY     = 65
	pixelsPerCount   = 10 // 命中/漏击条每计数的像素宽度
)

// HUDRenderSystem 渲染屏幕空间的界面元素
// 包括:屏幕中心准星、左上角统计面板(命中/漏击/命中率条形图)
// 以及暂停时的遮罩提示。所有元素都在 3D 场景之上绘制
type HUDRenderSystem struct {
	targetManager *game.TargetManager
	session       *game.SessionState
	screenWidth   int
	screenHeight  int
}

// NewHUDRenderSystem 创建 HUD 渲染系统
//
// 参数:
//   - tm: 目标管理器(读取统计数据)
//   - session: 会话状态(暂停遮罩与计时显示)
//   - cfg: 训练配置(读取 Window 部分)
func NewHUDRenderSystem(tm *game.TargetManager, session *game.SessionState, cfg *config.TrainerConfig) *HUDRenderSystem {
	return &HUDRenderSystem{
		targetManager: tm,
		session:       session,
		screenWidth:   cfg.Window.Width,
		screenHeight:  cfg.Window.Height,
	}
}

// Draw 渲染 HUD
func (s *HUDRenderSystem) Draw(screen *ebiten.Image) {
	s.drawCrosshair(screen)
	s.drawStatsPanel(screen)

	if s.session.IsPaused() {
		s.drawPauseOverlay(screen)
	}
}

// drawCrosshair 在屏幕中心绘制十字准星
func (s *HUDRenderSystem) drawCrosshair(screen *ebiten.Image) {
	cx := float32(s.screenWidth) / 2
	cy := float32(s.screenHeight) / 2
	half := float32(crosshairThickness) / 2

	// 左右两臂
	vector.DrawFilledRect(screen, cx-crosshairGap-crosshairSize, cy-half,
		crosshairSize, crosshairThickness, crosshairColor, true)
	vector.DrawFilledRect(screen, cx+crosshairGap, cy-half,
		crosshairSize, crosshairThickness, crosshairColor, true)

	// 上下两臂
	vector.DrawFilledRect(screen, cx-half, cy-crosshairGap-crosshairSize,
		crosshairThickness, crosshairSize, crosshairColor, true)
	vector.DrawFilledRect(screen, cx-half, cy+crosshairGap,
		crosshairThickness, crosshairSize, crosshairColor, true)

	// 中心点
	vector.DrawFilledRect(screen, cx-1, cy-1, 2, 2, crosshairColor, true)
}

// drawStatsPanel 绘制左上角统计面板
// 三根条形图从上到下依次是: 命中数(绿)、漏击数(红)、命中率(黄)
func (s *HUDRenderSystem) drawStatsPanel(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, statsPanelX, statsPanelY,
		statsPanelWidth, statsPanelHeight, statsBackdropColor, true)

	hits := s.targetManager.Hits()
	misses := s.targetManager.Misses()
	accuracy := s.targetManager.Accuracy()

	s.drawCountBar(screen, hitsBarY, hits, hitsBarColor)
	s.drawCountBar(screen, missesBarY, misses, missesBarColor)

	// 命中率条: 满条代表 100%
	accWidth := float32(statsBarMaxWidth) * float32(accuracy) / 100
	if accWidth > 0 {
		vector.DrawFilledRect(screen, statsBarX, accuracyBarY,
			accWidth, statsBarHeight, accuracyBarColor, true)
	}

	// 面板下方的文字统计
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("Hits %d  Misses %d  Shots %d", hits, misses, s.targetManager.ShotsFired()),
		statsPanelX, statsPanelY+statsPanelHeight+5)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("Accuracy %.1f%%  Time %.1fs", accuracy, s.session.Now()),
		statsPanelX, statsPanelY+statsPanelHeight+21)
}

// drawCountBar 绘制一根按计数增长的条形图,宽度封顶
func (s *HUDRenderSystem) drawCountBar(screen *ebiten.Image, y float32, count int, clr color.RGBA) {
	width := float32(count * pixelsPerCount)
	if width > statsBarMaxWidth {
		width = statsBarMaxWidth
	}
	if width <= 0 {
		return
	}
	vector.DrawFilledRect(screen, statsBarX, y, width, statsBarHeight, clr, true)
}

// drawPauseOverlay 绘制暂停遮罩与操作提示
func (s *HUDRenderSystem) drawPauseOverlay(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0,
		float32(s.screenWidth), float32(s.screenHeight), pauseOverlayColor, false)

	cx := s.screenWidth / 2
	cy := s.screenHeight / 2
	ebitenutil.DebugPrintAt(screen, "PAUSED", cx-21, cy-24)
	ebitenutil.DebugPrintAt(screen, "ESC resume / R reset stats / Q menu", cx-105, cy)
}
