package systems

import (
	"log"

	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem 处理训练过程中的所有用户输入
// 包括鼠标视角控制、WASD 移动、射击与会话控制键:
//   - 鼠标移动: 视角旋转(俯仰角钳制在 ±89°)
//   - W/A/S/D: 水平移动(只在 XZ 平面,不随俯仰角抬升)
//   - Space/Shift: 垂直升降
//   - 鼠标左键: 射击
//   - ESC: 暂停/恢复
//   - R: 重置统计
//   - Q: 暂停时返回主菜单
type InputSystem struct {
	camera        *game.Camera
	targetManager *game.TargetManager
	audioManager  *game.AudioManager
	sceneManager  *game.SceneManager
	session       *game.SessionState

	sensitivity float64 // 鼠标灵敏度(度/像素)
	invertY     bool    // 反转 Y 轴
	moveSpeed   float64 // 移动速度(单位/秒)

	// 捕获模式下光标位置无界累积,用上一帧位置求增量
	lastCursorX       int
	lastCursorY       int
	cursorInitialized bool
}

// NewInputSystem 创建一个新的输入系统
//
// 参数:
//   - camera: 摄像机(视角与移动的作用对象)
//   - tm: 目标管理器(射击判定)
//   - am: 音频管理器(射击与界面音效)
//   - sm: 场景管理器(Q 键返回菜单)
//   - session: 会话状态(ESC 暂停开关)
//   - cfg: 训练配置(读取 Camera 部分)
func NewInputSystem(camera *game.Camera, tm *game.TargetManager, am *game.AudioManager, sm *game.SceneManager, session *game.SessionState, cfg *config.TrainerConfig) *InputSystem {
	return &InputSystem{
		camera:        camera,
		targetManager: tm,
		audioManager:  am,
		sceneManager:  sm,
		session:       session,
		sensitivity:   cfg.Camera.Sensitivity,
		invertY:       cfg.Camera.InvertY,
		moveSpeed:     cfg.Camera.MoveSpeed,
	}
}

// Update 处理用户输入
// 参数:
//   - deltaTime: 时间增量(秒)
func (s *InputSystem) Update(deltaTime float64) {
	// ESC 键切换暂停/恢复
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		paused := s.session.TogglePause()
		if paused {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
			// 光标模式切换会跳变,丢弃下一帧的增量
			s.cursorInitialized = false
		}
		s.audioManager.PlaySound(game.SoundClick)
		return
	}

	// R 键重置统计(暂停与否都生效)
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.targetManager.ResetStats()
		s.audioManager.PlaySound(game.SoundClick)
	}

	if s.session.IsPaused() {
		// Q 键返回主菜单
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			log.Printf("[InputSystem] Returning to menu")
			s.audioManager.PlaySound(game.SoundClick)
			s.sceneManager.SwitchToScene(game.SceneMenu)
		}
		return
	}

	s.updateLook()
	s.updateMovement(deltaTime)

	// 鼠标左键射击
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.audioManager.PlaySound(game.SoundFire)
		if s.targetManager.CheckShot(s.camera.Position(), s.camera.Forward()) {
			s.audioManager.PlaySound(game.SoundHit)
		}
	}
}

// updateLook 根据光标增量旋转视角
func (s *InputSystem) updateLook() {
	cursorX, cursorY := ebiten.CursorPosition()

	if !s.cursorInitialized {
		s.lastCursorX = cursorX
		s.lastCursorY = cursorY
		s.cursorInitialized = true
		return
	}

	deltaX := cursorX - s.lastCursorX
	deltaY := cursorY - s.lastCursorY
	s.lastCursorX = cursorX
	s.lastCursorY = cursorY

	if deltaX == 0 && deltaY == 0 {
		return
	}

	yawDelta := float32(float64(deltaX) * s.sensitivity)
	// 屏幕 Y 轴向下,上移鼠标应抬头
	pitchDelta := float32(-float64(deltaY) * s.sensitivity)
	if s.invertY {
		pitchDelta = -pitchDelta
	}

	s.camera.Rotate(yawDelta, pitchDelta)
}

// updateMovement 处理 WASD 水平移动与 Space/Shift 垂直升降
func (s *InputSystem) updateMovement(deltaTime float64) {
	step := float32(s.moveSpeed * deltaTime)

	if ebiten.IsKeyPressed(ebiten.KeyW) {
		s.camera.MoveForward(step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		s.camera.MoveForward(-step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		s.camera.MoveRight(step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		s.camera.MoveRight(-step)
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		s.camera.MoveUp(step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) {
		s.camera.MoveUp(-step)
	}
}

// ResetCursorTracking 丢弃下一帧的光标增量
// 场景切换或重新捕获光标后调用,避免视角跳变
func (s *InputSystem) ResetCursorTracking() {
	s.cursorInitialized = false
}
