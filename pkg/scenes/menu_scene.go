package scenes

import (
	"image/color"
	"math"

	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 菜单视觉常量
var (
	menuBackgroundColor = color.RGBA{R: 18, G: 18, B: 36, A: 255}
	menuTargetColor     = color.RGBA{R: 255, G: 77, B: 26, A: 255}
	menuRingColor       = color.RGBA{R: 240, G: 240, B: 240, A: 255}
)

// MenuScene represents the start screen of the trainer.
// It shows the control summary and waits for a click to begin a
// training session. The cursor stays visible until the session starts.
type MenuScene struct {
	sceneManager *game.SceneManager
	audioManager *game.AudioManager

	screenWidth  int
	screenHeight int
	blinkTimer   float64
}

// NewMenuScene creates and returns a new MenuScene instance.
//
// Parameters:
//   - cfg: The trainer configuration (window size).
//   - am: The AudioManager instance used for UI sounds.
//   - sm: The SceneManager instance used to switch between scenes.
//
// Returns:
//   - A pointer to the newly created MenuScene.
func NewMenuScene(cfg *config.TrainerConfig, am *game.AudioManager, sm *game.SceneManager) *MenuScene {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)

	return &MenuScene{
		sceneManager: sm,
		audioManager: am,
		screenWidth:  cfg.Window.Width,
		screenHeight: cfg.Window.Height,
	}
}

// Update handles menu input and animations.
// A left click or Enter starts a fresh training session.
func (s *MenuScene) Update(deltaTime float64) {
	s.blinkTimer += deltaTime

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.audioManager.PlaySound(game.SoundClick)
		s.sceneManager.SwitchToScene(game.SceneTraining)
	}
}

// Draw renders the menu screen.
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(menuBackgroundColor)

	// 右侧的装饰靶环
	cx := float32(s.screenWidth) * 0.72
	cy := float32(s.screenHeight) * 0.45
	vector.DrawFilledCircle(screen, cx, cy, 110, menuRingColor, true)
	vector.DrawFilledCircle(screen, cx, cy, 88, menuTargetColor, true)
	vector.DrawFilledCircle(screen, cx, cy, 58, menuRingColor, true)
	vector.DrawFilledCircle(screen, cx, cy, 30, menuTargetColor, true)

	textX := s.screenWidth / 6
	textY := s.screenHeight / 4

	ebitenutil.DebugPrintAt(screen, "AIM TRAINER", textX, textY)
	ebitenutil.DebugPrintAt(screen, "-----------", textX, textY+14)

	controls := []string{
		"Mouse        look around",
		"W/A/S/D      move",
		"Space/Shift  up / down",
		"Left click   shoot",
		"ESC          pause",
		"R            reset stats",
	}
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, textX, textY+48+i*16)
	}

	// 闪烁的开始提示
	if math.Mod(s.blinkTimer, 1.2) < 0.8 {
		ebitenutil.DebugPrintAt(screen, "CLICK TO START", textX, textY+48+len(controls)*16+32)
	}
}
