// Package app 提供训练器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，统一完成配置加载、
// 音频上下文创建与场景装配，main 包只负责解析命令行参数。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"

	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/decker502/aimtrainer/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 音频上下文采样率(Hz),合成音效使用同一采样率
const audioSampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件路径，为空则使用内嵌默认配置
	ConfigPath string
	// Seed 随机种子，非 0 时覆盖配置文件中的 rng_seed
	Seed int64
}

// App 是训练器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	trainerConfig            *config.TrainerConfig
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化训练器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载训练配置：优先外部文件，否则内嵌默认配置
	var trainerConfig *config.TrainerConfig
	var err error
	if cfg.ConfigPath != "" {
		trainerConfig, err = config.LoadTrainerConfig(cfg.ConfigPath)
		log.Printf("[App] Loading config from %s", cfg.ConfigPath)
	} else {
		trainerConfig, err = config.LoadEmbeddedTrainerConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	// 命令行种子优先于配置文件
	if cfg.Seed != 0 {
		trainerConfig.RNGSeed = cfg.Seed
	}

	// 固定种子时整个进程共用一个随机序列，训练过程可复现
	var rng *rand.Rand
	if trainerConfig.RNGSeed != 0 {
		rng = rand.New(rand.NewSource(trainerConfig.RNGSeed))
		log.Printf("[App] Using fixed RNG seed %d", trainerConfig.RNGSeed)
	}

	// 初始化音频上下文与音效
	audioContext := audio.NewContext(audioSampleRate)
	audioManager := game.NewAudioManager(audioContext, trainerConfig)

	// 创建场景管理器并注册场景工厂
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		switch name {
		case game.SceneMenu:
			return scenes.NewMenuScene(trainerConfig, audioManager, sceneManager)
		case game.SceneTraining:
			return scenes.NewTrainingScene(trainerConfig, audioManager, sceneManager, rng)
		default:
			return nil
		}
	})

	sceneManager.SwitchToScene(game.SceneMenu)

	return &App{
		sceneManager:  sceneManager,
		trainerConfig: trainerConfig,
		verbose:       cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.trainerConfig.Window.Width, a.trainerConfig.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.trainerConfig.Window.Width, a.trainerConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear // 使用线性滤波减少锯齿和模糊
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.trainerConfig.Window.Width, a.trainerConfig.Window.Height
}

// WindowSize 返回配置中的窗口尺寸
// main 包在 RunGame 前用它设置初始窗口大小
func (a *App) WindowSize() (int, int) {
	return a.trainerConfig.Window.Width, a.trainerConfig.Window.Height
}

// WindowTitle 返回配置中的窗口标题
func (a *App) WindowTitle() string {
	return a.trainerConfig.Window.Title
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
