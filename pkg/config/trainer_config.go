package config

import (
	"fmt"
	"os"

	"github.com/decker502/aimtrainer/pkg/embedded"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// EmbeddedTrainerConfigPath 嵌入的默认训练配置路径
const EmbeddedTrainerConfigPath = "assets/config/trainer.yaml"

// Vec3Config YAML 中的三维向量
type Vec3Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec3 转换为 mgl32.Vec3
func (v Vec3Config) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// RegionConfig 轴对齐包围盒,用于目标生成区域和反弹边界
type RegionConfig struct {
	Min Vec3Config `yaml:"min"` // 区域最小角
	Max Vec3Config `yaml:"max"` // 区域最大角
}

// WindowConfig 窗口设置
type WindowConfig struct {
	Width  int    `yaml:"width"`  // 逻辑宽度(像素),默认 1280
	Height int    `yaml:"height"` // 逻辑高度(像素),默认 720
	Title  string `yaml:"title"`  // 窗口标题
}

// CameraConfig 第一人称摄像机设置
type CameraConfig struct {
	FOV           float64    `yaml:"fov"`           // 垂直视场角(度),默认 60
	NearPlane     float64    `yaml:"nearPlane"`     // 近裁剪面,默认 0.1
	FarPlane      float64    `yaml:"farPlane"`      // 远裁剪面,默认 100
	StartPosition Vec3Config `yaml:"startPosition"` // 初始位置,默认 (0, 1.7, 5),1.7 为眼高
	Sensitivity   float64    `yaml:"sensitivity"`   // 鼠标灵敏度(度/像素),默认 0.1
	InvertY       bool       `yaml:"invertY"`       // 是否反转垂直视角
	MoveSpeed     float64    `yaml:"moveSpeed"`     // 移动速度(世界单位/秒),默认 5.0
}

// TargetsConfig 目标生成与存活设置
type TargetsConfig struct {
	MaxConcurrent int     `yaml:"maxConcurrent"` // 同时存在的目标上限,默认 3
	SpawnInterval float64 `yaml:"spawnInterval"` // 生成间隔(秒),默认 1.0
	Lifetime      float64 `yaml:"lifetime"`      // 目标存活时长(秒),默认 2.5
	Radius        float64 `yaml:"radius"`        // 目标半径(世界单位),默认 0.4
	MovingRatio   float64 `yaml:"movingRatio"`   // 移动目标占比 [0,1],默认 0.25
	MoveSpeed     float64 `yaml:"moveSpeed"`     // 移动目标速度(世界单位/秒),默认 3.0
}

// AudioConfig 音频反馈设置
type AudioConfig struct {
	Muted  bool    `yaml:"muted"`  // 是否静音,默认 false
	Volume float64 `yaml:"volume"` // 音量 [0,1],默认 0.7
}

// TrainerConfig 训练模拟的完整配置
// 启动时加载一次,运行期间不可变
type TrainerConfig struct {
	Window      WindowConfig  `yaml:"window"`
	Camera      CameraConfig  `yaml:"camera"`
	Targets     TargetsConfig `yaml:"targets"`
	SpawnRegion RegionConfig  `yaml:"spawnRegion"` // 目标生成区域(玩家前方)
	WorldBounds RegionConfig  `yaml:"worldBounds"` // 移动目标的反弹边界
	Audio       AudioConfig   `yaml:"audio"`
	RNGSeed     int64         `yaml:"rngSeed"` // 随机数种子,0 表示按时间播种
}

// LoadTrainerConfig 从YAML文件加载训练配置
// 参数:
//
//	filepath - 配置文件路径(相对或绝对路径)
//
// 返回:
//
//	*TrainerConfig - 解析后的配置对象
//	error - 文件读取或解析失败时返回错误
func LoadTrainerConfig(filepath string) (*TrainerConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read trainer config file %s: %w", filepath, err)
	}
	return parseTrainerConfig(data, filepath)
}

// LoadEmbeddedTrainerConfig 加载嵌入的默认训练配置
// 调用前必须先调用 embedded.Init()
func LoadEmbeddedTrainerConfig() (*TrainerConfig, error) {
	data, err := embedded.ReadFile(EmbeddedTrainerConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded trainer config: %w", err)
	}
	return parseTrainerConfig(data, EmbeddedTrainerConfigPath)
}

// parseTrainerConfig 解析YAML数据并应用默认值和校验
func parseTrainerConfig(data []byte, source string) (*TrainerConfig, error) {
	var cfg TrainerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse trainer config YAML from %s: %w", source, err)
	}

	// 应用默认值(缺失字段回落到内置数值)
	applyTrainerDefaults(&cfg)

	// 验证配置合法性
	if err := validateTrainerConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid trainer config in %s: %w", source, err)
	}

	return &cfg, nil
}

// DefaultTrainerConfig 返回全默认值的训练配置
// 用于无配置文件的场景(headless 验证工具、测试)
func DefaultTrainerConfig() *TrainerConfig {
	cfg := &TrainerConfig{}
	applyTrainerDefaults(cfg)
	return cfg
}

// applyTrainerDefaults 为缺失的可选字段设置默认值
func applyTrainerDefaults(cfg *TrainerConfig) {
	if cfg.Window.Width == 0 {
		cfg.Window.Width = 1280
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = 720
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = "FPS Training Simulation"
	}

	if cfg.Camera.FOV == 0 {
		cfg.Camera.FOV = 60
	}
	if cfg.Camera.NearPlane == 0 {
		cfg.Camera.NearPlane = 0.1
	}
	if cfg.Camera.FarPlane == 0 {
		cfg.Camera.FarPlane = 100
	}
	if cfg.Camera.StartPosition == (Vec3Config{}) {
		cfg.Camera.StartPosition = Vec3Config{X: 0, Y: 1.7, Z: 5}
	}
	if cfg.Camera.Sensitivity == 0 {
		cfg.Camera.Sensitivity = 0.1
	}
	if cfg.Camera.MoveSpeed == 0 {
		cfg.Camera.MoveSpeed = 5.0
	}

	if cfg.Targets.MaxConcurrent == 0 {
		cfg.Targets.MaxConcurrent = 3
	}
	if cfg.Targets.SpawnInterval == 0 {
		cfg.Targets.SpawnInterval = 1.0
	}
	if cfg.Targets.Lifetime == 0 {
		cfg.Targets.Lifetime = 2.5
	}
	if cfg.Targets.Radius == 0 {
		cfg.Targets.Radius = 0.4
	}
	if cfg.Targets.MovingRatio == 0 {
		cfg.Targets.MovingRatio = 0.25
	}
	if cfg.Targets.MoveSpeed == 0 {
		cfg.Targets.MoveSpeed = 3.0
	}

	emptyRegion := RegionConfig{}
	if cfg.SpawnRegion == emptyRegion {
		cfg.SpawnRegion = RegionConfig{
			Min: Vec3Config{X: -8, Y: 1, Z: -15},
			Max: Vec3Config{X: 8, Y: 5, Z: -5},
		}
	}
	if cfg.WorldBounds == emptyRegion {
		cfg.WorldBounds = RegionConfig{
			Min: Vec3Config{X: -17, Y: -2.5, Z: -27},
			Max: Vec3Config{X: 17, Y: 4, Z: 7},
		}
	}

	if cfg.Audio.Volume == 0 {
		cfg.Audio.Volume = 0.7
	}
}

// validateTrainerConfig 验证配置的合法性
func validateTrainerConfig(cfg *TrainerConfig) error {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Camera.FOV <= 0 || cfg.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov must be in (0, 180), got %v", cfg.Camera.FOV)
	}
	if cfg.Camera.NearPlane <= 0 || cfg.Camera.FarPlane <= cfg.Camera.NearPlane {
		return fmt.Errorf("invalid clip planes: near=%v far=%v", cfg.Camera.NearPlane, cfg.Camera.FarPlane)
	}
	if cfg.Camera.Sensitivity <= 0 {
		return fmt.Errorf("camera sensitivity must be positive, got %v", cfg.Camera.Sensitivity)
	}
	if cfg.Camera.MoveSpeed <= 0 {
		return fmt.Errorf("camera moveSpeed must be positive, got %v", cfg.Camera.MoveSpeed)
	}

	if cfg.Targets.MaxConcurrent <= 0 {
		return fmt.Errorf("targets maxConcurrent must be positive, got %d", cfg.Targets.MaxConcurrent)
	}
	if cfg.Targets.SpawnInterval <= 0 {
		return fmt.Errorf("targets spawnInterval must be positive, got %v", cfg.Targets.SpawnInterval)
	}
	if cfg.Targets.Lifetime <= 0 {
		return fmt.Errorf("targets lifetime must be positive, got %v", cfg.Targets.Lifetime)
	}
	if cfg.Targets.Radius <= 0 {
		return fmt.Errorf("targets radius must be positive, got %v", cfg.Targets.Radius)
	}
	if cfg.Targets.MovingRatio < 0 || cfg.Targets.MovingRatio > 1 {
		return fmt.Errorf("targets movingRatio must be in [0, 1], got %v", cfg.Targets.MovingRatio)
	}
	if cfg.Targets.MoveSpeed < 0 {
		return fmt.Errorf("targets moveSpeed must be non-negative, got %v", cfg.Targets.MoveSpeed)
	}

	if err := validateRegion("spawnRegion", cfg.SpawnRegion); err != nil {
		return err
	}
	if err := validateRegion("worldBounds", cfg.WorldBounds); err != nil {
		return err
	}

	if cfg.Audio.Volume < 0 || cfg.Audio.Volume > 1 {
		return fmt.Errorf("audio volume must be in [0, 1], got %v", cfg.Audio.Volume)
	}

	return nil
}

// validateRegion 验证区域每个轴上 min <= max
func validateRegion(name string, r RegionConfig) error {
	if r.Min.X > r.Max.X || r.Min.Y > r.Max.Y || r.Min.Z > r.Max.Z {
		return fmt.Errorf("%s min must not exceed max on any axis: min=(%v,%v,%v) max=(%v,%v,%v)",
			name, r.Min.X, r.Min.Y, r.Min.Z, r.Max.X, r.Max.Y, r.Max.Z)
	}
	return nil
}
