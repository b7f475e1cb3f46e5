package main

import (
	"flag"
	"log"

	"github.com/decker502/aimtrainer/pkg/app"
	"github.com/decker502/aimtrainer/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "外部配置文件路径（默认使用内嵌配置）")
	seed       = flag.Int64("seed", 0, "固定随机种子，目标生成序列可复现（0 表示按时间播种）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（必须在 NewApp 之前）
	embedded.Init(assetsFS)

	trainer, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// Set window properties
	width, height := trainer.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(trainer.WindowTitle())

	// Start the game loop
	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(trainer); err != nil {
		log.Fatal(err)
	}
}
