package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/ecs"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/decker502/aimtrainer/pkg/systems"
	"github.com/decker502/aimtrainer/pkg/utils"
	"github.com/go-gl/mathgl/mgl32"
)

const tickRate = 1.0 / 60.0

var verbose = flag.Bool("verbose", false, "显示详细调试信息")

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	fmt.Println("=== 训练核心流程验证 ===")
	fmt.Println()

	cfg := config.DefaultTrainerConfig()

	// --- 场景 1: 无操作挂机,只看生成节奏与过期 ---
	fmt.Println("--- 场景 1: 10 秒无操作 ---")
	em1 := ecs.NewEntityManager()
	tm1 := game.NewTargetManager(em1, cfg, rand.New(rand.NewSource(7)))

	capExceeded := false
	now := 0.0
	for tick := 0; tick < 600; tick++ {
		tm1.Update(now)
		if tm1.ActiveCount() > cfg.Targets.MaxConcurrent {
			capExceeded = true
		}
		em1.RemoveMarkedEntities()
		now += tickRate
	}
	fmt.Printf("生成总数=%d 漏击=%d 存活=%d\n", tm1.TotalSpawned(), tm1.Misses(), tm1.ActiveCount())

	// --- 场景 2: 每帧瞄准首个目标并射击 ---
	fmt.Println()
	fmt.Println("--- 场景 2: 5 秒精准射击 ---")
	em2 := ecs.NewEntityManager()
	tm2 := game.NewTargetManager(em2, cfg, rand.New(rand.NewSource(7)))
	origin := cfg.Camera.StartPosition.Vec3()

	shots := 0
	allShotsHit := true
	markerSeen := false
	now = 0.0
	for tick := 0; tick < 300; tick++ {
		tm2.Update(now)
		if snapshots := tm2.ActiveTargets(now); len(snapshots) > 0 {
			direction := snapshots[0].Position.Sub(origin)
			shots++
			if !tm2.CheckShot(origin, direction) {
				allShotsHit = false
			}
		}
		if len(ecs.GetEntitiesWith1[*components.HitMarkerComponent](em2)) > 0 {
			markerSeen = true
		}
		em2.RemoveMarkedEntities()
		now += tickRate
	}
	fmt.Printf("射击=%d 命中=%d 漏击=%d 命中率=%.1f%%\n", shots, tm2.Hits(), tm2.Misses(), tm2.Accuracy())

	// --- 场景 3: 命中标记随生命周期消散 ---
	fmt.Println()
	fmt.Println("--- 场景 3: 命中标记清理 ---")
	lifetimeSystem := systems.NewLifetimeSystem(em2)
	markersBefore := len(ecs.GetEntitiesWith1[*components.HitMarkerComponent](em2))
	for tick := 0; tick < 30; tick++ {
		lifetimeSystem.Update(tickRate)
		em2.RemoveMarkedEntities()
	}
	markersAfter := len(ecs.GetEntitiesWith1[*components.HitMarkerComponent](em2))
	fmt.Printf("清理前标记=%d 清理后标记=%d\n", markersBefore, markersAfter)

	// --- 场景 4: 固定种子可复现 ---
	fmt.Println()
	fmt.Println("--- 场景 4: 固定种子可复现 ---")
	posA := spawnSequence(cfg, 99)
	posB := spawnSequence(cfg, 99)
	reproducible := len(posA) == len(posB) && len(posA) > 0
	if reproducible {
		for i := range posA {
			if posA[i] != posB[i] {
				reproducible = false
				break
			}
		}
	}
	fmt.Printf("序列长度=%d 完全一致=%v\n", len(posA), reproducible)

	// --- 场景 5: 摄像机与射线几何 ---
	fmt.Println()
	fmt.Println("--- 场景 5: 摄像机与射线几何 ---")
	camera := game.NewCamera(origin, 0, 0)
	camera.Rotate(0, 500)
	pitchClamped := camera.Pitch() == 89
	camera.Rotate(0, -1000)
	pitchClampedLow := camera.Pitch() == -89

	camera.SetRotation(0, 80)
	yBefore := camera.Position().Y()
	camera.MoveForward(2)
	planarMove := camera.Position().Y() == yBefore

	_, tangentHit := utils.RaySphereIntersect(
		mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0.5, 0, -10}, 0.5)
	_, behindHit := utils.RaySphereIntersect(
		mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, -10}, 0.5)

	fmt.Printf("俯仰钳制=%v/%v 平面移动=%v 相切命中=%v 背后未命中=%v\n",
		pitchClamped, pitchClampedLow, planarMove, tangentHit, !behindHit)

	// --- 汇总 ---
	fmt.Println()
	fmt.Println("=== 检查结果 ===")

	checks := []struct {
		name   string
		passed bool
	}{
		{"挂机 10 秒内存活数从未超过并发上限", !capExceeded},
		{"挂机 10 秒产生漏击", tm1.Misses() > 0},
		{"挂机命中率为 0", tm1.Accuracy() == 0},
		{"精准射击每发都命中", allShotsHit && shots > 0},
		{"精准射击命中数等于射击数", tm2.Hits() == shots},
		{"精准射击无漏击", tm2.Misses() == 0},
		{"精准射击命中率 100%", math.Abs(tm2.Accuracy()-100) < 1e-9},
		{"命中后出现命中标记", markerSeen},
		{"命中标记在生命周期后清理", markersAfter == 0},
		{"固定种子生成序列可复现", reproducible},
		{"俯仰角钳制在 ±89°", pitchClamped && pitchClampedLow},
		{"前后移动不改变高度", planarMove},
		{"射线相切算命中", tangentHit},
		{"背向射线不命中", !behindHit},
	}

	allPassed := true
	for _, check := range checks {
		status := "✅"
		if !check.passed {
			status = "❌"
			allPassed = false
		}
		fmt.Printf("%s %s\n", status, check.name)
	}

	fmt.Println()
	fmt.Println("=== 结论 ===")
	if allPassed {
		fmt.Println("🎉 训练核心全部通过")
	} else {
		fmt.Println("❌ 存在失败项")
		os.Exit(1)
	}
}

// spawnSequence 用指定种子跑 5 秒,返回按生成顺序排列的目标位置
func spawnSequence(cfg *config.TrainerConfig, seed int64) []mgl32.Vec3 {
	em := ecs.NewEntityManager()
	tm := game.NewTargetManager(em, cfg, rand.New(rand.NewSource(seed)))

	now := 0.0
	for tick := 0; tick < 300; tick++ {
		tm.Update(now)
		em.RemoveMarkedEntities()
		now += tickRate
	}

	var positions []mgl32.Vec3
	for _, id := range ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](em) {
		transform, ok := ecs.GetComponent[*components.TransformComponent](em, id)
		if !ok {
			continue
		}
		positions = append(positions, transform.Position)
	}
	return positions
}
