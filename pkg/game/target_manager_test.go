package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/ecs"
	"github.com/decker502/aimtrainer/pkg/entities"
	"github.com/go-gl/mathgl/mgl32"
)

// newTestManager 构建一个使用固定种子的目标管理器
func newTestManager(mutate func(cfg *config.TrainerConfig)) (*ecs.EntityManager, *TargetManager) {
	cfg := config.DefaultTrainerConfig()
	if mutate != nil {
		mutate(cfg)
	}
	em := ecs.NewEntityManager()
	tm := NewTargetManager(em, cfg, rand.New(rand.NewSource(1)))
	return em, tm
}

func TestTargetManagerImmediateFirstSpawn(t *testing.T) {
	_, tm := newTestManager(nil)

	// 会话开始的第一次更新就应该生成目标,无需等待一个完整间隔
	tm.Update(0)

	if tm.ActiveCount() != 1 {
		t.Errorf("Expected 1 active target after first update, got %d", tm.ActiveCount())
	}
	if tm.TotalSpawned() != 1 {
		t.Errorf("Expected total spawned 1, got %d", tm.TotalSpawned())
	}
}

func TestTargetManagerSpawnCadence(t *testing.T) {
	_, tm := newTestManager(func(cfg *config.TrainerConfig) {
		cfg.Targets.SpawnInterval = 1.0
		cfg.Targets.Lifetime = 100 // 避免过期干扰计数
		cfg.Targets.MaxConcurrent = 10
	})

	tm.Update(0)
	if tm.TotalSpawned() != 1 {
		t.Fatalf("Expected 1 spawn at t=0, got %d", tm.TotalSpawned())
	}

	// 间隔未满,不生成
	tm.Update(0.5)
	if tm.TotalSpawned() != 1 {
		t.Errorf("Expected no spawn before interval elapsed, got %d", tm.TotalSpawned())
	}

	// 间隔已满,生成一个
	tm.Update(1.0)
	if tm.TotalSpawned() != 2 {
		t.Errorf("Expected 2 spawns at t=1.0, got %d", tm.TotalSpawned())
	}

	// 即使停更很久,单次更新也只补一个
	tm.Update(50)
	if tm.TotalSpawned() != 3 {
		t.Errorf("Expected single spawn per update after long gap, got %d", tm.TotalSpawned())
	}
}

func TestTargetManagerConcurrencyCap(t *testing.T) {
	_, tm := newTestManager(func(cfg *config.TrainerConfig) {
		cfg.Targets.MaxConcurrent = 3
		cfg.Targets.SpawnInterval = 1.0
		cfg.Targets.Lifetime = 1000 // 目标不过期,存活数只增不减
	})

	// 推进远超 3 个间隔的时间,存活数不能超过上限
	for i := 0; i <= 20; i++ {
		tm.Update(float64(i))
		if tm.ActiveCount() > 3 {
			t.Fatalf("Active count %d exceeded cap 3 at t=%d", tm.ActiveCount(), i)
		}
	}

	if tm.ActiveCount() != 3 {
		t.Errorf("Expected cap to be reached, got %d active targets", tm.ActiveCount())
	}
	if tm.TotalSpawned() != 3 {
		t.Errorf("Expected exactly 3 spawns under cap, got %d", tm.TotalSpawned())
	}
}

func TestTargetManagerExpiryCountsMissOnce(t *testing.T) {
	_, tm := newTestManager(func(cfg *config.TrainerConfig) {
		cfg.Targets.Lifetime = 2.5
		cfg.Targets.SpawnInterval = 100 // 只发生一次生成
	})

	tm.Update(0)
	if tm.ActiveCount() != 1 {
		t.Fatalf("Expected 1 active target, got %d", tm.ActiveCount())
	}

	// 未到存活上限,不算漏击
	tm.Update(2.4)
	if tm.Misses() != 0 {
		t.Errorf("Expected no miss before lifetime elapsed, got %d", tm.Misses())
	}

	// 到达存活上限的同一帧,目标失效并计一次漏击
	tm.Update(2.5)
	if tm.Misses() != 1 {
		t.Errorf("Expected 1 miss at expiry, got %d", tm.Misses())
	}
	if tm.ActiveCount() != 0 {
		t.Errorf("Expected expired target to be inactive, got %d active", tm.ActiveCount())
	}

	// 后续更新不得重复计数
	tm.Update(2.6)
	tm.Update(3.0)
	if tm.Misses() != 1 {
		t.Errorf("Expected miss counted exactly once, got %d", tm.Misses())
	}
}

func TestTargetManagerWhiffedShot(t *testing.T) {
	_, tm := newTestManager(func(cfg *config.TrainerConfig) {
		cfg.Targets.Lifetime = 1000
	})
	tm.Update(0)

	// 朝反方向射击,必定落空
	hit := tm.CheckShot(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{0, 0, 1})

	if hit {
		t.Error("Expected shot away from targets to miss")
	}
	if tm.ShotsFired() != 1 {
		t.Errorf("Expected 1 shot fired, got %d", tm.ShotsFired())
	}
	// 打空只计射击数,不算漏击,也不影响命中率
	if tm.Misses() != 0 {
		t.Errorf("Expected whiffed shot not to count as miss, got %d", tm.Misses())
	}
	if tm.Accuracy() != 0 {
		t.Errorf("Expected accuracy 0 with no hits and no expiries, got %.2f", tm.Accuracy())
	}
	if tm.ActiveCount() != 1 {
		t.Errorf("Expected target to survive whiffed shot, got %d active", tm.ActiveCount())
	}
}

func TestTargetManagerCheckShotHit(t *testing.T) {
	em, tm := newTestManager(func(cfg *config.TrainerConfig) {
		cfg.Targets.MaxConcurrent = 3
	})

	// 手工放置目标,位置确定,便于瞄准
	entities.NewTargetEntity(em, mgl32.Vec3{0, 1.7, -10}, mgl32.Vec3{}, 0.5, 0, 1000)

	origin := mgl32.Vec3{0, 1.7, 5}
	direction := mgl32.Vec3{0, 0, -1}
	hit := tm.CheckShot(origin, direction)

	if !hit {
		t.Fatal("Expected direct shot to hit the target")
	}
	if tm.Hits() != 1 {
		t.Errorf("Expected 1 hit, got %d", tm.Hits())
	}
	if tm.ShotsFired() != 1 {
		t.Errorf("Expected 1 shot fired, got %d", tm.ShotsFired())
	}
	if tm.ActiveCount() != 0 {
		t.Errorf("Expected hit target to be removed, got %d active", tm.ActiveCount())
	}

	// 命中处应生成命中标记特效
	markers := ecs.GetEntitiesWith1[*components.HitMarkerComponent](em)
	if len(markers) != 1 {
		t.Errorf("Expected 1 hit marker entity, got %d", len(markers))
	}
}

func TestTargetManagerFirstMatchInSpawnOrder(t *testing.T) {
	em, tm := newTestManager(func(cfg *config.TrainerConfig) {
		cfg.Targets.MaxConcurrent = 3
	})

	// 两个目标在同一条射线上: 先生成的较远,后生成的较近
	// 命中判定按生成顺序取首个命中者,而不是最近者
	first := entities.NewTargetEntity(em, mgl32.Vec3{0, 0, -12}, mgl32.Vec3{}, 0.5, 0, 1000)
	second := entities.NewTargetEntity(em, mgl32.Vec3{0, 0, -8}, mgl32.Vec3{}, 0.5, 0, 1000)

	hit := tm.CheckShot(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	if !hit {
		t.Fatal("Expected shot to hit")
	}

	firstTarget, ok := ecs.GetComponent[*components.TargetComponent](em, first)
	if !ok {
		t.Fatal("First target component missing")
	}
	if !firstTarget.Hit {
		t.Error("Expected first-spawned target to take the hit")
	}

	secondTarget, ok := ecs.GetComponent[*components.TargetComponent](em, second)
	if !ok {
		t.Fatal("Second target component missing")
	}
	if secondTarget.Hit || !secondTarget.Active {
		t.Error("Expected second-spawned target to remain active")
	}
	if tm.Hits() != 1 {
		t.Errorf("Expected exactly 1 hit, got %d", tm.Hits())
	}
}

func TestTargetManagerAccuracy(t *testing.T) {
	em, tm := newTestManager(func(cfg *config.TrainerConfig) {
		cfg.Targets.MaxConcurrent = 3
	})

	// 无任何数据时命中率为 0
	if tm.Accuracy() != 0 {
		t.Errorf("Expected accuracy 0 with no data, got %.2f", tm.Accuracy())
	}

	// 3 命中 + 1 过期漏击 = 75%
	positions := []mgl32.Vec3{{0, 0, -10}, {3, 1, -10}, {-3, 2, -10}}
	for _, p := range positions {
		entities.NewTargetEntity(em, p, mgl32.Vec3{}, 0.5, 0, 2.5)
	}
	entities.NewTargetEntity(em, mgl32.Vec3{0, 5, -10}, mgl32.Vec3{}, 0.5, 0, 2.5)

	for _, p := range positions {
		if !tm.CheckShot(mgl32.Vec3{0, 0, 0}, p) {
			t.Fatalf("Expected shot at (%.1f, %.1f, %.1f) to hit", p.X(), p.Y(), p.Z())
		}
	}

	// 推进到第四个目标过期
	tm.Update(3.0)

	if tm.Hits() != 3 {
		t.Fatalf("Expected 3 hits, got %d", tm.Hits())
	}
	if tm.Misses() != 1 {
		t.Fatalf("Expected 1 miss, got %d", tm.Misses())
	}
	if acc := tm.Accuracy(); math.Abs(acc-75.0) > 1e-9 {
		t.Errorf("Expected accuracy 75.0, got %.2f", acc)
	}
}

func TestTargetManagerResetStats(t *testing.T) {
	em, tm := newTestManager(func(cfg *config.TrainerConfig) {
		cfg.Targets.MaxConcurrent = 5
	})

	entities.NewTargetEntity(em, mgl32.Vec3{0, 0, -10}, mgl32.Vec3{}, 0.5, 0, 2.5)
	entities.NewTargetEntity(em, mgl32.Vec3{5, 0, -10}, mgl32.Vec3{}, 0.5, 0, 1000)

	tm.CheckShot(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	tm.CheckShot(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{0, 0, 1})

	if tm.Hits() != 1 || tm.ShotsFired() != 2 {
		t.Fatalf("Unexpected stats before reset: hits=%d shots=%d", tm.Hits(), tm.ShotsFired())
	}

	tm.ResetStats()

	if tm.Hits() != 0 || tm.Misses() != 0 || tm.ShotsFired() != 0 || tm.TotalSpawned() != 0 {
		t.Errorf("Expected all counters zeroed after reset: hits=%d misses=%d shots=%d spawned=%d",
			tm.Hits(), tm.Misses(), tm.ShotsFired(), tm.TotalSpawned())
	}
	// 重置只清统计,存活目标不受影响
	if tm.ActiveCount() != 1 {
		t.Errorf("Expected live target to survive reset, got %d active", tm.ActiveCount())
	}
	if tm.Accuracy() != 0 {
		t.Errorf("Expected accuracy 0 after reset, got %.2f", tm.Accuracy())
	}
}

func TestTargetManagerSpawnWithinRegion(t *testing.T) {
	em, tm := newTestManager(func(cfg *config.TrainerConfig) {
		cfg.Targets.MaxConcurrent = 100
		cfg.Targets.SpawnInterval = 1.0
		cfg.Targets.Lifetime = 10000
		cfg.Targets.MovingRatio = 0
	})

	for i := 0; i < 50; i++ {
		tm.Update(float64(i))
	}

	cfg := config.DefaultTrainerConfig()
	min := cfg.SpawnRegion.Min.Vec3()
	max := cfg.SpawnRegion.Max.Vec3()

	ids := ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](em)
	if len(ids) != 50 {
		t.Fatalf("Expected 50 targets, got %d", len(ids))
	}
	for _, id := range ids {
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		p := transform.Position
		if p.X() < min.X() || p.X() > max.X() ||
			p.Y() < min.Y() || p.Y() > max.Y() ||
			p.Z() < min.Z() || p.Z() > max.Z() {
			t.Errorf("Target %d spawned outside region: (%.2f, %.2f, %.2f)", id, p.X(), p.Y(), p.Z())
		}
	}
}

func TestTargetManagerMovingRatio(t *testing.T) {
	// 比例为 1 时所有目标都带速度,且速度大小等于配置值
	em, tm := newTestManager(func(cfg *config.TrainerConfig) {
		cfg.Targets.MaxConcurrent = 100
		cfg.Targets.Lifetime = 10000
		cfg.Targets.MovingRatio = 1.0
		cfg.Targets.MoveSpeed = 3.0
	})
	for i := 0; i < 10; i++ {
		tm.Update(float64(i))
	}
	ids := ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](em)
	for _, id := range ids {
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		speed := float64(transform.Velocity.Len())
		if math.Abs(speed-3.0) > 1e-3 {
			t.Errorf("Target %d velocity magnitude %.4f, expected 3.0", id, speed)
		}
	}

	// 比例为 0 时所有目标静止
	em2, tm2 := newTestManager(func(cfg *config.TrainerConfig) {
		cfg.Targets.MaxConcurrent = 100
		cfg.Targets.Lifetime = 10000
		cfg.Targets.MovingRatio = 0
	})
	for i := 0; i < 10; i++ {
		tm2.Update(float64(i))
	}
	ids2 := ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](em2)
	for _, id := range ids2 {
		transform, _ := ecs.GetComponent[*components.TransformComponent](em2, id)
		if transform.Velocity.Len() != 0 {
			t.Errorf("Target %d should be stationary, velocity %v", id, transform.Velocity)
		}
	}
}

func TestTargetManagerDeterministicWithSeed(t *testing.T) {
	spawnSequence := func() []mgl32.Vec3 {
		cfg := config.DefaultTrainerConfig()
		cfg.Targets.MaxConcurrent = 100
		cfg.Targets.Lifetime = 10000
		em := ecs.NewEntityManager()
		tm := NewTargetManager(em, cfg, rand.New(rand.NewSource(42)))
		for i := 0; i < 20; i++ {
			tm.Update(float64(i))
		}

		var positions []mgl32.Vec3
		for _, id := range ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](em) {
			transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
			positions = append(positions, transform.Position)
		}
		return positions
	}

	// 相同种子下两次运行的生成序列应完全一致
	first := spawnSequence()
	second := spawnSequence()

	if len(first) != len(second) {
		t.Fatalf("Spawn counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Spawn %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestTargetManagerActiveTargets(t *testing.T) {
	em, tm := newTestManager(func(cfg *config.TrainerConfig) {
		cfg.Targets.MaxConcurrent = 5
	})

	entities.NewTargetEntity(em, mgl32.Vec3{0, 2, -10}, mgl32.Vec3{}, 0.4, 0, 2.5)

	// 存活过半: 剩余比例应为 0.5
	snapshots := tm.ActiveTargets(1.25)
	if len(snapshots) != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", len(snapshots))
	}
	s := snapshots[0]
	if s.Position != (mgl32.Vec3{0, 2, -10}) {
		t.Errorf("Unexpected snapshot position %v", s.Position)
	}
	if s.Radius != 0.4 {
		t.Errorf("Expected radius 0.4, got %.2f", s.Radius)
	}
	if math.Abs(s.Remaining-0.5) > 1e-9 {
		t.Errorf("Expected remaining 0.5 at half lifetime, got %.4f", s.Remaining)
	}

	// 刚生成时剩余比例为 1
	fresh := tm.ActiveTargets(0)
	if math.Abs(fresh[0].Remaining-1.0) > 1e-9 {
		t.Errorf("Expected remaining 1.0 at spawn, got %.4f", fresh[0].Remaining)
	}
}
