package game

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/ecs"
	"github.com/decker502/aimtrainer/pkg/entities"
	"github.com/decker502/aimtrainer/pkg/utils"
	"github.com/go-gl/mathgl/mgl32"
)

// TargetSnapshot 渲染用的目标快照
type TargetSnapshot struct {
	Position  mgl32.Vec3 // 球心(世界坐标)
	Radius    float32    // 球体半径
	Remaining float64    // 剩余存活比例 [0, 1],刚生成为 1,即将过期为 0
}

// TargetManager 目标管理器
// 职责:
//   - 按节奏生成目标(间隔与并发上限受配置约束,每次更新最多生成一个)
//   - 目标过期检测与漏击计数(漏击只来自过期,打空不算)
//   - 射击命中判定(按生成顺序遍历,首个命中即终止)
//   - 命中/漏击/射击统计与命中率计算
//
// 所有时间参数都使用会话时钟(暂停时停走),随机性来自注入的 rng,
// 同一种子下的生成序列完全可复现
type TargetManager struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand

	// 生成配置(启动后不变)
	maxConcurrent int
	spawnInterval float64
	lifetime      float64
	radius        float32
	movingRatio   float64
	moveSpeed     float64
	spawnMin      mgl32.Vec3
	spawnMax      mgl32.Vec3

	lastSpawnTime float64

	// 统计
	hits         int
	misses       int
	shotsFired   int
	totalSpawned int
}

// NewTargetManager 创建目标管理器
// 参数:
//   - em: EntityManager 实例
//   - cfg: 训练配置(读取 Targets 和 SpawnRegion 部分)
//   - rng: 随机数源,可为 nil(此时按当前时间播种)
func NewTargetManager(em *ecs.EntityManager, cfg *config.TrainerConfig, rng *rand.Rand) *TargetManager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	log.Printf("[TargetManager] Initialized with max=%d, interval=%.2fs, lifetime=%.2fs, radius=%.2f",
		cfg.Targets.MaxConcurrent, cfg.Targets.SpawnInterval, cfg.Targets.Lifetime, cfg.Targets.Radius)

	return &TargetManager{
		entityManager: em,
		rng:           rng,
		maxConcurrent: cfg.Targets.MaxConcurrent,
		spawnInterval: cfg.Targets.SpawnInterval,
		lifetime:      cfg.Targets.Lifetime,
		radius:        float32(cfg.Targets.Radius),
		movingRatio:   cfg.Targets.MovingRatio,
		moveSpeed:     cfg.Targets.MoveSpeed,
		spawnMin:      cfg.SpawnRegion.Min.Vec3(),
		spawnMax:      cfg.SpawnRegion.Max.Vec3(),
		// 首次更新即满足生成间隔,会话开始立刻出现目标
		lastSpawnTime: -cfg.Targets.SpawnInterval,
	}
}

// Update 推进目标状态
// 每帧调用一次,now 为会话时钟(秒)。先做过期检测,再按需生成:
// 过期的未命中目标计为一次漏击并销毁;存活数低于上限且距上次生成
// 已超过间隔时生成一个新目标(单次更新最多一个,不做补偿性连发)
func (tm *TargetManager) Update(now float64) {
	liveCount := 0

	ids := ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](tm.entityManager)
	for _, id := range ids {
		target, ok := ecs.GetComponent[*components.TargetComponent](tm.entityManager, id)
		if !ok || !target.Active {
			continue
		}

		// 过期检测: 经过时长达到存活上限即过期
		if now-target.SpawnTime >= target.Lifetime {
			target.Active = false
			tm.misses++
			tm.entityManager.DestroyEntity(id)
			log.Printf("[TargetManager] Target %d expired (misses=%d)", id, tm.misses)
			continue
		}
		liveCount++
	}

	// 生成判定
	if liveCount < tm.maxConcurrent && now-tm.lastSpawnTime >= tm.spawnInterval {
		tm.spawnTarget(now)
		tm.lastSpawnTime = now
	}
}

// spawnTarget 在生成区域内随机位置生成一个目标
func (tm *TargetManager) spawnTarget(now float64) {
	position := tm.randomSpawnPosition()

	// 按配置比例生成移动目标
	velocity := mgl32.Vec3{}
	if tm.movingRatio > 0 && tm.rng.Float64() < tm.movingRatio {
		velocity = tm.randomDirection().Mul(float32(tm.moveSpeed))
	}

	id := entities.NewTargetEntity(tm.entityManager, position, velocity, tm.radius, now, tm.lifetime)
	tm.totalSpawned++
	log.Printf("[TargetManager] Spawned target %d at (%.1f, %.1f, %.1f), total=%d",
		id, position.X(), position.Y(), position.Z(), tm.totalSpawned)
}

// randomSpawnPosition 在生成区域内逐轴均匀采样
func (tm *TargetManager) randomSpawnPosition() mgl32.Vec3 {
	return mgl32.Vec3{
		tm.spawnMin.X() + tm.rng.Float32()*(tm.spawnMax.X()-tm.spawnMin.X()),
		tm.spawnMin.Y() + tm.rng.Float32()*(tm.spawnMax.Y()-tm.spawnMin.Y()),
		tm.spawnMin.Z() + tm.rng.Float32()*(tm.spawnMax.Z()-tm.spawnMin.Z()),
	}
}

// randomDirection 在单位球面上均匀采样方向向量
func (tm *TargetManager) randomDirection() mgl32.Vec3 {
	y := 2*tm.rng.Float64() - 1
	theta := 2 * math.Pi * tm.rng.Float64()
	r := math.Sqrt(1 - y*y)
	return mgl32.Vec3{
		float32(r * math.Cos(theta)),
		float32(y),
		float32(r * math.Sin(theta)),
	}
}

// CheckShot 射击命中判定
// 按生成顺序遍历存活目标,第一个被射线命中的目标被移除并计入命中;
// 未命中任何目标只累计射击次数,不影响漏击统计(漏击只来自过期)。
// 命中时在球心处生成命中标记特效
// 参数:
//   - rayOrigin: 射线起点(摄像机位置)
//   - rayDirection: 射线方向(视线方向,无需预先归一化)
//
// 返回: 是否命中目标
func (tm *TargetManager) CheckShot(rayOrigin, rayDirection mgl32.Vec3) bool {
	tm.shotsFired++

	ids := ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](tm.entityManager)
	for _, id := range ids {
		target, ok := ecs.GetComponent[*components.TargetComponent](tm.entityManager, id)
		if !ok || !target.Active {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](tm.entityManager, id)
		if !ok {
			continue
		}

		if _, hit := utils.RaySphereIntersect(rayOrigin, rayDirection, transform.Position, target.Radius); hit {
			// 命中为终态: 标记后立即移除,不会再被过期计为漏击
			target.Active = false
			target.Hit = true
			tm.hits++
			tm.entityManager.DestroyEntity(id)

			entities.NewHitMarkerEntity(tm.entityManager, transform.Position, target.Radius*1.5)

			log.Printf("[TargetManager] Target %d hit (hits=%d)", id, tm.hits)
			return true
		}
	}

	return false
}

// ActiveTargets 返回存活目标的渲染快照,按生成顺序排列
// now 用于计算剩余存活比例
func (tm *TargetManager) ActiveTargets(now float64) []TargetSnapshot {
	ids := ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](tm.entityManager)
	snapshots := make([]TargetSnapshot, 0, len(ids))

	for _, id := range ids {
		target, ok := ecs.GetComponent[*components.TargetComponent](tm.entityManager, id)
		if !ok || !target.Active {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](tm.entityManager, id)
		if !ok {
			continue
		}

		snapshots = append(snapshots, TargetSnapshot{
			Position:  transform.Position,
			Radius:    target.Radius,
			Remaining: remainingFraction(target, now),
		})
	}

	return snapshots
}

// ActiveCount 返回当前存活目标数量
func (tm *TargetManager) ActiveCount() int {
	count := 0
	ids := ecs.GetEntitiesWith1[*components.TargetComponent](tm.entityManager)
	for _, id := range ids {
		if target, ok := ecs.GetComponent[*components.TargetComponent](tm.entityManager, id); ok && target.Active {
			count++
		}
	}
	return count
}

// remainingFraction 计算目标的剩余存活比例,钳制到 [0, 1]
func remainingFraction(target *components.TargetComponent, now float64) float64 {
	if target.Lifetime <= 0 {
		return 0
	}
	remaining := 1 - (now-target.SpawnTime)/target.Lifetime
	if remaining < 0 {
		return 0
	}
	if remaining > 1 {
		return 1
	}
	return remaining
}

// Hits 返回命中次数
func (tm *TargetManager) Hits() int {
	return tm.hits
}

// Misses 返回漏击次数(目标过期未被命中的次数)
func (tm *TargetManager) Misses() int {
	return tm.misses
}

// ShotsFired 返回射击总次数(包括打空的射击)
func (tm *TargetManager) ShotsFired() int {
	return tm.shotsFired
}

// TotalSpawned 返回累计生成的目标数量
func (tm *TargetManager) TotalSpawned() int {
	return tm.totalSpawned
}

// Accuracy 计算命中率百分比
// 分母为 命中+漏击(过期),打空的射击不计入;无数据时返回 0
func (tm *TargetManager) Accuracy() float64 {
	total := tm.hits + tm.misses
	if total == 0 {
		return 0
	}
	return float64(tm.hits) / float64(total) * 100
}

// ResetStats 重置所有统计计数
// 已存活的目标保持不变,生成节奏也不受影响
func (tm *TargetManager) ResetStats() {
	tm.hits = 0
	tm.misses = 0
	tm.shotsFired = 0
	tm.totalSpawned = 0
	log.Printf("[TargetManager] Stats reset")
}
