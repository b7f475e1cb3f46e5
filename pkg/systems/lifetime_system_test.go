package systems

import (
	"reflect"
	"testing"

	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/ecs"
	"github.com/decker502/aimtrainer/pkg/entities"
	"github.com/go-gl/mathgl/mgl32"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	// 创建测试实体
	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{
		MaxLifetime:     10.0,
		CurrentLifetime: 0,
		IsExpired:       false,
	})

	// 模拟5秒更新
	system.Update(5.0)

	// 验证生命周期增加
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !ok {
		t.Fatal("Lifetime component missing")
	}

	if lifetime.CurrentLifetime != 5.0 {
		t.Errorf("Expected CurrentLifetime=5.0, got %f", lifetime.CurrentLifetime)
	}

	if lifetime.IsExpired {
		t.Error("Entity should not be expired yet")
	}
}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	// 创建测试实体
	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{
		MaxLifetime:     10.0,
		CurrentLifetime: 0,
		IsExpired:       false,
	})

	// 模拟超过最大生命周期
	system.Update(12.0)

	// 验证过期标记
	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !lifetime.IsExpired {
		t.Error("Entity should be expired")
	}

	// 清理实体
	em.RemoveMarkedEntities()

	// 验证实体已被删除
	if em.HasComponent(id, reflect.TypeOf(&components.LifetimeComponent{})) {
		t.Error("Expired entity should be removed")
	}
}

func TestLifetimeMultipleUpdates(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	// 创建测试实体
	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{
		MaxLifetime:     10.0,
		CurrentLifetime: 0,
		IsExpired:       false,
	})

	// 多次小步更新
	system.Update(3.0)
	system.Update(3.0)
	system.Update(3.0)

	// 验证累积生命周期
	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.CurrentLifetime != 9.0 {
		t.Errorf("Expected CurrentLifetime=9.0, got %f", lifetime.CurrentLifetime)
	}

	// 再更新一次,应该过期
	system.Update(2.0)

	lifetime, _ = ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !lifetime.IsExpired {
		t.Error("Entity should be expired after exceeding MaxLifetime")
	}
}

func TestHitMarkerExpires(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	// 命中标记由工厂创建,0.3 秒后自动消失
	id := entities.NewHitMarkerEntity(em, mgl32.Vec3{0, 2, -10}, 0.6)

	system.Update(0.1)
	if _, ok := ecs.GetComponent[*components.HitMarkerComponent](em, id); !ok {
		t.Fatal("Hit marker should still exist at 0.1s")
	}
	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.IsExpired {
		t.Error("Hit marker should not be expired at 0.1s")
	}

	system.Update(0.25)
	em.RemoveMarkedEntities()

	if _, ok := ecs.GetComponent[*components.HitMarkerComponent](em, id); ok {
		t.Error("Hit marker should be removed after its lifetime")
	}
}
