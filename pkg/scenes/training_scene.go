package scenes

import (
	"log"
	"math/rand"

	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/ecs"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/decker502/aimtrainer/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// TrainingScene represents an active training session.
// It owns the session's ECS world, camera, target manager and all
// per-frame systems. Every new session starts from a clean state:
// fresh entity manager, zeroed statistics and the configured camera
// start position.
type TrainingScene struct {
	entityManager *ecs.EntityManager
	camera        *game.Camera
	session       *game.SessionState
	targetManager *game.TargetManager
	audioManager  *game.AudioManager

	inputSystem       *systems.InputSystem
	motionSystem      *systems.TargetMotionSystem
	lifetimeSystem    *systems.LifetimeSystem
	sceneRenderSystem *systems.SceneRenderSystem
	hudRenderSystem   *systems.HUDRenderSystem
}

// NewTrainingScene creates and returns a new TrainingScene instance.
// The mouse cursor is captured for the duration of the session.
//
// Parameters:
//   - cfg: The trainer configuration.
//   - am: The AudioManager instance used for shot and hit sounds.
//   - sm: The SceneManager instance used to return to the menu.
//   - rng: Random source for target spawning; may be nil for a
//     time-seeded source.
//
// Returns:
//   - A pointer to the newly created TrainingScene.
func NewTrainingScene(cfg *config.TrainerConfig, am *game.AudioManager, sm *game.SceneManager, rng *rand.Rand) *TrainingScene {
	em := ecs.NewEntityManager()
	camera := game.NewCamera(cfg.Camera.StartPosition.Vec3(), 0, 0)
	session := game.NewSessionState()
	targetManager := game.NewTargetManager(em, cfg, rng)

	scene := &TrainingScene{
		entityManager:     em,
		camera:            camera,
		session:           session,
		targetManager:     targetManager,
		audioManager:      am,
		inputSystem:       systems.NewInputSystem(camera, targetManager, am, sm, session, cfg),
		motionSystem:      systems.NewTargetMotionSystem(em, cfg),
		lifetimeSystem:    systems.NewLifetimeSystem(em),
		sceneRenderSystem: systems.NewSceneRenderSystem(em, camera, targetManager, cfg),
		hudRenderSystem:   systems.NewHUDRenderSystem(targetManager, session, cfg),
	}

	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	scene.inputSystem.ResetCursorTracking()

	log.Printf("[TrainingScene] Session started")

	return scene
}

// Update advances the session by one fixed step.
// System order matters: input runs first so a pause toggle takes
// effect before any world state advances, then targets expire/spawn,
// then motion and effects. Entities destroyed during the frame are
// removed at the end so queries within the frame stay consistent.
func (s *TrainingScene) Update(deltaTime float64) {
	now := s.session.Advance(deltaTime)

	// 1. Player input (look, move, shoot, pause/reset/quit keys)
	s.inputSystem.Update(deltaTime)

	if s.session.IsPaused() {
		return
	}

	// 2. Target expiry and spawning; an increase in the miss counter
	// means at least one target timed out this frame
	missesBefore := s.targetManager.Misses()
	s.targetManager.Update(now)
	if s.targetManager.Misses() > missesBefore {
		s.audioManager.PlaySound(game.SoundExpire)
	}

	// 3. Moving targets bounce inside the world bounds
	s.motionSystem.Update(deltaTime)

	// 4. Hit marker effects fade out
	s.lifetimeSystem.Update(deltaTime)

	// 5. End-of-frame cleanup of destroyed entities
	s.entityManager.RemoveMarkedEntities()
}

// Draw renders the 3D scene and the HUD on top of it.
func (s *TrainingScene) Draw(screen *ebiten.Image) {
	s.sceneRenderSystem.Draw(screen, s.session.Now())
	s.hudRenderSystem.Draw(screen)
}
