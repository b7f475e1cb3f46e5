package game

import (
	"testing"

	"github.com/decker502/aimtrainer/pkg/config"
)

func TestAudioManagerWithoutContext(t *testing.T) {
	// 无音频上下文时管理器应静默降级而不是崩溃
	am := NewAudioManager(nil, config.DefaultTrainerConfig())

	if am.PlaySound(SoundFire) {
		t.Error("Expected PlaySound to fail without audio context")
	}
	if am.PlaySound("unknown") {
		t.Error("Expected PlaySound to fail for unknown sound")
	}
}

func TestAudioManagerMuteToggle(t *testing.T) {
	cfg := config.DefaultTrainerConfig()
	cfg.Audio.Muted = false
	am := NewAudioManager(nil, cfg)

	if am.IsMuted() {
		t.Error("Expected audio enabled by default")
	}

	if !am.ToggleMuted() {
		t.Error("Expected ToggleMuted to return true after first toggle")
	}
	if !am.IsMuted() {
		t.Error("Expected muted state after toggle")
	}

	// 静音时播放立即失败
	if am.PlaySound(SoundHit) {
		t.Error("Expected PlaySound to fail while muted")
	}

	am.SetMuted(false)
	if am.IsMuted() {
		t.Error("Expected unmuted state after SetMuted(false)")
	}
}

func TestAudioManagerVolumeClamp(t *testing.T) {
	am := NewAudioManager(nil, config.DefaultTrainerConfig())

	am.SetVolume(1.5)
	if am.Volume() != 1.0 {
		t.Errorf("Expected volume clamped to 1.0, got %.2f", am.Volume())
	}

	am.SetVolume(-0.5)
	if am.Volume() != 0.0 {
		t.Errorf("Expected volume clamped to 0.0, got %.2f", am.Volume())
	}

	am.SetVolume(0.35)
	if am.Volume() != 0.35 {
		t.Errorf("Expected volume 0.35, got %.2f", am.Volume())
	}
}
