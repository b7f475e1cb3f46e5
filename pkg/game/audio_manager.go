package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	internalaudio "github.com/decker502/aimtrainer/internal/audio"
	"github.com/decker502/aimtrainer/pkg/config"
)

// 音效 ID
const (
	// SoundFire 开枪音效
	SoundFire = "fire"
	// SoundHit 命中音效(上扬)
	SoundHit = "hit"
	// SoundExpire 目标过期音效(下坠)
	SoundExpire = "expire"
	// SoundClick 界面点击音效
	SoundClick = "click"
)

// toneSpec 单个合成音效的参数
type toneSpec struct {
	startFreq float64
	endFreq   float64
	duration  float64
}

// 所有音效都由正弦扫频合成,无需外部音频资源
var toneSpecs = map[string]toneSpec{
	SoundFire:   {startFreq: 880, endFreq: 660, duration: 0.08},
	SoundHit:    {startFreq: 660, endFreq: 1320, duration: 0.12},
	SoundExpire: {startFreq: 440, endFreq: 220, duration: 0.2},
	SoundClick:  {startFreq: 1200, endFreq: 1200, duration: 0.05},
}

// AudioManager 音频管理器
// 职责:
//   - 统一管理训练过程中所有音效的播放
//   - 启动时一次性合成全部音效并缓存播放器
//   - 静音开关与音量控制
//
// audioContext 为 nil 时(无声环境、单元测试)管理器静默降级,
// 所有播放调用直接返回 false
type AudioManager struct {
	audioContext *audio.Context           // 音频上下文(可为 nil)
	soundPlayers map[string]*audio.Player // 音效播放器缓存(音效ID -> 播放器)
	muted        bool                     // 静音开关
	volume       float64                  // 音效音量 (0.0 ~ 1.0)
}

// NewAudioManager 创建新的音频管理器并合成全部音效
//
// 参数:
//   - audioContext: 音频上下文,可为 nil(此时播放调用全部失败但不报错)
//   - cfg: 训练配置(读取 Audio 部分)
//
// 返回:
//   - *AudioManager: 音频管理器实例
func NewAudioManager(audioContext *audio.Context, cfg *config.TrainerConfig) *AudioManager {
	am := &AudioManager{
		audioContext: audioContext,
		soundPlayers: make(map[string]*audio.Player),
		muted:        cfg.Audio.Muted,
		volume:       cfg.Audio.Volume,
	}

	if audioContext == nil {
		log.Printf("[AudioManager] No audio context, sound disabled")
		return am
	}

	sampleRate := audioContext.SampleRate()
	for id, spec := range toneSpecs {
		tone, err := internalaudio.NewTone(sampleRate, spec.startFreq, spec.endFreq, spec.duration, 1.0)
		if err != nil {
			log.Printf("[AudioManager] Warning: Failed to synthesize sound %s: %v", id, err)
			continue
		}
		player, err := audioContext.NewPlayer(tone)
		if err != nil {
			log.Printf("[AudioManager] Warning: Failed to create player for sound %s: %v", id, err)
			continue
		}
		am.soundPlayers[id] = player
	}

	log.Printf("[AudioManager] Synthesized %d sounds (volume: %.2f, muted: %v)",
		len(am.soundPlayers), am.volume, am.muted)

	return am
}

// PlaySound 播放音效
// 音效单次播放,重复触发时从头重放
//
// 参数:
//   - soundID: 音效ID(SoundFire、SoundHit、SoundExpire、SoundClick)
//
// 返回:
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.muted {
		return false
	}

	player, exists := am.soundPlayers[soundID]
	if !exists {
		if am.audioContext != nil {
			log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		}
		return false
	}

	player.SetVolume(am.volume)

	// 重置并播放
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()

	return true
}

// SetMuted 设置静音开关
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
}

// ToggleMuted 切换静音开关,返回切换后的状态
func (am *AudioManager) ToggleMuted() bool {
	am.muted = !am.muted
	log.Printf("[AudioManager] Muted: %v", am.muted)
	return am.muted
}

// IsMuted 返回当前是否静音
func (am *AudioManager) IsMuted() bool {
	return am.muted
}

// SetVolume 设置音效音量
// 超出 [0, 1] 的输入会被钳制
//
// 参数:
//   - volume: 音量值 (0.0 ~ 1.0)
func (am *AudioManager) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	am.volume = volume

	for _, player := range am.soundPlayers {
		player.SetVolume(volume)
	}
}

// Volume 获取当前音效音量
func (am *AudioManager) Volume() float64 {
	return am.volume
}
