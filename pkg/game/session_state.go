package game

import "log"

// SessionState 训练会话状态
// 保存暂停标志与会话时钟,由场景持有并显式传入需要它的系统。
// 会话时钟由固定步长的更新累加而来,暂停期间停走,所有目标的
// 生成/过期判定都以它为准,不读墙钟
type SessionState struct {
	paused  bool
	elapsed float64 // 会话时钟(秒)
}

// NewSessionState 创建新的会话状态,时钟从 0 开始
func NewSessionState() *SessionState {
	return &SessionState{}
}

// Advance 推进会话时钟
// 暂停时不累加,返回推进后的时钟读数
func (ss *SessionState) Advance(deltaTime float64) float64 {
	if !ss.paused {
		ss.elapsed += deltaTime
	}
	return ss.elapsed
}

// Now 返回当前会话时钟读数(秒)
func (ss *SessionState) Now() float64 {
	return ss.elapsed
}

// TogglePause 切换暂停状态,返回切换后的状态
func (ss *SessionState) TogglePause() bool {
	ss.paused = !ss.paused
	if ss.paused {
		log.Printf("[SessionState] Paused at %.2fs", ss.elapsed)
	} else {
		log.Printf("[SessionState] Resumed at %.2fs", ss.elapsed)
	}
	return ss.paused
}

// SetPaused 直接设置暂停状态
func (ss *SessionState) SetPaused(paused bool) {
	ss.paused = paused
}

// IsPaused 返回当前是否暂停
func (ss *SessionState) IsPaused() bool {
	return ss.paused
}

// Reset 重置会话时钟并解除暂停
func (ss *SessionState) Reset() {
	ss.paused = false
	ss.elapsed = 0
}
