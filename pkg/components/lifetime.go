package components

// LifetimeComponent 管理特效实体的生命周期
// 用于自动清理存在时间超过上限的实体(如命中标记)
// 注意: 目标实体的过期不走此组件,由 TargetManager 统一处理以保证漏击计数
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期
}
