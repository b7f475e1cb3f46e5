package components

// TargetComponent 定义可射击目标的状态
// 目标以三种方式之一结束: 保持存活、被命中移除、超时过期移除,
// 三者互斥,由 TargetManager 统一维护
type TargetComponent struct {
	Radius    float32 // 球体半径(世界单位)
	SpawnTime float64 // 生成时刻(会话时钟,秒)
	Lifetime  float64 // 最大存活时长(秒)
	Active    bool    // 是否存活(过期或命中后为 false)
	Hit       bool    // 是否被命中(终态,不可逆)
}
