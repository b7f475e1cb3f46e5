package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// 俯仰角限制,防止视线越过正上/正下方导致画面翻转
const (
	minPitch float32 = -89.0
	maxPitch float32 = 89.0
)

// Camera 第一人称摄像机
// 维护位置和朝向(偏航角/俯仰角,单位为度),提供FPS风格的移动:
// 前后/左右移动锁定在水平面上,垂直移动沿世界Y轴
//
// 朝向约定: yaw=0, pitch=0 时朝向 -Z 轴,yaw 增大向右转
type Camera struct {
	position mgl32.Vec3
	yaw      float32 // 偏航角(度),保持在 [0, 360)
	pitch    float32 // 俯仰角(度),钳制在 [minPitch, maxPitch]
}

// NewCamera 创建摄像机
// pitch 超出范围时会被钳制
func NewCamera(position mgl32.Vec3, yaw, pitch float32) *Camera {
	return &Camera{
		position: position,
		yaw:      wrapYaw(yaw),
		pitch:    clampPitch(pitch),
	}
}

// Position 返回摄像机位置(射击射线的起点)
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// Yaw 返回偏航角(度)
func (c *Camera) Yaw() float32 {
	return c.yaw
}

// Pitch 返回俯仰角(度)
func (c *Camera) Pitch() float32 {
	return c.pitch
}

// Rotate 按增量旋转摄像机
// 增量应已乘过鼠标灵敏度。俯仰角始终钳制,偏航角换算回 [0, 360)
func (c *Camera) Rotate(yawDelta, pitchDelta float32) {
	c.yaw = wrapYaw(c.yaw + yawDelta)
	c.pitch = clampPitch(c.pitch + pitchDelta)
}

// SetRotation 直接设置朝向(度),pitch 会被钳制
func (c *Camera) SetRotation(yaw, pitch float32) {
	c.yaw = wrapYaw(yaw)
	c.pitch = clampPitch(pitch)
}

// SetPosition 直接设置位置
func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.position = position
}

// Forward 返回归一化的视线方向向量
// 公式: (sin yaw·cos pitch, sin pitch, -cos yaw·cos pitch)
func (c *Camera) Forward() mgl32.Vec3 {
	yawRad := float64(mgl32.DegToRad(c.yaw))
	pitchRad := float64(mgl32.DegToRad(c.pitch))

	forward := mgl32.Vec3{
		float32(math.Sin(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(-math.Cos(yawRad) * math.Cos(pitchRad)),
	}
	// 三角函数结果在数值上已近似单位长度,归一化消除浮点漂移
	return forward.Normalize()
}

// Right 返回水平面上的右方向向量
// 只依赖偏航角,始终与世界Y轴垂直,用于左右平移
func (c *Camera) Right() mgl32.Vec3 {
	yawRad := float64(mgl32.DegToRad(c.yaw))
	return mgl32.Vec3{
		float32(math.Cos(yawRad)),
		0,
		float32(math.Sin(yawRad)),
	}
}

// Up 返回世界上方向 (0, 1, 0)
func (c *Camera) Up() mgl32.Vec3 {
	return mgl32.Vec3{0, 1, 0}
}

// MoveForward 沿视线的水平投影方向移动(忽略俯仰角)
// distance 为正向前,为负向后
func (c *Camera) MoveForward(distance float32) {
	yawRad := float64(mgl32.DegToRad(c.yaw))
	c.position = c.position.Add(mgl32.Vec3{
		float32(math.Sin(yawRad)) * distance,
		0,
		float32(-math.Cos(yawRad)) * distance,
	})
}

// MoveRight 沿水平右方向移动
// distance 为正向右,为负向左
func (c *Camera) MoveRight(distance float32) {
	c.position = c.position.Add(c.Right().Mul(distance))
}

// MoveUp 沿世界Y轴移动
// distance 为正向上,为负向下
func (c *Camera) MoveUp(distance float32) {
	c.position = c.position.Add(mgl32.Vec3{0, distance, 0})
}

// ViewMatrix 返回视图矩阵
// 俯仰角的钳制保证视线不会与世界上方向共线,LookAt 基底始终有效
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	eye := c.position
	target := eye.Add(c.Forward())
	return mgl32.LookAtV(eye, target, c.Up())
}

// clampPitch 将俯仰角钳制到合法范围
func clampPitch(pitch float32) float32 {
	if pitch < minPitch {
		return minPitch
	}
	if pitch > maxPitch {
		return maxPitch
	}
	return pitch
}

// wrapYaw 将偏航角换算到 [0, 360)
func wrapYaw(yaw float32) float32 {
	yaw = float32(math.Mod(float64(yaw), 360))
	if yaw < 0 {
		yaw += 360
	}
	return yaw
}
