package components

// WavePhase 波次状态机的阶段枚举
//
// 状态流转：
//
//	Idle → Announcing → Spawning → Active → Complete → Idle
//
// Idle 只能由外部的"开始下一波"命令离开，其余阶段均在 Update 中自动推进。
type WavePhase int

const (
	// WavePhaseIdle 空闲，等待下一波命令（也是 Reset 的目标状态）
	WavePhaseIdle WavePhase = iota

	// WavePhaseAnnouncing 波次预告中（倒计时结束后开始刷怪）
	WavePhaseAnnouncing

	// WavePhaseSpawning 按节奏从刷怪队列中逐个释放单位
	WavePhaseSpawning

	// WavePhaseActive 队列已空，等待场上敌人全部被消灭
	WavePhaseActive

	// WavePhaseComplete 波次结束后的停顿
	WavePhaseComplete
)

// String 返回 WavePhase 的字符串表示
func (p WavePhase) String() string {
	switch p {
	case WavePhaseIdle:
		return "Idle"
	case WavePhaseAnnouncing:
		return "Announcing"
	case WavePhaseSpawning:
		return "Spawning"
	case WavePhaseActive:
		return "Active"
	case WavePhaseComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// IsValid 判断是否为已定义的阶段
func (p WavePhase) IsValid() bool {
	return p >= WavePhaseIdle && p <= WavePhaseComplete
}

// AllWavePhases 返回全部阶段（按流转顺序）
func AllWavePhases() []WavePhase {
	return []WavePhase{
		WavePhaseIdle,
		WavePhaseAnnouncing,
		WavePhaseSpawning,
		WavePhaseActive,
		WavePhaseComplete,
	}
}
