package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/types"
)

// Spawner 在指定位置生成一个敌方单位（不关心返回值）
type Spawner interface {
	Spawn(kind types.UnitKind, pos components.Vec3)
}

// LiveCounter 报告当前场上存活的敌方单位数量
type LiveCounter interface {
	Count() int
}

// EnemyManager 波次调度器依赖的实体管理协作者
type EnemyManager interface {
	Spawner
	LiveCounter
}

// PhaseChangeFunc 阶段切换回调，在 StartNextWave / Update / Reset 内同步调用
type PhaseChangeFunc func(from, to components.WavePhase, wave int)

// WaveSnapshot 调度器可观察状态的值拷贝（供 HUD 与模拟器使用）
type WaveSnapshot struct {
	Wave       int
	Phase      components.WavePhase
	StateTimer float64
	SpawnTimer float64
	SpawnDelay float64
	Queued     int
	Spawned    int
	Total      int
	Killed     int
	Subtext    string
}

// WaveScheduler 波次调度器
//
// 职责：
//   - 维护波次状态机 Idle → Announcing → Spawning → Active → Complete → Idle
//   - 波次开始时生成刷怪队列（PlanWave），Spawning 阶段按节奏（SpawnDelay）逐个释放
//   - Active 阶段读取场上存活数量，归零即判定本波结束
//   - 统计本波总数与击杀数
//
// 架构说明：
//   - 由宿主游戏循环每帧调用 Update(dt)，不创建 goroutine 或定时器
//   - 通过 EnemyManager 接口与实体管理解耦，测试中可替换为脚本化的替身
//   - 随机数来源由构造函数注入，固定种子即可复现刷怪序列
//   - 非并发安全；每个游戏会话持有独立实例
//   - 计时与队列状态保存在调度器自身字段中，而不是挂在 ECS 计时实体上，
//     因此调度器可以脱离 EntityManager 单独驱动（EnemyManager 只是一个接口）
type WaveScheduler struct {
	enemies EnemyManager
	rng     Rand
	config  *config.WaveConfig

	wave       int
	phase      components.WavePhase
	stateTimer float64

	// spawnQueue 本波剩余待释放的单位（FIFO）
	spawnQueue []types.UnitKind
	spawnTimer float64
	spawnDelay float64

	spawnedThisWave int
	totalThisWave   int
	killedThisWave  int

	onPhaseChange PhaseChangeFunc

	// verbose 是否输出逐个刷怪的详细日志
	verbose bool
}

// NewWaveScheduler 创建波次调度器，初始状态为 Idle / 第 0 波
//
// 参数：
//   - enemies: 实体管理协作者（生成敌人、报告存活数量）
//   - rng: 随机数来源（洗牌与出生点）
//   - cfg: 波次配置，为 nil 时使用 config.DefaultWaveConfig()；未通过 Validate 时 panic
func NewWaveScheduler(enemies EnemyManager, rng Rand, cfg *config.WaveConfig) *WaveScheduler {
	if enemies == nil {
		panic("NewWaveScheduler: enemies must not be nil")
	}
	if rng == nil {
		panic("NewWaveScheduler: rng must not be nil")
	}
	if cfg == nil {
		cfg = config.DefaultWaveConfig()
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("NewWaveScheduler: invalid wave config: %v", err))
	}

	s := &WaveScheduler{
		enemies: enemies,
		rng:     rng,
		config:  cfg,
	}
	s.resetFields()
	return s
}

// SetVerbose 设置是否输出详细日志
func (s *WaveScheduler) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// SetPhaseListener 设置阶段切换回调（nil 表示取消）
func (s *WaveScheduler) SetPhaseListener(fn PhaseChangeFunc) {
	s.onPhaseChange = fn
}

// Config 返回调度器使用的波次配置
func (s *WaveScheduler) Config() *config.WaveConfig {
	return s.config
}

// StartNextWave 开始下一波，返回新的波次编号
//
// 仅在 Idle 状态下生效；其他状态调用为空操作，返回当前波次编号不变。
func (s *WaveScheduler) StartNextWave() int {
	if s.phase != components.WavePhaseIdle {
		if s.verbose {
			log.Printf("[WaveScheduler] StartNextWave ignored in phase %s (wave %d)", s.phase, s.wave)
		}
		return s.wave
	}

	s.wave++
	s.killedThisWave = 0
	s.stateTimer = s.config.Timing.AnnounceDuration

	s.spawnQueue = PlanWave(s.wave, s.rng, s.config.Composition)
	s.totalThisWave = len(s.spawnQueue)
	s.spawnedThisWave = 0
	s.spawnTimer = 0

	log.Printf("[WaveScheduler] Wave %d queued: %d drones, %d soldiers",
		s.wave,
		DroneCount(s.wave, s.config.Composition),
		SoldierCount(s.wave, s.config.Composition))

	s.setPhase(components.WavePhaseAnnouncing)
	return s.wave
}

// Update 推进状态机
//
// 每次调用最多发生一次计时型阶段切换；Spawning 阶段内可一次释放多个单位
// （dt 远大于刷怪间隔时），释放完后立即检查队列是否为空。
//
// dt 必须是非负秒数，负数或 NaN 视为编程错误并 panic。
func (s *WaveScheduler) Update(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		panic(fmt.Sprintf("[WaveScheduler] Update: dt must be >= 0, got %v", dt))
	}

	switch s.phase {
	case components.WavePhaseIdle:
		// 等待外部命令

	case components.WavePhaseAnnouncing:
		s.stateTimer -= dt
		if s.stateTimer <= 0 {
			s.stateTimer = 0
			s.setPhase(components.WavePhaseSpawning)
		}

	case components.WavePhaseSpawning:
		s.updateSpawning(dt)

	case components.WavePhaseActive:
		if s.enemies.Count() == 0 {
			s.stateTimer = s.config.Timing.CompletePause
			s.setPhase(components.WavePhaseComplete)
		}

	case components.WavePhaseComplete:
		s.stateTimer -= dt
		if s.stateTimer <= 0 {
			s.stateTimer = 0
			s.setPhase(components.WavePhaseIdle)
		}

	default:
		panic(fmt.Sprintf("[WaveScheduler] invalid phase %d", int(s.phase)))
	}
}

// updateSpawning 消耗刷怪计时器并释放队首单位
// 计时器按间隔累加（而不是直接重置），一帧内超出的时间会继续用于后续释放
func (s *WaveScheduler) updateSpawning(dt float64) {
	s.spawnTimer -= dt

	for s.spawnTimer <= 0 && len(s.spawnQueue) > 0 {
		kind := s.spawnQueue[0]
		s.spawnQueue = s.spawnQueue[1:]
		s.spawnEnemy(kind)

		s.spawnDelay = SpawnDelay(s.wave, s.config.Cadence)
		s.spawnTimer += s.spawnDelay
	}

	if len(s.spawnQueue) == 0 {
		s.spawnQueue = nil
		s.spawnTimer = 0
		s.setPhase(components.WavePhaseActive)
	}
}

// spawnEnemy 在圆周出生点生成一个单位
func (s *WaveScheduler) spawnEnemy(kind types.UnitKind) {
	pos := SpawnPosition(s.rng, s.config.Placement)
	s.enemies.Spawn(kind, pos)
	s.spawnedThisWave++

	if s.verbose {
		log.Printf("[WaveScheduler] Spawned %s at (%.2f, %.2f, %.2f), %d/%d",
			kind, pos.X, pos.Y, pos.Z, s.spawnedThisWave, s.totalThisWave)
	}
}

// OnEnemyKilled 记录一次击杀（仅统计，不影响状态切换）
func (s *WaveScheduler) OnEnemyKilled() {
	s.killedThisWave++
}

// Reset 恢复到会话开始时的状态（Idle / 第 0 波），任意状态下可调用，幂等
// 场上已存在的敌人由实体管理方自行清理
func (s *WaveScheduler) Reset() {
	prev := s.phase
	s.resetFields()
	log.Printf("[WaveScheduler] Reset from phase %s", prev)
	if prev != components.WavePhaseIdle && s.onPhaseChange != nil {
		s.onPhaseChange(prev, components.WavePhaseIdle, s.wave)
	}
}

func (s *WaveScheduler) resetFields() {
	s.wave = 0
	s.phase = components.WavePhaseIdle
	s.stateTimer = 0
	s.spawnQueue = nil
	s.spawnTimer = 0
	s.spawnDelay = s.config.Cadence.Base
	s.spawnedThisWave = 0
	s.totalThisWave = 0
	s.killedThisWave = 0
}

func (s *WaveScheduler) setPhase(to components.WavePhase) {
	from := s.phase
	if from == to {
		return
	}
	s.phase = to
	log.Printf("[WaveScheduler] Wave %d: %s -> %s", s.wave, from, to)
	if s.onPhaseChange != nil {
		s.onPhaseChange(from, to, s.wave)
	}
}

// Wave 当前波次编号（0 表示尚未开始任何波次）
func (s *WaveScheduler) Wave() int { return s.wave }

// Phase 当前阶段
func (s *WaveScheduler) Phase() components.WavePhase { return s.phase }

// IsWaveActive 是否处于刷怪或战斗阶段
func (s *WaveScheduler) IsWaveActive() bool {
	return s.phase == components.WavePhaseSpawning || s.phase == components.WavePhaseActive
}

// IsAnnouncing 是否处于波次预告阶段
func (s *WaveScheduler) IsAnnouncing() bool { return s.phase == components.WavePhaseAnnouncing }

// IsComplete 是否处于波次结束停顿阶段
func (s *WaveScheduler) IsComplete() bool { return s.phase == components.WavePhaseComplete }

// IsIdle 是否空闲
func (s *WaveScheduler) IsIdle() bool { return s.phase == components.WavePhaseIdle }

// StateTimer 计时型阶段（Announcing / Complete）的剩余秒数
func (s *WaveScheduler) StateTimer() float64 { return s.stateTimer }

// SpawnTimer 距离下一次刷怪的剩余秒数
func (s *WaveScheduler) SpawnTimer() float64 { return s.spawnTimer }

// SpawnDelay 最近一次使用的刷怪间隔
func (s *WaveScheduler) SpawnDelay() float64 { return s.spawnDelay }

// QueueLen 本波剩余待释放的单位数量
func (s *WaveScheduler) QueueLen() int { return len(s.spawnQueue) }

// QueuedKinds 返回剩余队列的拷贝
func (s *WaveScheduler) QueuedKinds() []types.UnitKind {
	out := make([]types.UnitKind, len(s.spawnQueue))
	copy(out, s.spawnQueue)
	return out
}

// SpawnedThisWave 本波已释放的单位数量
func (s *WaveScheduler) SpawnedThisWave() int { return s.spawnedThisWave }

// TotalEnemiesThisWave 本波敌人总数
func (s *WaveScheduler) TotalEnemiesThisWave() int { return s.totalThisWave }

// EnemiesKilledThisWave 本波击杀数
func (s *WaveScheduler) EnemiesKilledThisWave() int { return s.killedThisWave }

// Subtext 当前波次的提示文案
func (s *WaveScheduler) Subtext() string { return s.config.Subtext(s.wave) }

// Snapshot 返回当前可观察状态的拷贝
func (s *WaveScheduler) Snapshot() WaveSnapshot {
	return WaveSnapshot{
		Wave:       s.wave,
		Phase:      s.phase,
		StateTimer: s.stateTimer,
		SpawnTimer: s.spawnTimer,
		SpawnDelay: s.spawnDelay,
		Queued:     len(s.spawnQueue),
		Spawned:    s.spawnedThisWave,
		Total:      s.totalThisWave,
		Killed:     s.killedThisWave,
		Subtext:    s.Subtext(),
	}
}

var defaultWaveConfig = config.DefaultWaveConfig()

// WaveSubtext 按默认分档返回指定波次的提示文案（≤2、≤5、≤10、>10）
func WaveSubtext(wave int) string {
	return defaultWaveConfig.Subtext(wave)
}
