// Package sim 组装一局竞技场会话：实体管理、敌方单位、生命周期与波次调度
//
// 桌面宿主（pkg/app）与无界面模拟器（cmd/wave_sim）共用同一套组装逻辑，
// 两者的区别只在于谁来驱动 Step(dt)。
package sim

import (
	"fmt"
	"log"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/game"
	"github.com/gonewx/arena/pkg/systems"
	"github.com/gonewx/arena/pkg/types"
)

// Options 会话选项
type Options struct {
	// Seed 随机种子，0 表示使用随机种子
	Seed int64

	// HostileLifetime 模拟敌人的存活时间（秒），到期视为被击杀
	HostileLifetime float64

	// AutoStart 调度器空闲时自动开始下一波
	AutoStart bool

	// Verbose 启用调度器的逐帧日志
	Verbose bool
}

// Session 一局竞技场会话
// 非并发安全，由单一游戏循环驱动
type Session struct {
	entityManager *ecs.EntityManager
	roster        *systems.HostileRoster
	lifetime      *systems.LifetimeSystem
	scheduler     *systems.WaveScheduler
	rng           *game.RandomSource

	autoStart bool
	elapsed   float64
}

// NewSession 创建会话
// cfg 为 nil 时使用默认波次配置；配置未通过校验时返回错误
func NewSession(cfg *config.WaveConfig, opts Options) (*Session, error) {
	if !(opts.HostileLifetime > 0) {
		return nil, fmt.Errorf("hostile lifetime must be > 0, got %v", opts.HostileLifetime)
	}
	if cfg == nil {
		cfg = config.DefaultWaveConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid wave config: %w", err)
	}

	rng, err := game.NewRandomSourceFromEntropy(opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create random source: %w", err)
	}

	em := ecs.NewEntityManager()
	roster := systems.NewHostileRoster(em, opts.HostileLifetime)
	scheduler := systems.NewWaveScheduler(roster, rng, cfg)
	scheduler.SetVerbose(opts.Verbose)
	roster.SetWaveSource(scheduler.Wave)

	s := &Session{
		entityManager: em,
		roster:        roster,
		scheduler:     scheduler,
		rng:           rng,
		autoStart:     opts.AutoStart,
	}
	s.lifetime = systems.NewLifetimeSystem(em, func(ecs.EntityID) {
		s.scheduler.OnEnemyKilled()
	})

	log.Printf("[Session] Created (seed=%d, lifetime=%.2fs, autoStart=%v)", rng.Seed(), opts.HostileLifetime, opts.AutoStart)
	return s, nil
}

// Step 推进一个逻辑帧
//
// 顺序：自动开波 → 调度器 → 生命周期（到期单位计入击杀）
func (s *Session) Step(dt float64) {
	if s.autoStart && s.scheduler.IsIdle() {
		s.scheduler.StartNextWave()
	}

	s.scheduler.Update(dt)
	s.lifetime.Update(dt)
	s.elapsed += dt
}

// StartNextWave 手动开始下一波，返回波次编号（非空闲时返回当前波次且不做任何事）
func (s *Session) StartNextWave() int {
	return s.scheduler.StartNextWave()
}

// KillOldest 击杀最早生成的存活敌人，返回是否有敌人被击杀
func (s *Session) KillOldest() bool {
	ids := s.roster.IDs()
	if len(ids) == 0 {
		return false
	}
	if !s.roster.Kill(ids[0]) {
		return false
	}
	s.scheduler.OnEnemyKilled()
	return true
}

// Reset 重开：调度器回到空闲第 0 波，清空场上单位
func (s *Session) Reset() {
	s.scheduler.Reset()
	s.roster.Clear()
	s.elapsed = 0
}

// SetAutoStart 切换自动开波
func (s *Session) SetAutoStart(enabled bool) {
	s.autoStart = enabled
}

// AutoStart 返回是否自动开波
func (s *Session) AutoStart() bool {
	return s.autoStart
}

// SetPhaseListener 设置阶段切换回调
func (s *Session) SetPhaseListener(fn systems.PhaseChangeFunc) {
	s.scheduler.SetPhaseListener(fn)
}

// Scheduler 返回波次调度器（只读访问其状态）
func (s *Session) Scheduler() *systems.WaveScheduler {
	return s.scheduler
}

// Roster 返回敌方单位管理器
func (s *Session) Roster() *systems.HostileRoster {
	return s.roster
}

// Snapshot 返回调度器状态快照
func (s *Session) Snapshot() systems.WaveSnapshot {
	return s.scheduler.Snapshot()
}

// HostileView 场上敌人的只读视图（供绘制使用）
type HostileView struct {
	ID   ecs.EntityID
	Kind types.UnitKind
	Wave int
	Pos  components.Vec3
}

// Hostiles 返回场上存活敌人的视图，按创建顺序
func (s *Session) Hostiles() []HostileView {
	ids := s.roster.IDs()
	views := make([]HostileView, 0, len(ids))
	for _, id := range ids {
		hostile, ok := ecs.GetComponent[*components.HostileComponent](s.entityManager, id)
		if !ok {
			continue
		}
		view := HostileView{ID: id, Kind: hostile.Kind, Wave: hostile.Wave}
		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
			view.Pos = pos.Pos
		}
		views = append(views, view)
	}
	return views
}

// LiveHostiles 场上存活的敌人数
func (s *Session) LiveHostiles() int {
	return s.roster.Count()
}

// Seed 返回会话使用的随机种子
func (s *Session) Seed() int64 {
	return s.rng.Seed()
}

// Elapsed 返回自创建或上次 Reset 以来的逻辑时间（秒）
func (s *Session) Elapsed() float64 {
	return s.elapsed
}
