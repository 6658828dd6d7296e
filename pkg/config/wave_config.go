package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// WaveConfig 波次调度配置
//
// 控制波次状态机的计时、每波兵力构成、刷怪节奏、出生点位置以及波次提示文案。
// 文件中缺失的字段保留 DefaultWaveConfig 中的默认值。
//
// 配置文件位置: data/wave_config.yaml
type WaveConfig struct {
	Timing      TimingConfig      `yaml:"timing"`
	Composition CompositionConfig `yaml:"composition"`
	Cadence     CadenceConfig     `yaml:"cadence"`
	Placement   PlacementConfig   `yaml:"placement"`

	// Subtexts 波次提示文案分档，按 MaxWave 升序排列
	// 最后一档 MaxWave 为 0，表示没有上限
	Subtexts []SubtextTier `yaml:"subtexts"`
}

// TimingConfig 状态机计时（秒）
type TimingConfig struct {
	// AnnounceDuration 波次预告时长
	AnnounceDuration float64 `yaml:"announceDuration"`

	// CompletePause 波次结束后进入空闲前的停顿
	CompletePause float64 `yaml:"completePause"`
}

// CompositionConfig 每波兵力构成
//
//	drones   = min(DroneBase + wave*DronePerWave, DroneCap)
//	soldiers = wave >= SoldierStartWave ? min(floor((wave-SoldierStartWave+1)*SoldierPerWave), SoldierCap) : 0
type CompositionConfig struct {
	DroneBase    int `yaml:"droneBase"`
	DronePerWave int `yaml:"dronePerWave"`
	DroneCap     int `yaml:"droneCap"`

	SoldierStartWave int     `yaml:"soldierStartWave"`
	SoldierPerWave   float64 `yaml:"soldierPerWave"`
	SoldierCap       int     `yaml:"soldierCap"`
}

// CadenceConfig 刷怪间隔（秒）
//
//	delay = max(Floor, Base - wave*Step)
type CadenceConfig struct {
	Base  float64 `yaml:"base"`
	Step  float64 `yaml:"step"`
	Floor float64 `yaml:"floor"`
}

// PlacementConfig 出生点：以竞技场中心为圆心、Radius 为半径的圆周上，高度固定
type PlacementConfig struct {
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
}

// SubtextTier 波次提示文案的一档
type SubtextTier struct {
	MaxWave int    `yaml:"maxWave"`
	Text    string `yaml:"text"`
}

// 默认值
const (
	DefaultAnnounceDuration = 2.5
	DefaultCompletePause    = 2.0

	DefaultDroneBase        = 3
	DefaultDronePerWave     = 2
	DefaultDroneCap         = 20
	DefaultSoldierStartWave = 3
	DefaultSoldierPerWave   = 1.5
	DefaultSoldierCap       = 10

	DefaultCadenceBase  = 0.5
	DefaultCadenceStep  = 0.03
	DefaultCadenceFloor = 0.15

	DefaultSpawnRadius = 20.0
	DefaultSpawnHeight = 1.2
)

// DefaultWaveConfig 返回默认波次配置
func DefaultWaveConfig() *WaveConfig {
	return &WaveConfig{
		Timing: TimingConfig{
			AnnounceDuration: DefaultAnnounceDuration,
			CompletePause:    DefaultCompletePause,
		},
		Composition: CompositionConfig{
			DroneBase:        DefaultDroneBase,
			DronePerWave:     DefaultDronePerWave,
			DroneCap:         DefaultDroneCap,
			SoldierStartWave: DefaultSoldierStartWave,
			SoldierPerWave:   DefaultSoldierPerWave,
			SoldierCap:       DefaultSoldierCap,
		},
		Cadence: CadenceConfig{
			Base:  DefaultCadenceBase,
			Step:  DefaultCadenceStep,
			Floor: DefaultCadenceFloor,
		},
		Placement: PlacementConfig{
			Radius: DefaultSpawnRadius,
			Height: DefaultSpawnHeight,
		},
		Subtexts: []SubtextTier{
			{MaxWave: 2, Text: "Drones incoming"},
			{MaxWave: 5, Text: "Soldiers have arrived"},
			{MaxWave: 10, Text: "The invasion intensifies"},
			{MaxWave: 0, Text: "Maximum threat level"},
		},
	}
}

// LoadWaveConfig 从 YAML 文件加载波次配置
func LoadWaveConfig(path string) (*WaveConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wave config file: %w", err)
	}

	cfg, err := ParseWaveConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseWaveConfig 解析 YAML 格式的波次配置（用于嵌入资源）
func ParseWaveConfig(data []byte) (*WaveConfig, error) {
	cfg := DefaultWaveConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse wave config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid wave config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置的有效性
func (c *WaveConfig) Validate() error {
	if c.Timing.AnnounceDuration < 0 || math.IsNaN(c.Timing.AnnounceDuration) {
		return fmt.Errorf("timing.announceDuration must be >= 0, got %v", c.Timing.AnnounceDuration)
	}
	if c.Timing.CompletePause < 0 || math.IsNaN(c.Timing.CompletePause) {
		return fmt.Errorf("timing.completePause must be >= 0, got %v", c.Timing.CompletePause)
	}

	comp := c.Composition
	if comp.DroneBase < 0 || comp.DronePerWave < 0 || comp.DroneCap < 0 {
		return fmt.Errorf("composition drone fields must be >= 0, got base=%d perWave=%d cap=%d",
			comp.DroneBase, comp.DronePerWave, comp.DroneCap)
	}
	if comp.SoldierStartWave < 1 {
		return fmt.Errorf("composition.soldierStartWave must be >= 1, got %d", comp.SoldierStartWave)
	}
	if comp.SoldierPerWave < 0 || math.IsNaN(comp.SoldierPerWave) || comp.SoldierCap < 0 {
		return fmt.Errorf("composition soldier fields must be >= 0, got perWave=%v cap=%d",
			comp.SoldierPerWave, comp.SoldierCap)
	}

	if !(c.Cadence.Floor > 0) {
		return fmt.Errorf("cadence.floor must be > 0, got %v", c.Cadence.Floor)
	}
	if !(c.Cadence.Base >= c.Cadence.Floor) {
		return fmt.Errorf("cadence.base (%v) must be >= cadence.floor (%v)", c.Cadence.Base, c.Cadence.Floor)
	}
	if c.Cadence.Step < 0 || math.IsNaN(c.Cadence.Step) {
		return fmt.Errorf("cadence.step must be >= 0, got %v", c.Cadence.Step)
	}

	if !(c.Placement.Radius > 0) {
		return fmt.Errorf("placement.radius must be > 0, got %v", c.Placement.Radius)
	}
	if math.IsNaN(c.Placement.Height) || math.IsInf(c.Placement.Height, 0) {
		return fmt.Errorf("placement.height must be finite, got %v", c.Placement.Height)
	}

	if len(c.Subtexts) == 0 {
		return fmt.Errorf("subtexts cannot be empty")
	}
	prev := 0
	for i, tier := range c.Subtexts {
		last := i == len(c.Subtexts)-1
		if tier.Text == "" {
			return fmt.Errorf("subtexts[%d].text cannot be empty", i)
		}
		if last {
			if tier.MaxWave != 0 {
				return fmt.Errorf("last subtext tier must have maxWave 0 (unbounded), got %d", tier.MaxWave)
			}
			break
		}
		if tier.MaxWave <= prev {
			return fmt.Errorf("subtexts[%d].maxWave must be ascending and > %d, got %d", i, prev, tier.MaxWave)
		}
		prev = tier.MaxWave
	}

	return nil
}

// Subtext 返回指定波次的提示文案
// 纯函数，对任意波次都有结果（由 Validate 保证最后一档无上限）
func (c *WaveConfig) Subtext(wave int) string {
	for _, tier := range c.Subtexts {
		if tier.MaxWave == 0 || wave <= tier.MaxWave {
			return tier.Text
		}
	}
	return ""
}
