package config

import (
	"flag"
	"fmt"
	"math"

	"github.com/caarlos0/env/v11"
)

// HostConfig 宿主程序（桌面窗口 / 无界面模拟器）的启动配置
// 先从环境变量读取，再由命令行参数覆盖
type HostConfig struct {
	// Seed 随机种子，0 表示使用随机种子
	Seed int64 `env:"ARENA_SEED"`

	// WaveConfigPath 波次配置文件路径，为空则使用内嵌的 data/wave_config.yaml
	WaveConfigPath string `env:"ARENA_WAVE_CONFIG"`

	// Verbose 启用详细日志输出
	Verbose bool `env:"ARENA_VERBOSE"`

	// AutoStart 上一波结束回到空闲后自动开始下一波
	AutoStart bool `env:"ARENA_AUTO_START" envDefault:"true"`

	// HostileLifetime 模拟敌人的存活时间（秒），到期视为被击杀
	HostileLifetime float64 `env:"ARENA_HOSTILE_LIFETIME" envDefault:"4"`

	// TPS 逻辑帧率
	TPS int `env:"ARENA_TPS" envDefault:"60"`
}

// ParseHostEnv 从环境变量加载宿主配置
func ParseHostEnv() (HostConfig, error) {
	var cfg HostConfig
	if err := env.Parse(&cfg); err != nil {
		return HostConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ParseHostConfig 读取环境变量后用命令行参数覆盖
func ParseHostConfig(fs *flag.FlagSet, args []string) (HostConfig, error) {
	cfg, err := ParseHostEnv()
	if err != nil {
		return HostConfig{}, err
	}

	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	fs.StringVar(&cfg.WaveConfigPath, "config", cfg.WaveConfigPath, "path to wave config YAML")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.BoolVar(&cfg.AutoStart, "auto", cfg.AutoStart, "start the next wave automatically when idle")
	fs.Float64Var(&cfg.HostileLifetime, "lifetime", cfg.HostileLifetime, "simulated hostile lifetime in seconds")
	fs.IntVar(&cfg.TPS, "tps", cfg.TPS, "logic ticks per second")
	if err := fs.Parse(args); err != nil {
		return HostConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		return HostConfig{}, err
	}
	return cfg, nil
}

// Validate 验证宿主配置
func (c HostConfig) Validate() error {
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be > 0, got %d", c.TPS)
	}
	if !(c.HostileLifetime > 0) || math.IsInf(c.HostileLifetime, 1) {
		return fmt.Errorf("hostile lifetime must be a finite number > 0, got %v", c.HostileLifetime)
	}
	return nil
}

// TickSeconds 返回一个逻辑帧的时长（秒）
func (c HostConfig) TickSeconds() float64 {
	return 1.0 / float64(c.TPS)
}
