// wave_sim 无界面波次模拟器
//
// 以固定步长驱动竞技场会话，打印每次阶段切换与每波汇总，
// 用于调节 data/wave_config.yaml 中的节奏参数。
//
// 用法:
//
//	go run ./cmd/wave_sim --waves 5 --dt 0.0167 --seed 42 --lifetime 3
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/sim"
	"github.com/gonewx/arena/pkg/systems"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "wave_sim:", err)
		os.Exit(1)
	}
}

// waveStats 单波统计
type waveStats struct {
	startedAt   float64
	spawningAt  float64
	activeAt    float64
	completedAt float64
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("wave_sim", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var waves int
	var dt float64
	var maxTime float64
	flags.IntVar(&waves, "waves", 5, "number of waves to simulate")
	flags.Float64Var(&dt, "dt", 0, "fixed step in seconds (0 = 1/tps)")
	flags.Float64Var(&maxTime, "max-time", 3600, "abort after this many simulated seconds")

	hostCfg, err := config.ParseHostConfig(flags, args)
	if err != nil {
		return err
	}
	if waves < 1 {
		return fmt.Errorf("waves must be >= 1, got %d", waves)
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("dt must be a finite number >= 0, got %v", dt)
	}
	if !(maxTime > 0) {
		return fmt.Errorf("max-time must be > 0, got %v", maxTime)
	}
	if dt == 0 {
		dt = hostCfg.TickSeconds()
	}

	if hostCfg.Verbose {
		log.SetOutput(stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	waveCfg := config.DefaultWaveConfig()
	if hostCfg.WaveConfigPath != "" {
		waveCfg, err = config.LoadWaveConfig(hostCfg.WaveConfigPath)
		if err != nil {
			return err
		}
	}

	session, err := sim.NewSession(waveCfg, sim.Options{
		Seed:            hostCfg.Seed,
		HostileLifetime: hostCfg.HostileLifetime,
		AutoStart:       true,
		Verbose:         hostCfg.Verbose,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "seed=%d dt=%.4f lifetime=%.2f waves=%d\n", session.Seed(), dt, hostCfg.HostileLifetime, waves)

	stats := &waveStats{}
	completed := 0
	session.SetPhaseListener(func(from, to components.WavePhase, wave int) {
		now := session.Elapsed()
		fmt.Fprintf(stdout, "[%8.2fs] wave %d: %s -> %s\n", now, wave, from, to)

		switch to {
		case components.WavePhaseAnnouncing:
			*stats = waveStats{startedAt: now}
		case components.WavePhaseSpawning:
			stats.spawningAt = now
		case components.WavePhaseActive:
			stats.activeAt = now
		case components.WavePhaseComplete:
			stats.completedAt = now
			printSummary(stdout, session.Snapshot(), waveCfg, stats)
			completed++
		}
	})

	for completed < waves {
		if session.Elapsed() > maxTime {
			return fmt.Errorf("aborted after %.0fs simulated time with %d/%d waves complete", maxTime, completed, waves)
		}
		session.Step(dt)
	}
	return nil
}

// printSummary 打印一波的汇总
func printSummary(w io.Writer, snap systems.WaveSnapshot, cfg *config.WaveConfig, stats *waveStats) {
	fmt.Fprintf(w, "  wave %d summary: %d spawned (%d drones, %d soldiers), %d killed, spawn %.2fs, clear %.2fs, total %.2fs, delay %.2fs, %q\n",
		snap.Wave,
		snap.Spawned,
		systems.DroneCount(snap.Wave, cfg.Composition),
		systems.SoldierCount(snap.Wave, cfg.Composition),
		snap.Killed,
		stats.activeAt-stats.spawningAt,
		stats.completedAt-stats.activeAt,
		stats.completedAt-stats.startedAt,
		systems.SpawnDelay(snap.Wave, cfg.Cadence),
		snap.Subtext,
	)
}
