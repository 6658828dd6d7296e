package main

import (
	"flag"
	"log"
	"os"

	"github.com/gonewx/arena/pkg/app"
	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/embedded"
	"github.com/gonewx/arena/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

const appName = "wave_arena"

func main() {
	embedded.Init(dataFS)

	hostCfg, err := config.ParseHostConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid host config: %v", err)
	}

	waveCfg, err := embedded.ResolveWaveConfig(hostCfg.WaveConfigPath)
	if err != nil {
		log.Fatalf("Failed to load wave config: %v", err)
	}

	settings := game.NewSettingsManager(game.OpenSettingsStore(appName))

	arena, err := app.NewApp(app.Config{
		Host:     hostCfg,
		Wave:     waveCfg,
		Settings: settings,
	})
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Wave Arena")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(hostCfg.TPS)
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	if err := ebiten.RunGame(arena); err != nil {
		log.Fatal(err)
	}
}
