// Package app 提供竞技场宿主窗口的核心包装器
//
// 该包把会话组装、输入处理与调试 HUD 从 main 包中提取出来。
// main.go 负责解析配置并调用 NewApp()，然后交给 ebiten.RunGame 驱动。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/game"
	"github.com/gonewx/arena/pkg/sim"
	"github.com/gonewx/arena/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 640
	ScreenHeight = 480
)

// 竞技场俯视图的绘制参数
const (
	arenaCenterX  = ScreenWidth / 2
	arenaCenterY  = ScreenHeight/2 + 40
	pixelsPerUnit = 8.0
)

// bannerDuration 阶段切换横幅的显示时长（秒）
const bannerDuration = 2.0

// Config 定义应用启动配置
type Config struct {
	Host     config.HostConfig
	Wave     *config.WaveConfig
	Settings *game.SettingsManager
}

// App 竞技场宿主，实现 ebiten.Game 接口
type App struct {
	session  *sim.Session
	settings *game.SettingsManager
	tick     float64

	banner      string
	bannerTimer float64

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化宿主应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Host.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	session, err := sim.NewSession(cfg.Wave, sim.Options{
		Seed:            cfg.Host.Seed,
		HostileLifetime: cfg.Host.HostileLifetime,
		AutoStart:       cfg.Host.AutoStart,
		Verbose:         cfg.Host.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("会话创建失败: %w", err)
	}

	settings := cfg.Settings
	if settings == nil {
		settings = game.NewSettingsManager(nil)
	}

	a := &App{
		session:  session,
		settings: settings,
		tick:     cfg.Host.TickSeconds(),
	}
	session.SetPhaseListener(a.onPhaseChange)

	log.Printf("[App] Arena ready (seed=%d, tps=%d)", session.Seed(), cfg.Host.TPS)
	return a, nil
}

// onPhaseChange 在波次预告与结束时显示横幅
func (a *App) onPhaseChange(from, to components.WavePhase, wave int) {
	switch to {
	case components.WavePhaseAnnouncing:
		a.showBanner(fmt.Sprintf("WAVE %d\n%s", wave, a.session.Scheduler().Subtext()))
	case components.WavePhaseComplete:
		a.showBanner(fmt.Sprintf("WAVE %d CLEARED", wave))
	}
}

func (a *App) showBanner(text string) {
	a.banner = text
	a.bannerTimer = bannerDuration
}

// Update 更新游戏逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	a.handleWindow()
	a.handleInput()

	dt := a.tick * a.settings.GetSettings().TimeScale
	a.session.Step(dt)

	if a.bannerTimer > 0 {
		a.bannerTimer -= dt
		if a.bannerTimer <= 0 {
			a.banner = ""
		}
	}
	return nil
}

// handleWindow 处理全屏切换
func (a *App) handleWindow() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}

	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(fullscreen)
	a.saveSettings()
}

// handleInput 处理波次控制按键
//
//	Space 开始下一波   R 重开   K 击杀最早的敌人
//	A 切换自动开波     H 切换 HUD   +/- 调整时间倍率
func (a *App) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.session.StartNextWave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.session.Reset()
		a.banner = ""
		a.bannerTimer = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		a.session.KillOldest()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		a.session.SetAutoStart(!a.session.AutoStart())
		log.Printf("[App] AutoStart = %v", a.session.AutoStart())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.settings.SetShowHUD(!a.settings.GetSettings().ShowHUD)
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		a.settings.SetTimeScale(a.settings.GetSettings().TimeScale * 2)
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		a.settings.SetTimeScale(a.settings.GetSettings().TimeScale / 2)
		a.saveSettings()
	}
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制竞技场俯视图与调试 HUD
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 28, B: 36, A: 255})
	a.drawArena(screen)

	if a.banner != "" {
		ebitenutil.DebugPrintAt(screen, a.banner, arenaCenterX-60, 24)
	}
	if a.settings.GetSettings().ShowHUD {
		ebitenutil.DebugPrint(screen, a.hudText())
	}
}

// drawArena 绘制出生圆周与场上敌人（俯视，X/Z 平面）
func (a *App) drawArena(screen *ebiten.Image) {
	radius := float32(a.session.Scheduler().Config().Placement.Radius * pixelsPerUnit)
	vector.StrokeCircle(screen, arenaCenterX, arenaCenterY, radius, 1, color.RGBA{R: 80, G: 90, B: 110, A: 255}, true)
	vector.DrawFilledCircle(screen, arenaCenterX, arenaCenterY, 4, color.RGBA{R: 120, G: 200, B: 255, A: 255}, true)

	for _, h := range a.session.Hostiles() {
		x := float32(arenaCenterX + h.Pos.X*pixelsPerUnit)
		y := float32(arenaCenterY + h.Pos.Z*pixelsPerUnit)
		clr := color.RGBA{R: 255, G: 180, B: 60, A: 255}
		size := float32(3)
		if h.Kind == types.UnitSoldier {
			clr = color.RGBA{R: 230, G: 70, B: 70, A: 255}
			size = 5
		}
		vector.DrawFilledCircle(screen, x, y, size, clr, true)
	}
}

// hudText 调试 HUD 文本
func (a *App) hudText() string {
	snap := a.session.Snapshot()
	settings := a.settings.GetSettings()

	var b strings.Builder
	fmt.Fprintf(&b, "Wave %d  [%s]  %s\n", snap.Wave, snap.Phase, snap.Subtext)
	fmt.Fprintf(&b, "State timer: %.2f  Spawn timer: %.2f  Delay: %.2f\n", snap.StateTimer, snap.SpawnTimer, snap.SpawnDelay)
	fmt.Fprintf(&b, "Queued: %d  Spawned: %d/%d  Killed: %d  Alive: %d\n",
		snap.Queued, snap.Spawned, snap.Total, snap.Killed, a.session.LiveHostiles())
	alive := a.session.Roster().CountByKind()
	for _, kind := range types.AllUnitKinds() {
		fmt.Fprintf(&b, "%s: %d  ", kind, alive[kind])
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Auto: %v  Speed: x%.2f  Seed: %d  TPS: %.0f\n",
		a.session.AutoStart(), settings.TimeScale, a.session.Seed(), ebiten.ActualTPS())
	b.WriteString("Space next  R reset  K kill  A auto  H hud  +/- speed  F11 fullscreen")
	return b.String()
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
