package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// HostSettings 宿主窗口的显示偏好
// 注意：只保存显示相关偏好，不保存任何波次进度
type HostSettings struct {
	// Fullscreen 启动时是否全屏
	Fullscreen bool `yaml:"fullscreen"`

	// TimeScale 逻辑时间倍率（传给 WaveScheduler.Update 的 dt 会乘以该值）
	TimeScale float64 `yaml:"timeScale"`

	// ShowHUD 是否显示调试 HUD
	ShowHUD bool `yaml:"showHud"`
}

// 时间倍率范围
const (
	MinTimeScale = 0.25
	MaxTimeScale = 4.0
)

// DefaultHostSettings 返回默认设置
func DefaultHostSettings() *HostSettings {
	return &HostSettings{
		Fullscreen: false,
		TimeScale:  1.0,
		ShowHUD:    true,
	}
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "host"
)

// OpenSettingsStore 打开 gdata 跨平台存储
// 打开失败时返回 nil（调用方进入仅内存的降级模式）
func OpenSettingsStore(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return nil
	}
	return manager
}

// SettingsManager 设置管理器
// 负责宿主设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	settings     *HostSettings
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，记录日志后使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultHostSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或尚未保存过时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultHostSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultHostSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultHostSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultHostSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.TimeScale = clampTimeScale(loaded.TimeScale)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时不做任何事（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *HostSettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式（需调用 Save 持久化）
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetTimeScale 设置时间倍率，限制在 [MinTimeScale, MaxTimeScale]（需调用 Save 持久化）
func (sm *SettingsManager) SetTimeScale(scale float64) {
	sm.settings.TimeScale = clampTimeScale(scale)
}

// SetShowHUD 设置是否显示 HUD（需调用 Save 持久化）
func (sm *SettingsManager) SetShowHUD(show bool) {
	sm.settings.ShowHUD = show
}

func clampTimeScale(scale float64) float64 {
	if scale < MinTimeScale {
		return MinTimeScale
	}
	if scale > MaxTimeScale {
		return MaxTimeScale
	}
	return scale
}
