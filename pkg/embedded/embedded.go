// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存该文件系统，让其他包按 "data/..." 路径读取。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/gonewx/arena/pkg/config"
)

// WaveConfigPath 默认波次配置在嵌入文件系统中的路径
const WaveConfigPath = "data/wave_config.yaml"

var (
	dataFS      fs.FS
	initialized bool
)

var errNotInitialized = fmt.Errorf("embedded package not initialized, call Init() first")

// Init 设置数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// normalize 统一路径分隔符并校验 "data/" 前缀
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// ReadFile 读取嵌入文件内容，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在于嵌入文件系统中
func Exists(path string) bool {
	if !initialized {
		return false
	}
	path, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, path)
	return err == nil
}

// LoadWaveConfig 加载嵌入的默认波次配置
func LoadWaveConfig() (*config.WaveConfig, error) {
	data, err := ReadFile(WaveConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded wave config: %w", err)
	}
	cfg, err := config.ParseWaveConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", WaveConfigPath, err)
	}
	return cfg, nil
}

// ResolveWaveConfig 选择波次配置来源
//
//	path 非空      → 读取该文件
//	内嵌配置存在   → 读取 data/wave_config.yaml
//	否则           → config.DefaultWaveConfig()
func ResolveWaveConfig(path string) (*config.WaveConfig, error) {
	if path != "" {
		return config.LoadWaveConfig(path)
	}
	if Exists(WaveConfigPath) {
		return LoadWaveConfig()
	}
	log.Printf("[Embedded] %s not embedded, using built-in defaults", WaveConfigPath)
	return config.DefaultWaveConfig(), nil
}
