package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultWaveConfigIsValid(t *testing.T) {
	cfg := DefaultWaveConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid, got %v", err)
	}
	if cfg.Timing.AnnounceDuration != 2.5 {
		t.Errorf("expected announce duration 2.5, got %v", cfg.Timing.AnnounceDuration)
	}
	if cfg.Timing.CompletePause != 2.0 {
		t.Errorf("expected complete pause 2.0, got %v", cfg.Timing.CompletePause)
	}
}

func TestLoadWaveConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *WaveConfig)
	}{
		{
			name: "full config",
			yamlContent: `
timing:
  announceDuration: 3
  completePause: 1.5
composition:
  droneBase: 4
  dronePerWave: 1
  droneCap: 12
  soldierStartWave: 2
  soldierPerWave: 2
  soldierCap: 6
cadence:
  base: 0.8
  step: 0.05
  floor: 0.2
placement:
  radius: 30
  height: 2
subtexts:
  - maxWave: 3
    text: Warmup
  - maxWave: 0
    text: Endless
`,
			validate: func(t *testing.T, cfg *WaveConfig) {
				if cfg.Timing.AnnounceDuration != 3 {
					t.Errorf("expected announceDuration 3, got %v", cfg.Timing.AnnounceDuration)
				}
				if cfg.Composition.DroneCap != 12 {
					t.Errorf("expected droneCap 12, got %d", cfg.Composition.DroneCap)
				}
				if cfg.Cadence.Floor != 0.2 {
					t.Errorf("expected cadence floor 0.2, got %v", cfg.Cadence.Floor)
				}
				if cfg.Placement.Radius != 30 {
					t.Errorf("expected radius 30, got %v", cfg.Placement.Radius)
				}
				if len(cfg.Subtexts) != 2 {
					t.Fatalf("expected 2 subtext tiers, got %d", len(cfg.Subtexts))
				}
			},
		},
		{
			name: "partial config keeps defaults",
			yamlContent: `
cadence:
  floor: 0.1
`,
			validate: func(t *testing.T, cfg *WaveConfig) {
				if cfg.Cadence.Floor != 0.1 {
					t.Errorf("expected overridden floor 0.1, got %v", cfg.Cadence.Floor)
				}
				if cfg.Cadence.Base != DefaultCadenceBase {
					t.Errorf("expected default base %v, got %v", DefaultCadenceBase, cfg.Cadence.Base)
				}
				if cfg.Composition.DroneCap != DefaultDroneCap {
					t.Errorf("expected default droneCap %d, got %d", DefaultDroneCap, cfg.Composition.DroneCap)
				}
				if len(cfg.Subtexts) != 4 {
					t.Errorf("expected default subtext tiers, got %d", len(cfg.Subtexts))
				}
			},
		},
		{
			name: "negative announce duration",
			yamlContent: `
timing:
  announceDuration: -1
`,
			wantErr:     true,
			errContains: "announceDuration",
		},
		{
			name: "nan announce duration",
			yamlContent: `
timing:
  announceDuration: .nan
`,
			wantErr:     true,
			errContains: "announceDuration",
		},
		{
			name: "nan cadence floor",
			yamlContent: `
cadence:
  floor: .nan
`,
			wantErr:     true,
			errContains: "cadence.floor",
		},
		{
			name: "nan spawn radius",
			yamlContent: `
placement:
  radius: .nan
`,
			wantErr:     true,
			errContains: "placement.radius",
		},
		{
			name: "zero cadence floor",
			yamlContent: `
cadence:
  floor: 0
`,
			wantErr:     true,
			errContains: "cadence.floor",
		},
		{
			name: "base below floor",
			yamlContent: `
cadence:
  base: 0.1
  floor: 0.15
`,
			wantErr:     true,
			errContains: "cadence.base",
		},
		{
			name: "soldier start wave zero",
			yamlContent: `
composition:
  soldierStartWave: 0
`,
			wantErr:     true,
			errContains: "soldierStartWave",
		},
		{
			name: "bounded last subtext tier",
			yamlContent: `
subtexts:
  - maxWave: 2
    text: Early
  - maxWave: 5
    text: Late
`,
			wantErr:     true,
			errContains: "unbounded",
		},
		{
			name: "unsorted subtext tiers",
			yamlContent: `
subtexts:
  - maxWave: 5
    text: A
  - maxWave: 2
    text: B
  - maxWave: 0
    text: C
`,
			wantErr:     true,
			errContains: "ascending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			tmpFile := filepath.Join(tmpDir, "wave_config.yaml")
			if err := os.WriteFile(tmpFile, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to create temp file: %v", err)
			}

			cfg, err := LoadWaveConfig(tmpFile)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadWaveConfig_MissingFile(t *testing.T) {
	_, err := LoadWaveConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseWaveConfig_InvalidYAML(t *testing.T) {
	_, err := ParseWaveConfig([]byte("timing: [unclosed"))
	if err == nil {
		t.Fatal("expected YAML parse error")
	}
}

func TestWaveConfigSubtext(t *testing.T) {
	cfg := DefaultWaveConfig()
	tests := []struct {
		wave int
		want string
	}{
		{0, "Drones incoming"},
		{1, "Drones incoming"},
		{2, "Drones incoming"},
		{3, "Soldiers have arrived"},
		{5, "Soldiers have arrived"},
		{6, "The invasion intensifies"},
		{10, "The invasion intensifies"},
		{11, "Maximum threat level"},
		{500, "Maximum threat level"},
	}

	for _, tt := range tests {
		if got := cfg.Subtext(tt.wave); got != tt.want {
			t.Errorf("Subtext(%d) = %q, want %q", tt.wave, got, tt.want)
		}
	}
}

// 仓库自带的 data/wave_config.yaml 必须与内置默认值一致
func TestShippedWaveConfigMatchesDefaults(t *testing.T) {
	path := filepath.Join("..", "..", "data", "wave_config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Skipf("shipped config not found: %v", err)
	}

	cfg, err := LoadWaveConfig(path)
	if err != nil {
		t.Fatalf("failed to load shipped config: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultWaveConfig()) {
		t.Errorf("shipped config differs from defaults:\n got  %+v\n want %+v", cfg, DefaultWaveConfig())
	}
}
