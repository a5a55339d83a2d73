package cliconfig

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/bft-labs/spritebench/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TargetFPS != 30 {
		t.Errorf("TargetFPS = %v, want 30", cfg.TargetFPS)
	}
	if cfg.FrameCount != 100 {
		t.Errorf("FrameCount = %v, want 100", cfg.FrameCount)
	}
	if cfg.Iterations != 1000 {
		t.Errorf("Iterations = %v, want 1000", cfg.Iterations)
	}
	if !reflect.DeepEqual(cfg.Steps, []int{1, 5, 25}) {
		t.Errorf("Steps = %v, want [1 5 25]", cfg.Steps)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "zero target fps",
			mutate:  func(c *Config) { c.TargetFPS = 0 },
			wantErr: true,
		},
		{
			name:    "zero frame count",
			mutate:  func(c *Config) { c.FrameCount = 0 },
			wantErr: true,
		},
		{
			name:    "negative step",
			mutate:  func(c *Config) { c.Steps = []int{1, -5} },
			wantErr: true,
		},
		{
			name:   "empty steps use defaults downstream",
			mutate: func(c *Config) { c.Steps = nil },
		},
		{
			name:   "ceiling disabled",
			mutate: func(c *Config) { c.MaxObjectCount = 0 },
		},
		{
			name:    "unknown scheduler",
			mutate:  func(c *Config) { c.Scheduler = "vsync" },
			wantErr: true,
		},
		{
			name: "paced without rate",
			mutate: func(c *Config) {
				c.Scheduler = "paced"
				c.PaceHz = 0
			},
			wantErr: true,
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Format = "xml" },
			wantErr: true,
		},
		{
			name:   "metrics address",
			mutate: func(c *Config) { c.MetricsAddr = ":9090" },
		},
		{
			name:    "bad metrics address",
			mutate:  func(c *Config) { c.MetricsAddr = "nope" },
			wantErr: true,
		},
		{
			name:    "cpu threshold above one",
			mutate:  func(c *Config) { c.CPUThreshold = 1.5 },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Timeout = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigSetter(t *testing.T) {
	s := newConfigSetter(map[string]bool{"changed": true})

	t.Run("string", func(t *testing.T) {
		dst := "orig"
		s.setString("changed", "new", &dst)
		if dst != "orig" {
			t.Errorf("changed flag overwritten: %q", dst)
		}
		s.setString("other", "", &dst)
		if dst != "orig" {
			t.Errorf("empty value applied: %q", dst)
		}
		s.setString("other", "new", &dst)
		if dst != "new" {
			t.Errorf("dst = %q, want new", dst)
		}
	})

	t.Run("ints from string", func(t *testing.T) {
		var dst []int
		if err := s.setIntsFromString("steps", "2, 10 ,50", &dst); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(dst, []int{2, 10, 50}) {
			t.Errorf("dst = %v", dst)
		}
		if err := s.setIntsFromString("steps", "2,x", &dst); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("strings copy", func(t *testing.T) {
		src := []string{"a", "b"}
		var dst []string
		s.setStrings("list", src, &dst)
		src[0] = "z"
		if dst[0] != "a" {
			t.Errorf("dst aliases src: %v", dst)
		}
	})

	t.Run("non-positive int ignored", func(t *testing.T) {
		dst := 7
		if err := s.setIntFromString("n", "0", &dst); err != nil {
			t.Fatal(err)
		}
		if dst != 7 {
			t.Errorf("dst = %d, want 7", dst)
		}
	})
}
