package utils

import (
	"errors"
	"testing"

	"github.com/vybium/vybium-stark-fri/internal/vybium-stark-fri/core"
)

// TestDefaultConfig tests the DefaultConfig function
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.BlowupFactor < 2 {
		t.Error("BlowupFactor should be at least 2")
	}
	if config.FRIQueries <= 0 {
		t.Error("FRIQueries should be positive")
	}
	if config.HashFunction != core.HashSHA3 {
		t.Errorf("default hash should be sha3, got %q", config.HashFunction)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("DefaultConfig() should be valid: %v", err)
	}
}

// TestConfigValidate tests the Validate method
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		expectErr bool
	}{
		{"valid default config", DefaultConfig(), false},
		{"blowup not a power of two", DefaultConfig().WithBlowupFactor(6), true},
		{"blowup of one", DefaultConfig().WithBlowupFactor(1), true},
		{"zero queries", DefaultConfig().WithFRIQueries(0), true},
		{"too many queries", DefaultConfig().WithFRIQueries(MaxFRIQueries + 1), true},
		{"zero offset", DefaultConfig().WithCosetOffset(0), true},
		{"offset of one lies in the subgroup", DefaultConfig().WithCosetOffset(1), true},
		{"offset is a root of unity", DefaultConfig().WithCosetOffset(rootOfUnity(8)), true},
		{"offset of three", DefaultConfig().WithCosetOffset(3), false},
		{"unknown hash", DefaultConfig().WithHashFunction("md5"), true},
		{"blake3 hash", DefaultConfig().WithHashFunction(core.HashBlake3), false},
		{"tip5 hash", DefaultConfig().WithHashFunction(core.HashTip5), false},
		{"negative workers", DefaultConfig().WithWorkers(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.expectErr {
				t.Fatalf("Validate() error = %v, expectErr %v", err, tt.expectErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func rootOfUnity(n uint64) uint64 {
	r, err := core.PrimitiveRootOfUnity(n)
	if err != nil {
		panic(err)
	}
	return r.Value()
}

// TestConfigClone tests the Clone method
func TestConfigClone(t *testing.T) {
	original := DefaultConfig().WithFRIQueries(12)
	clone := original.Clone()
	clone.FRIQueries = 99
	clone.HashFunction = core.HashSHA256

	if original.FRIQueries != 12 || original.HashFunction != core.HashSHA3 {
		t.Error("modifying the clone changed the original")
	}
}

func TestConfigHasher(t *testing.T) {
	h, err := DefaultConfig().WithHashFunction(core.HashBlake3).Hasher()
	if err != nil {
		t.Fatal(err)
	}
	if h.Name() != core.HashBlake3 {
		t.Errorf("Hasher() returned %q", h.Name())
	}
}
