package rangesum

import (
	"context"
	"testing"
)

type constSummer struct{ value uint64 }

func (constSummer) Name() string { return "Constant" }

func (s constSummer) SumChunk(context.Context, Chunk, ProgressFunc) (uint64, error) {
	return s.value, nil
}

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	keys := f.List()
	if len(keys) != 2 || keys[0] != StrategyFormula || keys[1] != StrategyLoop {
		t.Fatalf("List() = %v, want [formula loop]", keys)
	}
	if s, err := f.Get(StrategyLoop); err != nil || s.Name() != "Iterative Loop" {
		t.Errorf("Get(loop) = %v, %v", s, err)
	}
	if _, err := f.Get("fast"); err == nil {
		t.Error("Get(fast) should fail")
	}
}

func TestDefaultFactory_Register(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		key     string
		summer  Summer
		wantErr bool
	}{
		{"new key", "const", constSummer{1}, false},
		{"duplicate key", StrategyLoop, constSummer{1}, true},
		{"reserved key", StrategyAll, constSummer{1}, true},
		{"empty key", "", constSummer{1}, true},
		{"nil summer", "nil", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := NewDefaultFactory()
			err := f.Register(tt.key, tt.summer)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if _, ok := f.GetAll()[tt.key]; !ok {
					t.Errorf("GetAll() is missing %q", tt.key)
				}
			}
		})
	}
}

func TestDefaultFactory_MustGetPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustGet should panic for an unknown key")
		}
	}()
	NewDefaultFactory().MustGet("unknown")
}

func TestGlobalFactory(t *testing.T) {
	t.Parallel()
	if GlobalFactory() != GlobalFactory() {
		t.Error("GlobalFactory should return a singleton")
	}
}
