package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	algos := []string{"formula", "loop"}
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _rangesum_completions rangesum", "--chunk-size", "formula loop all", "--output|-o)", "compgen -f"}},
		{"zsh", []string{"#compdef rangesum", "'(-w --workers)'{-w,--workers}", "algorithms=(formula loop all)", "_files"}},
		{"fish", []string{"complete -c rangesum -s w -l workers", "-l algo", "-xa 'formula loop all'", "-l output -d 'Report file path' -rF"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, algos); err != nil {
				t.Fatalf("GenerateCompletion(%s): %v", tt.shell, err)
			}
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("%s completion missing %q", tt.shell, s)
				}
			}
		})
	}
}

func TestGenerateCompletionUnsupportedShell(t *testing.T) {
	err := GenerateCompletion(&bytes.Buffer{}, "powershell", nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported shell") {
		t.Fatalf("expected unsupported shell error, got %v", err)
	}
}

func TestFlagRegistryCoversEveryFlagOnce(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			if seen[name] {
				t.Errorf("duplicate flag %s", name)
			}
			seen[name] = true
		}
	}
	for _, want := range []string{"-n", "--start", "--end", "--workers", "--algo", "--verify", "--completion"} {
		if !seen[want] {
			t.Errorf("flag %s not registered", want)
		}
	}
}
