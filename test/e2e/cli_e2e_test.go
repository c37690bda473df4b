package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the binary and checks output and exit codes.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	tmpDir := t.TempDir()
	binName := "rangesum"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs from the package directory, so build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/rangesum")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build rangesum: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		env      []string
		wantOut  []string // substrings, case-insensitive
		wantCode int
	}{
		{
			name:    "Demo Range Quiet",
			args:    []string{"-n", "30", "-w", "3", "-q"},
			wantOut: []string{"435"},
		},
		{
			name: "Verbose Partials",
			args: []string{"-n", "30", "-w", "3", "-v"},
			wantOut: []string{
				"Received chunk #0 [0, 10): 45",
				"Received chunk #1 [10, 20): 145",
				"Received chunk #2 [20, 30): 245",
			},
		},
		{
			name:    "All Strategies Comparison",
			args:    []string{"-n", "100000", "--algo", "all"},
			wantOut: []string{"Comparison Summary", "4,999,950,000"},
		},
		{
			name:    "Fixed Chunk Size",
			args:    []string{"--start", "5", "--end", "25", "--chunk-size", "7", "-q", "--verify"},
			wantOut: []string{"290", "Verification OK"},
		},
		{
			name:    "Environment Override",
			args:    []string{"-q"},
			env:     []string{"RANGESUM_N=10", "RANGESUM_WORKERS=2"},
			wantOut: []string{"45"},
		},
		{
			name:    "Help",
			args:    []string{"--help"},
			wantOut: []string{"usage"},
		},
		{
			name:    "Version Flag",
			args:    []string{"--version"},
			wantOut: []string{"rangesum"},
		},
		{
			name:     "Overflow",
			args:     []string{"--start", "9223372036854775808", "-n", "2", "-w", "1", "-q"},
			wantOut:  []string{"overflow"},
			wantCode: 5,
		},
		{
			name:     "Very Short Timeout",
			args:     []string{"-n", "4000000000", "--timeout", "1ns", "-q"},
			wantCode: 2,
		},
		{
			name:     "Invalid Workers",
			args:     []string{"-n", "10", "-w", "0"},
			wantOut:  []string{"--workers"},
			wantCode: 4,
		},
		{
			name:     "Unknown Flag",
			args:     []string{"--bogus"},
			wantCode: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(append(os.Environ(), "NO_COLOR=1"), tt.env...)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			if err != nil {
				var exitErr *exec.ExitError
				if !errors.As(err, &exitErr) {
					t.Fatalf("running rangesum: %v", err)
				}
				code = exitErr.ExitCode()
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput:\n%s", code, tt.wantCode, outStr)
			}

			for _, want := range tt.wantOut {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(want)) {
					t.Errorf("Output missing %q\nGot:\n%s", want, outStr)
				}
			}
		})
	}
}
