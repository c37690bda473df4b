package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/rangesum/internal/cli/mocks"
	"github.com/agbru/rangesum/internal/progress"
	"github.com/agbru/rangesum/internal/ui"
)

// withMockSpinner swaps newSpinner for the duration of a test.
func withMockSpinner(t *testing.T, s Spinner) {
	t.Helper()
	orig := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return s }
	t.Cleanup(func() { newSpinner = orig })
}

func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSpinner := mocks.NewMockSpinner(ctrl)

	var (
		mu       sync.Mutex
		suffixes []string
	)
	mockSpinner.EXPECT().Start().Times(1)
	mockSpinner.EXPECT().Stop().Times(1)
	mockSpinner.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) {
		mu.Lock()
		suffixes = append(suffixes, s)
		mu.Unlock()
	}).MinTimes(1)
	withMockSpinner(t, mockSpinner)

	ch := make(chan progress.ProgressUpdate, 4)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, ch, 2, &bytes.Buffer{})

	ch <- progress.ProgressUpdate{StrategyIndex: 0, Value: 0.5}
	ch <- progress.ProgressUpdate{StrategyIndex: 1, Value: 1.0}
	close(ch)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(suffixes) == 0 {
		t.Fatal("spinner suffix never updated")
	}
	if !strings.Contains(suffixes[0], "Summing with 2 strategies") {
		t.Errorf("unexpected label in %q", suffixes[0])
	}
	last := suffixes[len(suffixes)-1]
	if !strings.Contains(last, "75.00%") {
		t.Errorf("last suffix %q should show the 75%% average", last)
	}
}

func TestDisplayProgressSingleStrategyLabel(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSpinner := mocks.NewMockSpinner(ctrl)
	mockSpinner.EXPECT().Start()
	mockSpinner.EXPECT().Stop()
	first := true
	mockSpinner.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) {
		if first && strings.Contains(s, "strategies") {
			t.Errorf("single strategy label should not mention strategies: %q", s)
		}
		first = false
	}).AnyTimes()
	withMockSpinner(t, mockSpinner)

	ch := make(chan progress.ProgressUpdate)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, ch, 1, &bytes.Buffer{})
	close(ch)
	wg.Wait()
}

func TestDisplayProgressNoStrategies(t *testing.T) {
	ch := make(chan progress.ProgressUpdate, 1)
	ch <- progress.ProgressUpdate{Value: 0.3}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	done := make(chan struct{})
	go func() {
		DisplayProgress(&wg, ch, 0, &bytes.Buffer{})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("DisplayProgress did not return for zero strategies")
	}
	wg.Wait()
}

func TestRealSpinnerUpdateSuffix(t *testing.T) {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(&bytes.Buffer{}))
	rs := &realSpinner{s: s}
	rs.UpdateSuffix(" working")
	if s.Suffix != " working" {
		t.Errorf("Suffix = %q", s.Suffix)
	}
}

func TestCLIColorProvider(t *testing.T) {
	orig := ui.GetCurrentTheme()
	t.Cleanup(func() { ui.SetCurrentTheme(orig) })

	ui.SetTheme("dark")
	var p CLIColorProvider
	if p.Red() == "" || p.Reset() == "" || p.Yellow() == "" {
		t.Error("dark theme should provide escape codes")
	}
	ui.SetTheme("none")
	if p.Red() != "" || p.Reset() != "" {
		t.Error("no-color theme should provide empty codes")
	}
}
