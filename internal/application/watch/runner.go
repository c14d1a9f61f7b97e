package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/penwyp/go-weight-trend/internal/analyzer"
	"github.com/penwyp/go-weight-trend/internal/presentation/display"
	"github.com/penwyp/go-weight-trend/internal/presentation/interaction"
	"github.com/penwyp/go-weight-trend/internal/util"
)

const defaultInterval = 2 * time.Second

// Config holds watch mode settings.
type Config struct {
	// Interval is the minimum delay between refreshes after a file change.
	// Bursts of writes inside one window collapse into a single refresh.
	Interval time.Duration
	// RenderPlot re-renders the PNG plot on every refresh.
	RenderPlot bool
}

// Runner drives watch mode: an initial analysis, then re-analysis whenever
// the log file changes or the user forces a refresh.
type Runner struct {
	analyzer *analyzer.Analyzer
	config   *Config
	view     *display.LiveView
}

// NewRunner creates a watch runner around the given analyzer.
func NewRunner(a *analyzer.Analyzer, config *Config) *Runner {
	if config.Interval <= 0 {
		config.Interval = defaultInterval
	}
	return &Runner{
		analyzer: a,
		config:   config,
		view:     display.NewLiveView(),
	}
}

// Run blocks until the context is cancelled or the user quits.
func (r *Runner) Run(ctx context.Context) error {
	source, err := r.analyzer.ResolveSource()
	if err != nil {
		return fmt.Errorf("nothing to watch: %w", err)
	}

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	defer keyboard.Close()

	watcher, err := NewFileWatcher(source)
	if err != nil {
		return err
	}
	defer watcher.Close()

	r.view.EnterAlternateScreen()
	defer r.view.ExitAlternateScreen()

	r.refresh()

	// The first event arms the timer; later events in the same window ride
	// along with the armed refresh.
	debounce := time.NewTimer(r.config.Interval)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down watch mode...")
			return nil

		case event := <-watcher.Events():
			util.LogDebug(fmt.Sprintf("Log file changed: %s %s", event.Operation, event.Path))
			if !pending {
				pending = true
				debounce.Reset(r.config.Interval)
			}

		case <-debounce.C:
			if pending {
				pending = false
				r.refresh()
			}

		case keyEvent := <-keyboard.Events():
			if r.handleKeyboard(keyEvent) {
				return nil
			}
		}
	}
}

// refresh re-runs the analysis and repaints the dashboard.
func (r *Runner) refresh() {
	analysis := r.analyzer.Analyze()
	if analysis.SourceError != nil {
		util.LogWarn(fmt.Sprintf("Refresh failed: %v", analysis.SourceError))
	}

	if r.config.RenderPlot && r.analyzer.ShouldPlot(analysis) {
		if err := r.analyzer.RenderPlot(analysis); err != nil {
			util.LogWarn(fmt.Sprintf("Plot refresh failed: %v", err))
		}
	}

	r.view.Render(analysis.Report, util.GetTimeProvider().Now())
}

// handleKeyboard reacts to a key press and reports whether to exit.
func (r *Runner) handleKeyboard(event interaction.KeyEvent) bool {
	switch event.Type {
	case interaction.KeyChar:
		switch event.Key {
		case 'q', 'Q', 3: // 'q', 'Q', or Ctrl+C
			return true
		case 'r', 'R':
			r.refresh()
		}
	case interaction.KeyEscape:
		return true
	}
	return false
}
