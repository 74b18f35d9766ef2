package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/fenilsonani/appsweep/internal/progress"
	"github.com/fenilsonani/appsweep/internal/ui/styles"
	uiutils "github.com/fenilsonani/appsweep/internal/ui/utils"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// LiveProgress renders discovery and removal status on a reserved block
// of terminal lines, fed by a ProgressReporter subscription. It is the
// non-interactive counterpart to the bubbletea interface: the scan and
// remove commands use it to show activity without taking over the screen.
type LiveProgress struct {
	mu          sync.Mutex
	reporter    *progress.ProgressReporter
	updates     <-chan interface{}
	done        chan struct{}
	status      string
	detail      string
	completed   int
	total       int
	lastRender  time.Time
	termWidth   int
	statusLines int
	enabled     bool
}

// NewLiveProgress creates a live display bound to the given reporter.
// The display starts disabled when stdout is not a terminal.
func NewLiveProgress(reporter *progress.ProgressReporter) *LiveProgress {
	fd := int(os.Stdout.Fd())
	width := 80
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = w
	}

	return &LiveProgress{
		reporter:    reporter,
		termWidth:   width,
		enabled:     term.IsTerminal(fd),
		statusLines: 3,
	}
}

// SetEnabled overrides terminal detection. Call it before Start.
func (lp *LiveProgress) SetEnabled(enabled bool) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.enabled = enabled
}

// Start reserves the status lines and begins consuming updates.
func (lp *LiveProgress) Start() {
	if !lp.enabled {
		return
	}

	lp.updates = lp.reporter.Subscribe()
	lp.done = make(chan struct{})

	// Reserve space for the status block
	fmt.Print(strings.Repeat("\n", lp.statusLines))
	fmt.Printf("\033[%dA", lp.statusLines)

	go lp.loop()
}

// Finish stops consuming updates and clears the status block.
func (lp *LiveProgress) Finish() {
	if !lp.enabled || lp.done == nil {
		return
	}

	lp.reporter.Unsubscribe(lp.updates)
	<-lp.done

	lp.mu.Lock()
	defer lp.mu.Unlock()

	// Move past the reserved block and clear the trailing line
	fmt.Printf("\033[%dB", lp.statusLines)
	fmt.Print("\033[K\n")
}

func (lp *LiveProgress) loop() {
	defer close(lp.done)
	for update := range lp.updates {
		lp.apply(update)
	}
}

// apply folds one reporter update into the display state.
func (lp *LiveProgress) apply(update interface{}) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	switch p := update.(type) {
	case *progress.DiscoveryProgress:
		lp.status = progress.FormatDiscovery(p)
		lp.detail = p.App
	case *progress.RemovalProgress:
		lp.status = progress.FormatRemoval(p)
		lp.detail = p.CurrentPath
		lp.completed = p.Completed
		lp.total = p.Total
	default:
		return
	}

	// Throttle renders to avoid flickering (max 10 per second)
	now := time.Now()
	if now.Sub(lp.lastRender) < 100*time.Millisecond {
		return
	}
	lp.lastRender = now

	lp.render()
}

// render draws the status block in place.
func (lp *LiveProgress) render() {
	width := lp.termWidth - 2

	// Save cursor position
	fmt.Print("\033[s")

	fmt.Printf("\033[K%s\n", uiutils.TruncateString(lp.status, width))

	spin := spinnerFrames[int(time.Now().UnixMilli()/100)%len(spinnerFrames)]
	fmt.Printf("\033[K%s %s\n", spin, uiutils.TruncatePath(lp.detail, width-4))

	// Third line: a real bar once removal totals are known, a plain
	// rule while scanning
	if lp.total > 0 {
		fmt.Printf("\033[K%s", styles.ProgressBar(lp.completed, lp.total, width))
	} else {
		fmt.Printf("\033[K%s", strings.Repeat("─", width))
	}

	// Restore cursor position
	fmt.Print("\033[u")
}
