package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkStorm      BookmarkType = "storm"      // disturbed dots well above the recent average
	BookmarkNewPeak    BookmarkType = "new_peak"   // largest diameter seen so far
	BookmarkCalm       BookmarkType = "calm"       // every effect has expired after activity
	BookmarkSaturation BookmarkType = "saturation" // most of the field is disturbed
)

// saturationFraction is the disturbed share that counts as saturated.
const saturationFraction = 0.5

// Bookmark marks a notable stats window.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Frame       int64        `csv:"frame"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"frame", b.Frame,
		"description", b.Description,
	)
}

// BookmarkDetector watches successive stats windows for notable moments.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []FieldStats
	historySize int
	historyIdx  int
	historyFull bool

	peakDiameter float64
	wasActive    bool
	saturated    bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]FieldStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest window against the ones before it.
// points is the grid size, used for the saturation share.
func (bd *BookmarkDetector) Check(stats FieldStats, points int) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkStorm(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkNewPeak(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkCalm(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSaturation(stats, points); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats FieldStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []FieldStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkStorm(stats FieldStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}
	var sum int
	for _, h := range history {
		sum += h.Disturbed
	}
	avg := float64(sum) / float64(len(history))
	if avg <= 0 || float64(stats.Disturbed) <= 2*avg {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStorm,
		Frame:       stats.Frame,
		Description: fmt.Sprintf("%d disturbed dots vs %.0f average", stats.Disturbed, avg),
	}
}

func (bd *BookmarkDetector) checkNewPeak(stats FieldStats) *Bookmark {
	prev := bd.peakDiameter
	if stats.DiameterMax <= prev {
		return nil
	}
	bd.peakDiameter = stats.DiameterMax
	// the first window only sets the baseline
	if len(bd.getHistory()) == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkNewPeak,
		Frame:       stats.Frame,
		Description: fmt.Sprintf("max diameter %.1f (previous %.1f)", stats.DiameterMax, prev),
	}
}

func (bd *BookmarkDetector) checkCalm(stats FieldStats) *Bookmark {
	active := stats.Rings+stats.Spirals > 0
	wasActive := bd.wasActive
	bd.wasActive = active
	if active || !wasActive {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkCalm,
		Frame:       stats.Frame,
		Description: "all effects expired",
	}
}

func (bd *BookmarkDetector) checkSaturation(stats FieldStats, points int) *Bookmark {
	if points <= 0 {
		return nil
	}
	share := float64(stats.Disturbed) / float64(points)
	saturated := share >= saturationFraction
	entered := saturated && !bd.saturated
	bd.saturated = saturated
	if !entered {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSaturation,
		Frame:       stats.Frame,
		Description: fmt.Sprintf("%.0f%% of dots disturbed", share*100),
	}
}
