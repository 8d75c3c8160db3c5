package service

import (
	"slices"
	"sync"

	"github.com/forgo/gather/internal/model"
)

// ViewMode is the top-level display mode of the discovery page
type ViewMode string

const (
	ModeMap  ViewMode = "map"
	ModeList ViewMode = "list"
)

// ParseViewMode validates a mode name
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ModeMap, ModeList:
		return ViewMode(s), nil
	}
	return "", ErrInvalidViewMode
}

// Viewport classifies the display width
type Viewport string

const (
	ViewportMobile  Viewport = "mobile"
	ViewportDesktop Viewport = "desktop"
)

// DefaultMobileMaxWidth is the widest viewport still treated as mobile
const DefaultMobileMaxWidth = 767

// ClassifyViewport maps a width to a viewport class
func ClassifyViewport(width, mobileMaxWidth int) Viewport {
	if width <= mobileMaxWidth {
		return ViewportMobile
	}
	return ViewportDesktop
}

// PanelState is the derived page layout
type PanelState string

const (
	PanelMapOnly    PanelState = "map-only"
	PanelListOnly   PanelState = "list-only"
	PanelSplit      PanelState = "map+detail-split"
	PanelDetailOnly PanelState = "detail-only"
)

// Layout reports which panels are visible
type Layout struct {
	State             PanelState
	MapVisible        bool
	ListVisible       bool
	DetailVisible     bool
	Split             bool
	RightPanelVisible bool
}

// ViewControllerConfig holds the initial viewport
type ViewControllerConfig struct {
	Width          int
	MobileMaxWidth int
}

// ViewController owns the displayed collection, the view mode and the
// selection of one discovery page.
type ViewController struct {
	mu             sync.RWMutex
	mobileMaxWidth int
	width          int
	mode           ViewMode
	selected       model.ID
	hasSelection   bool
	entities       []model.Entity
}

// NewViewController creates a controller. Mobile viewports start in list
// mode, desktop viewports in map mode.
func NewViewController(cfg ViewControllerConfig) *ViewController {
	maxWidth := cfg.MobileMaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMobileMaxWidth
	}
	v := &ViewController{mobileMaxWidth: maxWidth, width: cfg.Width, mode: ModeMap}
	if v.viewport() == ViewportMobile {
		v.mode = ModeList
	}
	return v
}

func (v *ViewController) viewport() Viewport {
	return ClassifyViewport(v.width, v.mobileMaxWidth)
}

// SetCollection replaces the displayed collection. A selection that is no
// longer displayed is cleared.
func (v *ViewController) SetCollection(entities []model.Entity) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entities = slices.Clone(entities)
	if v.hasSelection && v.indexOf(v.selected) < 0 {
		v.selected, v.hasSelection = "", false
	}
}

func (v *ViewController) indexOf(id model.ID) int {
	return slices.IndexFunc(v.entities, func(e model.Entity) bool { return e.ID == id })
}

// Entities returns the displayed collection
func (v *ViewController) Entities() []model.Entity {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.entities)
}

// Select marks a displayed entity as selected
func (v *ViewController) Select(id model.ID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.indexOf(id) < 0 {
		return ErrEntityNotDisplayed
	}
	v.selected, v.hasSelection = id, true
	return nil
}

// ClearSelection returns to the mode that was active before selecting
func (v *ViewController) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected, v.hasSelection = "", false
}

// SwitchToMap clears the selection and shows the map
func (v *ViewController) SwitchToMap() {
	v.switchTo(ModeMap)
}

// SwitchToList clears the selection and shows the list
func (v *ViewController) SwitchToList() {
	v.switchTo(ModeList)
}

// SwitchTo switches to the given mode
func (v *ViewController) SwitchTo(mode ViewMode) error {
	if _, err := ParseViewMode(string(mode)); err != nil {
		return err
	}
	v.switchTo(mode)
	return nil
}

func (v *ViewController) switchTo(mode ViewMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected, v.hasSelection = "", false
	v.mode = mode
}

// Resize records a new viewport width. The selection is kept.
func (v *ViewController) Resize(width int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = width
}

// Mode returns the active mode
func (v *ViewController) Mode() ViewMode {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mode
}

// Viewport returns the current viewport class
func (v *ViewController) Viewport() Viewport {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.viewport()
}

// Selected returns the selected entity, if any
func (v *ViewController) Selected() (model.Entity, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if !v.hasSelection {
		return model.Entity{}, false
	}
	i := v.indexOf(v.selected)
	if i < 0 {
		return model.Entity{}, false
	}
	return v.entities[i], true
}

// Layout derives panel visibility from mode, viewport and selection
func (v *ViewController) Layout() Layout {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return deriveLayout(v.mode, v.viewport(), v.hasSelection)
}

func deriveLayout(mode ViewMode, vp Viewport, selected bool) Layout {
	switch {
	case selected && vp == ViewportDesktop && mode == ModeMap:
		return Layout{State: PanelSplit, MapVisible: true, DetailVisible: true, Split: true, RightPanelVisible: true}
	case selected:
		return Layout{State: PanelDetailOnly, DetailVisible: true, RightPanelVisible: true}
	case mode == ModeList:
		return Layout{State: PanelListOnly, ListVisible: true, RightPanelVisible: true}
	default:
		return Layout{State: PanelMapOnly, MapVisible: true}
	}
}
