package ui

import "github.com/zhubert/tutor/internal/logger"

// Layout is the split of the terminal into header, sidebar, main panel and
// footer. It is recomputed from scratch on every resize.
type Layout struct {
	Width  int
	Height int

	ContentHeight int
	SidebarWidth  int
	MainWidth     int
}

// NewLayout lays out a width x height terminal. Sizes below the minimum are
// clamped so no panel ends up with a negative size.
func NewLayout(width, height int) Layout {
	width = max(width, MinTerminalWidth)
	height = max(height, MinTerminalHeight)

	sidebar := min(width/SidebarWidthRatio, MaxSidebarWidth)
	l := Layout{
		Width:         width,
		Height:        height,
		ContentHeight: height - HeaderHeight - FooterHeight,
		SidebarWidth:  sidebar,
		MainWidth:     width - sidebar,
	}

	logger.WithComponent("ui").Debug("layout computed",
		"width", l.Width,
		"height", l.Height,
		"content", l.ContentHeight,
		"sidebar", l.SidebarWidth,
		"main", l.MainWidth,
	)
	return l
}

// InnerWidth is the room left inside a bordered panel of the given width.
func InnerWidth(panelWidth int) int { return panelWidth - BorderSize }

// InnerHeight is the room left inside a bordered panel of the given height.
func InnerHeight(panelHeight int) int { return panelHeight - BorderSize }
