// Package ui provides constants for layout calculations and configuration.
package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// ComposerMinHeight is the minimum number of visible textarea lines
	ComposerMinHeight = 3

	// ComposerMaxHeight is the maximum number of visible textarea lines;
	// beyond this the textarea scrolls internally
	ComposerMaxHeight = 8

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// AttachmentRowHeight is the height of the attachment chips row when present
	AttachmentRowHeight = 1

	// HintRowHeight is the height of the composer hint line
	HintRowHeight = 1

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80
)

// Timing constants
const (
	// CopyFeedbackDuration is how long the copied indicator shows before
	// reverting to the idle copy control
	CopyFeedbackDuration = 1200 * time.Millisecond

	// FlashDuration is how long a footer flash message stays visible
	FlashDuration = 3 * time.Second
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)
