// Package viz renders the portfolio page in the terminal.
//
// The page is a Bubble Tea program:
//
//   - [Model]: header with the typed hero line, the scrolling sections and
//     a footer with the section menu, reveal progress and a clock
//   - Sections start as placeholders and reveal the first time they scroll
//     into view
//   - Theme selection with 5 built-in color schemes, remembered between runs
//
// # Key Bindings
//
//	j/k, ↑/↓   - Scroll one line
//	Space/PgDn - Page down
//	PgUp       - Page up
//	g/G        - Jump to top or bottom
//	1-9        - Jump to a section
//	t          - Cycle color themes
//	q          - Quit
package viz
