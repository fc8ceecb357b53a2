package page

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/termfolio/internal/reveal"
	"github.com/san-kum/termfolio/internal/viewport"
)

const minWrapWidth = 20

// Block is a laid-out section. It is the element handle the reveal observer
// and the viewport tracker see.
type Block struct {
	Section Section
	rect    viewport.Rect
	title   string
	body    []string
	classes []string
	styles  map[string]string
	attrs   map[string]string
}

func newBlock(s Section) *Block {
	b := &Block{
		Section: s,
		title:   s.Title,
		styles:  make(map[string]string),
		attrs:   make(map[string]string),
	}
	if s.Animation != "" {
		b.attrs[reveal.AnimationAttr] = s.Animation
	}
	if s.Image != "" {
		b.attrs[reveal.LazySrcAttr] = s.Image
	}
	return b
}

func (b *Block) AddClass(name string) {
	if !slices.Contains(b.classes, name) {
		b.classes = append(b.classes, name)
	}
}

func (b *Block) HasClass(name string) bool { return slices.Contains(b.classes, name) }

func (b *Block) SetStyle(prop, value string) { b.styles[prop] = value }

func (b *Block) Style(prop string) string { return b.styles[prop] }

func (b *Block) Attr(name string) (string, bool) {
	v, ok := b.attrs[name]
	return v, ok
}

func (b *Block) SetAttr(name, value string) { b.attrs[name] = value }

func (b *Block) RemoveAttr(name string) { delete(b.attrs, name) }

func (b *Block) Box() viewport.Rect { return b.rect }

func (b *Block) Revealed() bool { return b.HasClass(reveal.LoadedClass) }

func (b *Block) Title() string { return b.title }

// Body returns the wrapped body lines, not including the title line.
func (b *Block) Body() []string { return b.body }

func (b *Block) lineCount() int {
	n := 1 + len(b.body)
	if b.Section.Image != "" {
		n++
	}
	return n
}

// Image returns the loaded image path, empty until the lazy source has been
// swapped in.
func (b *Block) Image() string {
	src, _ := b.Attr("src")
	return src
}

// Layout wraps every section to width and stacks the blocks with one blank
// line between them, starting at document line 0.
func Layout(c *Content, width int) []*Block {
	width = max(width, minWrapWidth)
	blocks := make([]*Block, 0, len(c.Sections))
	top := 0
	for _, s := range c.Sections {
		b := newBlock(s)
		b.body = wrap(s.Body, width)
		for _, item := range s.Items {
			lines := wrap(item, width-2)
			for i, l := range lines {
				if i == 0 {
					lines[i] = "• " + l
				} else {
					lines[i] = "  " + l
				}
			}
			b.body = append(b.body, lines...)
		}
		b.rect = viewport.Rect{Top: top, Height: b.lineCount()}
		top = b.rect.Bottom() + 1
		blocks = append(blocks, b)
	}
	return blocks
}

// Relayout rewraps blocks for a new width, keeping their reveal state.
func Relayout(blocks []*Block, width int) {
	sections := make([]Section, len(blocks))
	for i, b := range blocks {
		sections[i] = b.Section
	}
	fresh := Layout(&Content{Sections: sections}, width)
	for i, b := range blocks {
		b.body = fresh[i].body
		b.rect = fresh[i].rect
	}
}

// DocHeight is the number of lines the blocks occupy.
func DocHeight(blocks []*Block) int {
	if len(blocks) == 0 {
		return 0
	}
	return blocks[len(blocks)-1].rect.Bottom()
}

// Find returns the block with the given section id.
func Find(blocks []*Block, id string) *Block {
	for _, b := range blocks {
		if b.Section.ID == id {
			return b
		}
	}
	return nil
}

func wrap(s string, width int) []string {
	if s == "" {
		return nil
	}
	rendered := lipgloss.NewStyle().Width(width).Render(s)
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}
