// Package menu implements a small right-click popup menu drawn into an image.
// GLFW has no native menus, so the viewer rasterizes the popup with a
// TrueType face and overlays it as a texture.
package menu

import (
	"errors"
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Item is a single menu row. An item either runs Action when clicked or opens Sub when hovered.
type Item struct {
	Label  string
	Action func()
	Sub    *Menu
}

// Menu is a list of items.
type Menu struct {
	Items []Item
}

// Style configures popup colors and padding in pixels.
type Style struct {
	Background color.RGBA
	Hover      color.RGBA
	Text       color.RGBA
	HoverText  color.RGBA
	Border     color.RGBA
	PadX, PadY int
}

// DefaultStyle resembles a light desktop context menu.
func DefaultStyle() Style {
	return Style{
		Background: color.RGBA{R: 240, G: 240, B: 240, A: 255},
		Hover:      color.RGBA{R: 51, G: 102, B: 204, A: 255},
		Text:       color.RGBA{R: 20, G: 20, B: 20, A: 255},
		HoverText:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Border:     color.RGBA{R: 120, G: 120, B: 120, A: 255},
		PadX:       10,
		PadY:       3,
	}
}

// DefaultFace returns the Go regular font at size points for 72 DPI.
func DefaultFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

type panel struct {
	menu  *Menu
	rect  image.Rectangle
	hover int
}

// Popup is an open-able instance of a menu tree. The zero value is not usable, use [NewPopup].
type Popup struct {
	root   *Menu
	face   font.Face
	style  Style
	bounds image.Rectangle
	panels []panel
}

// NewPopup creates a closed popup for root drawn with face.
func NewPopup(root *Menu, face font.Face, style Style) (*Popup, error) {
	if root == nil || len(root.Items) == 0 {
		return nil, errors.New("empty root menu")
	} else if face == nil {
		return nil, errors.New("nil font face")
	}
	return &Popup{root: root, face: face, style: style}, nil
}

// IsOpen reports whether the popup is shown.
func (p *Popup) IsOpen() bool { return len(p.panels) > 0 }

// Open shows the root menu with its top left corner at pt, shifted to fit within bounds.
func (p *Popup) Open(pt image.Point, bounds image.Rectangle) {
	p.bounds = bounds
	p.panels = append(p.panels[:0], panel{
		menu:  p.root,
		rect:  p.place(pt, p.panelSize(p.root), 0),
		hover: -1,
	})
}

// Close hides the popup.
func (p *Popup) Close() { p.panels = p.panels[:0] }

// Panels returns the rectangles of the open panels, root first.
func (p *Popup) Panels() []image.Rectangle {
	rects := make([]image.Rectangle, len(p.panels))
	for i := range p.panels {
		rects[i] = p.panels[i].rect
	}
	return rects
}

// Move updates hover state for the cursor at pt, opening the submenu of a
// hovered item. It reports whether the popup needs redrawing.
func (p *Popup) Move(pt image.Point) (changed bool) {
	if !p.IsOpen() {
		return false
	}
	pi, row := p.hit(pt)
	if pi < 0 {
		last := &p.panels[len(p.panels)-1]
		if last.hover >= 0 && last.menu.Items[last.hover].Sub == nil {
			last.hover = -1
			return true
		}
		return false
	}
	pn := &p.panels[pi]
	if pn.hover == row && (len(p.panels) == pi+1 || pn.menu.Items[row].Sub != nil) {
		return false
	}
	p.panels = p.panels[:pi+1]
	pn = &p.panels[pi]
	pn.hover = row
	if sub := pn.menu.Items[row].Sub; sub != nil && len(sub.Items) > 0 {
		rr := p.rowRect(pi, row)
		p.panels = append(p.panels, panel{
			menu:  sub,
			rect:  p.place(image.Pt(pn.rect.Max.X, rr.Min.Y), p.panelSize(sub), pn.rect.Dx()),
			hover: -1,
		})
	}
	return true
}

// Click handles a button press at pt. Clicking an action item runs it and
// closes the popup, clicking outside all panels closes the popup.
// It reports whether the click was consumed by the popup.
func (p *Popup) Click(pt image.Point) (consumed bool) {
	if !p.IsOpen() {
		return false
	}
	pi, row := p.hit(pt)
	if pi < 0 {
		p.Close()
		return true
	}
	item := p.panels[pi].menu.Items[row]
	if item.Sub != nil {
		p.Move(pt)
		return true
	}
	p.Close()
	if item.Action != nil {
		item.Action()
	}
	return true
}

// Draw rasterizes the open panels onto dst.
func (p *Popup) Draw(dst draw.Image) {
	st := p.style
	ascent := p.face.Metrics().Ascent.Ceil()
	for pi := range p.panels {
		pn := &p.panels[pi]
		draw.Draw(dst, pn.rect, image.NewUniform(st.Border), image.Point{}, draw.Src)
		draw.Draw(dst, pn.rect.Inset(1), image.NewUniform(st.Background), image.Point{}, draw.Src)
		for row, item := range pn.menu.Items {
			rr := p.rowRect(pi, row)
			textColor := st.Text
			if row == pn.hover {
				draw.Draw(dst, rr.Inset(1), image.NewUniform(st.Hover), image.Point{}, draw.Src)
				textColor = st.HoverText
			}
			d := font.Drawer{
				Dst:  dst,
				Src:  image.NewUniform(textColor),
				Face: p.face,
				Dot:  fixed.P(rr.Min.X+st.PadX, rr.Min.Y+st.PadY+ascent),
			}
			d.DrawString(item.Label)
			if item.Sub != nil {
				d.Dot = fixed.P(rr.Max.X-st.PadX-d.MeasureString(">").Ceil(), rr.Min.Y+st.PadY+ascent)
				d.DrawString(">")
			}
		}
	}
}

func (p *Popup) rowHeight() int {
	return p.face.Metrics().Height.Ceil() + 2*p.style.PadY
}

func (p *Popup) panelSize(m *Menu) image.Point {
	width := 0
	arrow := 0
	for _, item := range m.Items {
		width = max(width, font.MeasureString(p.face, item.Label).Ceil())
		if item.Sub != nil {
			arrow = 2*p.style.PadX + font.MeasureString(p.face, ">").Ceil()
		}
	}
	return image.Pt(width+2*p.style.PadX+arrow, len(m.Items)*p.rowHeight())
}

// place positions a panel of size sz at pt keeping it within bounds.
// A panel overflowing to the right is flipped left by flip+sz.X pixels, as submenus do.
func (p *Popup) place(pt, sz image.Point, flip int) image.Rectangle {
	r := image.Rectangle{Min: pt, Max: pt.Add(sz)}
	if p.bounds.Empty() {
		return r
	}
	if r.Max.X > p.bounds.Max.X {
		dx := r.Max.X - p.bounds.Max.X
		if flip > 0 {
			dx = flip + sz.X
		}
		r = r.Sub(image.Pt(dx, 0))
	}
	if r.Max.Y > p.bounds.Max.Y {
		r = r.Sub(image.Pt(0, r.Max.Y-p.bounds.Max.Y))
	}
	if r.Min.X < p.bounds.Min.X {
		r = r.Add(image.Pt(p.bounds.Min.X-r.Min.X, 0))
	}
	if r.Min.Y < p.bounds.Min.Y {
		r = r.Add(image.Pt(0, p.bounds.Min.Y-r.Min.Y))
	}
	return r
}

func (p *Popup) rowRect(pi, row int) image.Rectangle {
	r := p.panels[pi].rect
	h := p.rowHeight()
	return image.Rect(r.Min.X, r.Min.Y+row*h, r.Max.X, r.Min.Y+(row+1)*h)
}

// hit returns the topmost panel and row under pt or -1 if none.
func (p *Popup) hit(pt image.Point) (panelIdx, row int) {
	for pi := len(p.panels) - 1; pi >= 0; pi-- {
		pn := &p.panels[pi]
		if !pt.In(pn.rect) {
			continue
		}
		row = (pt.Y - pn.rect.Min.Y) / p.rowHeight()
		if row >= len(pn.menu.Items) {
			row = len(pn.menu.Items) - 1
		}
		return pi, row
	}
	return -1, -1
}
