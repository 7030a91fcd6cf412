// Package viewer shows the porcelain teapot in two windows: one rotated by
// dragging with the left mouse button, the other a control panel whose
// camera, surface color and texture are picked from a right click menu.
package viewer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/cgfdemo/porcelain"
	"github.com/cgfdemo/porcelain/glbuild"
	"github.com/cgfdemo/porcelain/glrender"
	"github.com/cgfdemo/porcelain/menu"
	"github.com/cgfdemo/porcelain/mesh"
	"github.com/cgfdemo/porcelain/scene"
)

// Window titles and placement.
const (
	MainTitle  = "HD Porcelain View"
	PanelTitle = "Control Panel"
)

var (
	MainPos  = image.Pt(50, 100)
	PanelPos = image.Pt(460, 100)
)

type Config struct {
	Motif    porcelain.Motif
	Lighting scene.Lighting
	// TextureSize is the width and height of the generated texture.
	TextureSize int
	// Slices is the teapot's subdivision count around its vertical axis.
	Slices int
	// WindowSize is the width and height of both windows.
	WindowSize int
	// MenuFontSize is the menu text size in points.
	MenuFontSize float64
	// Pitch lets vertical drags tilt the teapot. Off, dragging only spins it.
	Pitch  bool
	Silent bool
}

// DefaultConfig returns the reference scene: a 512x512 texture, 400x400 windows.
func DefaultConfig() Config {
	return Config{
		Motif:        porcelain.DefaultMotif(),
		Lighting:     scene.DefaultLighting(),
		TextureSize:  porcelain.TextureWidth,
		Slices:       32,
		WindowSize:   400,
		MenuFontSize: 13,
	}
}

func (cfg Config) validate() error {
	switch {
	case cfg.TextureSize <= 0:
		return fmt.Errorf("%w: texture size %d", porcelain.ErrInvalidArgument, cfg.TextureSize)
	case cfg.WindowSize <= 0:
		return fmt.Errorf("%w: window size %d", porcelain.ErrInvalidArgument, cfg.WindowSize)
	case cfg.MenuFontSize <= 0:
		return fmt.Errorf("%w: menu font size %g", porcelain.ErrInvalidArgument, cfg.MenuFontSize)
	}
	return nil
}

func (cfg Config) logger() func(args ...any) {
	return func(args ...any) {
		if !cfg.Silent {
			log.Println(args...)
		}
	}
}

// assets is everything the viewer needs that can be prepared without a GL context.
type assets struct {
	mips       []*image.RGBA
	teapot     *mesh.Mesh
	shadedSrc  []byte
	overlaySrc []byte
}

func buildAssets(cfg Config) (*assets, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	raster, err := porcelain.Synthesize(cfg.TextureSize, cfg.TextureSize, cfg.Motif)
	if err != nil {
		return nil, fmt.Errorf("generating texture: %w", err)
	}
	teapot, err := mesh.Teapot(cfg.Lighting.TeapotSize, cfg.Slices)
	if err != nil {
		return nil, fmt.Errorf("generating teapot: %w", err)
	}
	programmer := glbuild.NewDefaultProgrammer()
	var shaded, overlay bytes.Buffer
	_, err = programmer.WriteShadedProgram(&shaded, cfg.Lighting)
	if err != nil {
		return nil, fmt.Errorf("writing teapot program: %w", err)
	}
	_, err = programmer.WriteOverlayProgram(&overlay)
	if err != nil {
		return nil, fmt.Errorf("writing overlay program: %w", err)
	}
	return &assets{
		mips:       glrender.Mipmaps(raster),
		teapot:     teapot,
		shadedSrc:  shaded.Bytes(),
		overlaySrc: overlay.Bytes(),
	}, nil
}

// newPopup returns the control panel's menu bound to s. changed is called after every selection.
func newPopup(s *scene.State, changed func(), fontSize float64) (*menu.Popup, error) {
	if s == nil || changed == nil {
		return nil, errors.New("nil state or change callback")
	}
	face, err := menu.DefaultFace(fontSize)
	if err != nil {
		return nil, err
	}
	return menu.NewPopup(scene.MainMenu(s, changed), face, menu.DefaultStyle())
}
