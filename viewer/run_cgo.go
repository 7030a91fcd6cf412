//go:build !tinygo && cgo

package viewer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"

	"github.com/cgfdemo/porcelain/menu"
	"github.com/cgfdemo/porcelain/mesh"
	"github.com/cgfdemo/porcelain/scene"
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

// Run opens both windows and blocks until one of them is closed or ctx is done.
// It must be called from the main OS thread.
func Run(ctx context.Context, cfg Config) error {
	log := cfg.logger()
	log("Generating HD Texture...")
	a, err := buildAssets(cfg)
	if err != nil {
		return err
	}
	mainWin, panelWin, term, err := startGLFW(cfg.WindowSize)
	if err != nil {
		return err
	}
	defer term()

	r, err := newRenderer(a, cfg.Lighting)
	if err != nil {
		return err
	}
	defer r.delete()
	state := scene.NewState()
	state.Pitch = cfg.Pitch
	mainView := &window{win: mainWin}
	panelView := &window{win: panelWin}
	for _, w := range []*window{mainView, panelView} {
		w.win.MakeContextCurrent()
		w.vao = r.teapotVAO()
		w.dirty = true
		w.win.SetRefreshCallback(func(*glfw.Window) { w.dirty = true })
		w.win.SetFramebufferSizeCallback(func(*glfw.Window, int, int) {
			w.dirty = true
			w.overlayStale = true
		})
	}
	panelView.overlayVAO = r.quadVAO()
	changed := func() {
		mainView.dirty = true
		panelView.dirty = true
	}
	popup, err := newPopup(&state, changed, cfg.MenuFontSize)
	if err != nil {
		return err
	}

	mainWin.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := w.GetCursorPos()
		if action == glfw.Press {
			state.Press(x, y)
		} else if action == glfw.Release {
			state.Release(x, y)
		}
	})
	mainWin.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if state.Drag(x, y) {
			mainView.dirty = true
		}
	})
	panelWin.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		pt := cursorPoint(w)
		switch {
		case popup.IsOpen():
			popup.Click(pt)
		case button == glfw.MouseButtonRight:
			width, height := w.GetSize()
			popup.Open(pt, image.Rect(0, 0, width, height))
		default:
			return
		}
		panelView.dirty = true
		panelView.overlayStale = true
	})
	panelWin.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if popup.Move(cursorPoint(w)) {
			panelView.dirty = true
			panelView.overlayStale = true
		}
	})

	log("Ready!")
	for !mainWin.ShouldClose() && !panelWin.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		if mainView.dirty {
			mainView.dirty = false
			err = r.draw(mainView, state.Model(), scene.InteractiveView(), &state, nil)
			if err != nil {
				return err
			}
		}
		if panelView.dirty {
			panelView.dirty = false
			view, err := state.PanelView()
			if err != nil {
				return err
			}
			err = r.draw(panelView, mgl32.Ident4(), view, &state, popup)
			if err != nil {
				return err
			}
		}
		glfw.WaitEventsTimeout(0.1)
	}
	return nil
}

type window struct {
	win        *glfw.Window
	vao        uint32
	overlayVAO uint32
	dirty      bool
	// overlayStale is set when the menu overlay texture must be redrawn.
	overlayStale bool
}

func cursorPoint(w *glfw.Window) image.Point {
	x, y := w.GetCursorPos()
	return image.Pt(int(x), int(y))
}

// renderer holds GL objects shared between the windows' contexts.
type renderer struct {
	lighting  scene.Lighting
	shaded    glgl.Program
	overlay   glgl.Program
	texture   uint32
	overlayTx uint32
	vbo, ebo  uint32
	quadVBO   uint32
	nIndices  int32
	// Teapot program uniforms.
	uModel, uView, uProjection, uNormalMatrix int32
	uColor, uTextured, uTexture               int32
	uOverlay                                  int32
	overlayImg                                *image.RGBA
}

func newRenderer(a *assets, l scene.Lighting) (*renderer, error) {
	r := &renderer{lighting: l}
	var err error
	r.shaded, err = compile(a.shadedSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling teapot program: %w", err)
	}
	r.overlay, err = compile(a.overlaySrc)
	if err != nil {
		return nil, fmt.Errorf("compiling overlay program: %w", err)
	}
	for _, u := range []struct {
		dst  *int32
		prog glgl.Program
		name string
	}{
		{&r.uModel, r.shaded, "uModel\x00"},
		{&r.uView, r.shaded, "uView\x00"},
		{&r.uProjection, r.shaded, "uProjection\x00"},
		{&r.uNormalMatrix, r.shaded, "uNormalMatrix\x00"},
		{&r.uColor, r.shaded, "uColor\x00"},
		{&r.uTextured, r.shaded, "uTextured\x00"},
		{&r.uTexture, r.shaded, "uTexture\x00"},
		{&r.uOverlay, r.overlay, "uOverlay\x00"},
	} {
		*u.dst, err = u.prog.UniformLocation(u.name)
		if err != nil {
			return nil, err
		}
	}
	r.texture = uploadTexture(a.mips)
	r.vbo, r.ebo, r.nIndices = uploadMesh(a.teapot)

	quad := []float32{-1, -1, 1, -1, -1, 1, -1, 1, 1, -1, 1, 1}
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(quad), gl.Ptr(quad), gl.STATIC_DRAW)

	gl.GenTextures(1, &r.overlayTx)
	gl.BindTexture(gl.TEXTURE_2D, r.overlayTx)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	if err := glgl.Err(); err != nil {
		return nil, fmt.Errorf("uploading scene: %w", err)
	}
	return r, nil
}

func compile(combined []byte) (glgl.Program, error) {
	src, err := glgl.ParseCombined(bytes.NewReader(combined))
	if err != nil {
		return glgl.Program{}, err
	}
	prog, err := glgl.CompileProgram(src)
	if err != nil {
		return glgl.Program{}, fmt.Errorf("%s\n\n%w", combined, err)
	}
	return prog, nil
}

func uploadTexture(mips []*image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for level, img := range mips {
		gl.TexImage2D(gl.TEXTURE_2D, int32(level), gl.RGBA8, int32(img.Rect.Dx()), int32(img.Rect.Dy()),
			0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(len(mips)-1))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return tex
}

func uploadMesh(m *mesh.Mesh) (vbo, ebo uint32, n int32) {
	vertices := m.Interleaved()
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(m.Indices), gl.Ptr(m.Indices), gl.STATIC_DRAW)
	return vbo, ebo, int32(len(m.Indices))
}

// teapotVAO creates a vertex array in the current context. Vertex arrays are
// not shared between contexts so each window needs its own.
func (r *renderer) teapotVAO() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	const stride = 4 * mesh.FloatsPerVertex
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(4*3))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BindVertexArray(0)
	return vao
}

func (r *renderer) quadVAO() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	return vao
}

// draw renders the teapot into w and, if popup is open, the menu on top.
func (r *renderer) draw(w *window, model, view mgl32.Mat4, s *scene.State, popup *menu.Popup) error {
	w.win.MakeContextCurrent()
	fbw, fbh := w.win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	cc := r.lighting.ClearColor
	gl.ClearColor(cc[0], cc[1], cc[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	proj := scene.Projection(fbw, fbh)
	normal := scene.NormalMatrix(view.Mul4(model))
	color := s.SurfaceColor()
	r.shaded.Bind()
	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uProjection, 1, false, &proj[0])
	gl.UniformMatrix3fv(r.uNormalMatrix, 1, false, &normal[0])
	gl.Uniform3f(r.uColor, color[0], color[1], color[2])
	textured := int32(0)
	if s.ShowTexture {
		textured = 1
	}
	gl.Uniform1i(r.uTextured, textured)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.Uniform1i(r.uTexture, 0)
	gl.BindVertexArray(w.vao)
	gl.DrawElements(gl.TRIANGLES, r.nIndices, gl.UNSIGNED_INT, gl.PtrOffset(0))

	if popup != nil && popup.IsOpen() {
		if w.overlayStale {
			width, height := w.win.GetSize()
			r.updateOverlay(popup, width, height)
			w.overlayStale = false
		}
		gl.Disable(gl.DEPTH_TEST)
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
		r.overlay.Bind()
		gl.BindTexture(gl.TEXTURE_2D, r.overlayTx)
		gl.Uniform1i(r.uOverlay, 0)
		gl.BindVertexArray(w.overlayVAO)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
		gl.Disable(gl.BLEND)
	}
	gl.BindVertexArray(0)
	w.win.SwapBuffers()
	return glgl.Err()
}

// updateOverlay redraws the menu into the overlay texture, sized in window coordinates.
func (r *renderer) updateOverlay(popup *menu.Popup, width, height int) {
	if r.overlayImg == nil || r.overlayImg.Rect.Dx() != width || r.overlayImg.Rect.Dy() != height {
		r.overlayImg = image.NewRGBA(image.Rect(0, 0, width, height))
	} else {
		draw.Draw(r.overlayImg, r.overlayImg.Rect, image.Transparent, image.Point{}, draw.Src)
	}
	popup.Draw(r.overlayImg)
	gl.BindTexture(gl.TEXTURE_2D, r.overlayTx)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.overlayImg.Pix))
}

func (r *renderer) delete() {
	r.shaded.Delete()
	r.overlay.Delete()
	textures := []uint32{r.texture, r.overlayTx}
	gl.DeleteTextures(int32(len(textures)), &textures[0])
	buffers := []uint32{r.vbo, r.ebo, r.quadVBO}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
}

func startGLFW(size int) (mainWin, panelWin *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	mainWin, err = glfw.CreateWindow(size, size, MainTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, nil, fmt.Errorf("creating %q window: %w", MainTitle, err)
	}
	mainWin.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	panelWin, err = glfw.CreateWindow(size, size, PanelTitle, nil, mainWin)
	if err != nil {
		glfw.Terminate()
		return nil, nil, nil, fmt.Errorf("creating %q window: %w", PanelTitle, err)
	}
	mainWin.SetPos(MainPos.X, MainPos.Y)
	panelWin.SetPos(PanelPos.X, PanelPos.Y)
	mainWin.Show()
	panelWin.Show()
	mainWin.MakeContextCurrent()
	return mainWin, panelWin, glfw.Terminate, nil
}
