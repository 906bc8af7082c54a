// Package renderer draws composed frames with OpenGL.
package renderer

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/dentview/internal/engine/framebuffer"
	"github.com/Faultbox/dentview/internal/engine/shader"
	"github.com/Faultbox/dentview/internal/logger"
	"github.com/Faultbox/dentview/internal/scene"
	"github.com/Faultbox/dentview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int // drawable size in pixels
	Height     int
	ClearColor [3]float32
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

type draw struct {
	mesh      *scene.Mesh
	transform math.Mat4
	depth     float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
	meshes  map[*scene.Geometry]*gpuMesh

	lines            *shader.Program
	lineVAO, lineVBO uint32
	lineCapacity     int
	viewProj         math.Mat4

	capture *framebuffer.Framebuffer
	log     *zap.Logger

	opaque, translucent []draw
	drawCalls           int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[*scene.Geometry]*gpuMesh),
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.program, err = shader.New(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.lines, err = shader.New(lineVertexShader, lineFragmentShader)
	if err != nil {
		r.program.Delete()
		return nil, fmt.Errorf("failed to create line program: %w", err)
	}
	r.createLineBuffer()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.MULTISAMPLE)
	// every material is double-sided
	gl.Disable(gl.CULL_FACE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for geo := range r.meshes {
		r.release(geo)
	}
	if r.capture != nil {
		r.capture.Destroy()
	}
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.lines != nil {
		r.lines.Delete()
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles a drawable size change.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the drawable size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// DrawCalls returns the number of meshes drawn by the last Render.
func (r *Renderer) DrawCalls() int {
	return r.drawCalls
}

// Render draws frame. viewW and viewH are the view size in the units the
// camera zoom is expressed in (window points), which may differ from the
// drawable size on high-DPI displays.
func (r *Renderer) Render(frame scene.Frame, viewW, viewH float32) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.drawCalls = 0
	if viewW <= 0 || viewH <= 0 {
		return
	}

	cam := frame.Camera
	vp := cam.ViewProjection(viewW, viewH)
	r.viewProj = vp
	eye := cam.Eye()
	forward := eye.Scale(-1).Normalize()

	r.program.Use()
	r.program.SetMat4("uViewProj", vp.Ptr())
	r.program.SetVec3("uViewDir", eye.Array())

	u := frame.Lights.Uniforms()
	r.program.SetFloat("uAmbient", u.Ambient)
	r.program.SetInt("uLightCount", u.Count)
	r.program.SetVec3Array("uLightDir[0]", u.Directions[:])
	r.program.SetFloatArray("uLightIntensity[0]", u.Intensities[:])

	r.sortDraws(frame, cam.Position, forward)

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for _, d := range r.opaque {
		r.drawMesh(d)
	}

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	for _, d := range r.translucent {
		r.drawMesh(d)
	}
	gl.DepthMask(true)
	gl.BindVertexArray(0)
}

// sortDraws splits the frame into an opaque list and a translucent list
// ordered back to front.
func (r *Renderer) sortDraws(frame scene.Frame, eye, forward math.Vec3) {
	r.opaque = r.opaque[:0]
	r.translucent = r.translucent[:0]

	for _, m := range frame.Models {
		for _, mesh := range m.Meshes {
			if mesh.Material == nil {
				continue
			}
			center := mesh.Geometry.Bounds.Transform(m.Transform).Center()
			d := draw{
				mesh:      mesh,
				transform: m.Transform,
				depth:     center.Sub(eye).Dot(forward),
			}
			if mesh.Material.Opacity >= 1 {
				r.opaque = append(r.opaque, d)
			} else {
				r.translucent = append(r.translucent, d)
			}
		}
	}
	sort.SliceStable(r.translucent, func(i, j int) bool {
		return r.translucent[i].depth > r.translucent[j].depth
	})
}

func (r *Renderer) drawMesh(d draw) {
	gm := r.upload(d.mesh.Geometry)
	mat := d.mesh.Material

	r.program.SetMat4("uModel", d.transform.Ptr())
	r.program.SetVec3("uColor", mat.Color.Array())
	r.program.SetFloat("uOpacity", mat.Opacity)
	r.program.SetFloat("uMetalness", mat.Metalness)
	r.program.SetFloat("uRoughness", mat.Roughness)

	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, gm.count, gl.UNSIGNED_INT, nil)
	r.drawCalls++
}

// upload returns the GPU buffers for geo, creating them on first use.
// Geometry is immutable, so buffers are never refreshed.
func (r *Renderer) upload(geo *scene.Geometry) *gpuMesh {
	if gm, ok := r.meshes[geo]; ok {
		return gm
	}

	// interleaved position + normal
	data := make([]float32, 0, len(geo.Positions)*6)
	for i, p := range geo.Positions {
		n := math.UnitZ
		if i < len(geo.Normals) {
			n = geo.Normals[i]
		}
		data = append(data, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
	}

	gm := &gpuMesh{count: int32(len(geo.Indices))}
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geo.Indices)*4, gl.Ptr(geo.Indices), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, uintptr(3*unsafe.Sizeof(float32(0))))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	r.meshes[geo] = gm
	r.log.Debug("geometry uploaded",
		zap.Int("vertices", len(geo.Positions)),
		zap.Int("indices", len(geo.Indices)))
	return gm
}

func (r *Renderer) release(geo *scene.Geometry) {
	gm, ok := r.meshes[geo]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gm.vao)
	gl.DeleteBuffers(1, &gm.vbo)
	gl.DeleteBuffers(1, &gm.ebo)
	delete(r.meshes, geo)
}

// Capture renders frame offscreen at scale times the drawable size and
// returns the pixels as bottom-up RGBA rows.
func (r *Renderer) Capture(frame scene.Frame, viewW, viewH float32, scale int) ([]byte, int, int, error) {
	scale = max(scale, 1)
	w, h := int32(r.config.Width*scale), int32(r.config.Height*scale)

	if r.capture == nil {
		fb, err := framebuffer.New(w, h)
		if err != nil {
			return nil, 0, 0, err
		}
		r.capture = fb
	}
	r.capture.Resize(w, h)

	restore := r.capture.Bind()
	r.Render(frame, viewW, viewH)
	pixels := r.capture.ReadPixels()
	restore()

	fw, fh := r.capture.Size()
	return pixels, int(fw), int(fh), nil
}

// createLineBuffer sets up the streamed vertex buffer for overlay lines.
func (r *Renderer) createLineBuffer() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)

	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
}

// DrawLines draws line segments (x, y, z per endpoint) in world space with
// the view-projection of the last Render, on top of the scene.
func (r *Renderer) DrawLines(vertices []float32, color [3]float32) {
	if len(vertices) < 6 {
		return
	}

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if len(vertices) > r.lineCapacity {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
		r.lineCapacity = len(vertices)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	}

	r.lines.Use()
	r.lines.SetMat4("uViewProj", r.viewProj.Ptr())
	r.lines.SetVec3("uColor", color)

	gl.Disable(gl.DEPTH_TEST)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))
	gl.Enable(gl.DEPTH_TEST)
	gl.BindVertexArray(0)
}
