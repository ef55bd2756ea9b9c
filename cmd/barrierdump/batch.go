// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"

	"github.com/gviegas/barrier/driver"
)

// batch is a decoded batch file.
type batch struct {
	desc        *driver.BarrierDesc
	inRendering bool
}

type jsonState struct {
	Stages []string `json:"stages"`
	Access []string `json:"access"`
	Layout string   `json:"layout"`
}

type jsonBuffer struct {
	Size  uint64   `json:"size"`
	Usage []string `json:"usage"`
}

type jsonTexture struct {
	Format string   `json:"format"`
	Mips   int      `json:"mips"`
	Layers int      `json:"layers"`
	Usage  []string `json:"usage"`
	Layout string   `json:"layout"`
}

type jsonGlobalBarrier struct {
	Before jsonState `json:"before"`
	After  jsonState `json:"after"`
}

type jsonBufferBarrier struct {
	Buffer string    `json:"buffer"`
	Before jsonState `json:"before"`
	After  jsonState `json:"after"`
}

type jsonTextureBarrier struct {
	Texture     string    `json:"texture"`
	Before      jsonState `json:"before"`
	After       jsonState `json:"after"`
	MipOffset   int       `json:"mipOffset"`
	MipNum      int       `json:"mipNum"`
	LayerOffset int       `json:"layerOffset"`
	LayerNum    int       `json:"layerNum"`
	Planes      []string  `json:"planes"`
	SrcQueue    string    `json:"srcQueue"`
	DstQueue    string    `json:"dstQueue"`
}

type jsonBatch struct {
	Buffers         map[string]jsonBuffer  `json:"buffers"`
	Textures        map[string]jsonTexture `json:"textures"`
	Globals         []jsonGlobalBarrier    `json:"globals"`
	BufferBarriers  []jsonBufferBarrier    `json:"bufferBarriers"`
	TextureBarriers []jsonTextureBarrier   `json:"textureBarriers"`
	InRendering     bool                   `json:"inRendering"`
}

// decodeBatch decodes a batch file from r.
func decodeBatch(r io.Reader) (*batch, error) {
	var jb jsonBatch
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&jb); err != nil {
		return nil, errors.Wrap(err, "decode batch")
	}

	bufs := make(map[string]*buffer, len(jb.Buffers))
	for name, jbuf := range jb.Buffers {
		usg, err := lookupMask("buffer usage", bufferUsages, jbuf.Usage)
		if err != nil {
			return nil, errors.Wrapf(err, "buffer %q", name)
		}
		if jbuf.Usage == nil {
			usg = allBufferUsages
		}
		bufs[name] = &buffer{name, driver.BufferDesc{Size: jbuf.Size, Usage: usg}}
	}
	texs := make(map[string]*texture, len(jb.Textures))
	for name, jtex := range jb.Textures {
		tex, err := jtex.texture(name)
		if err != nil {
			return nil, errors.Wrapf(err, "texture %q", name)
		}
		texs[name] = tex
	}

	desc := new(driver.BarrierDesc)
	for i, jg := range jb.Globals {
		var b driver.GlobalBarrier
		var err error
		if b.Before, err = jg.Before.state(); err == nil {
			b.After, err = jg.After.state()
		}
		if err != nil {
			return nil, errors.Wrapf(err, "global barrier %d", i)
		}
		desc.Globals = append(desc.Globals, b)
	}
	for i, jbb := range jb.BufferBarriers {
		buf, ok := bufs[jbb.Buffer]
		if !ok {
			return nil, errors.Errorf("buffer barrier %d: unknown buffer %q", i, jbb.Buffer)
		}
		b := driver.BufferBarrier{Buffer: buf}
		var err error
		if b.Before, err = jbb.Before.state(); err == nil {
			b.After, err = jbb.After.state()
		}
		if err != nil {
			return nil, errors.Wrapf(err, "buffer barrier %d", i)
		}
		desc.Buffers = append(desc.Buffers, b)
	}
	for i := range jb.TextureBarriers {
		b, err := jb.TextureBarriers[i].barrier(texs)
		if err != nil {
			return nil, errors.Wrapf(err, "texture barrier %d", i)
		}
		desc.Textures = append(desc.Textures, b)
	}
	return &batch{desc, jb.InRendering}, nil
}

func (jt *jsonTexture) texture(name string) (*texture, error) {
	format, err := lookup("format", formats, formatKey(jt.Format))
	if err != nil {
		return nil, err
	}
	if jt.Mips < 1 || jt.Layers < 1 {
		return nil, errors.Errorf("invalid size: %d mips, %d layers", jt.Mips, jt.Layers)
	}
	usg, err := lookupMask("texture usage", textureUsages, jt.Usage)
	if err != nil {
		return nil, err
	}
	if jt.Usage == nil {
		usg = allTextureUsages
	}
	layout, err := lookup("layout", layouts, jt.Layout)
	if err != nil {
		return nil, err
	}
	return &texture{
		name: name,
		desc: driver.TextureDesc{
			Format:   format,
			MipNum:   jt.Mips,
			LayerNum: jt.Layers,
			Usage:    usg,
		},
		layout: layout,
	}, nil
}

func (jtb *jsonTextureBarrier) barrier(texs map[string]*texture) (b driver.TextureBarrier, err error) {
	tex, ok := texs[jtb.Texture]
	if !ok {
		return b, errors.Errorf("unknown texture %q", jtb.Texture)
	}
	b = driver.TextureBarrier{
		Texture:     tex,
		MipOffset:   jtb.MipOffset,
		MipNum:      jtb.MipNum,
		LayerOffset: jtb.LayerOffset,
		LayerNum:    jtb.LayerNum,
	}
	mips, layers := b.Mips(&tex.desc), b.Layers(&tex.desc)
	if b.MipOffset < 0 || mips < 1 || b.MipOffset+mips > tex.desc.MipNum {
		return b, errors.Errorf("mip range [%d, %d) out of bounds", b.MipOffset, b.MipOffset+mips)
	}
	if b.LayerOffset < 0 || layers < 1 || b.LayerOffset+layers > tex.desc.LayerNum {
		return b, errors.Errorf("layer range [%d, %d) out of bounds", b.LayerOffset, b.LayerOffset+layers)
	}
	if b.Planes, err = lookupMask("plane", planes, jtb.Planes); err != nil {
		return
	}
	if b.Before, err = jtb.Before.state(); err != nil {
		return
	}
	if b.After, err = jtb.After.state(); err != nil {
		return
	}
	if jtb.SrcQueue != "" {
		if b.SrcQueue, err = lookup("queue", queues, jtb.SrcQueue); err != nil {
			return
		}
	}
	if jtb.DstQueue != "" {
		if b.DstQueue, err = lookup("queue", queues, jtb.DstQueue); err != nil {
			return
		}
	}
	return
}

// state converts js to a driver.AccessState.
// An empty stage list means every stage.
func (js *jsonState) state() (s driver.AccessState, err error) {
	if s.Stages, err = lookupMask("stage", stages, js.Stages); err != nil {
		return
	}
	if s.Access, err = lookupMask("access", accesses, js.Access); err != nil {
		return
	}
	s.Layout, err = lookup("layout", layouts, js.Layout)
	return
}

// lookup returns the value named s.
func lookup[T any](what string, names map[string]T, s string) (T, error) {
	x, ok := names[strings.ToLower(s)]
	if !ok {
		return x, errors.Errorf("unknown %s %q (want one of %s)", what, s, strings.Join(keys(names), ", "))
	}
	return x, nil
}

// lookupMask ORs the values named in ss.
func lookupMask[T ~uint8 | ~uint32 | ~uint64](what string, names map[string]T, ss []string) (mask T, err error) {
	for _, s := range ss {
		x, err := lookup(what, names, s)
		if err != nil {
			return 0, err
		}
		mask |= x
	}
	return
}

func keys[T any](m map[string]T) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		if k != "" {
			ks = append(ks, k)
		}
	}
	sort.Strings(ks)
	return ks
}

var stages = map[string]driver.Stage{
	"all":                      driver.SAll,
	"none":                     driver.SNone,
	"index-input":              driver.SIndexInput,
	"vertex-shader":            driver.SVertexShader,
	"tess-control-shader":      driver.STessControlShader,
	"tess-eval-shader":         driver.STessEvalShader,
	"geometry-shader":          driver.SGeometryShader,
	"task-shader":              driver.STaskShader,
	"mesh-shader":              driver.SMeshShader,
	"fragment-shader":          driver.SFragmentShader,
	"depth-stencil-attachment": driver.SDepthStencilAttachment,
	"color-attachment":         driver.SColorAttachment,
	"compute-shader":           driver.SComputeShader,
	"ray-gen-shader":           driver.SRayGenShader,
	"miss-shader":              driver.SMissShader,
	"intersection-shader":      driver.SIntersectionShader,
	"closest-hit-shader":       driver.SClosestHitShader,
	"any-hit-shader":           driver.SAnyHitShader,
	"callable-shader":          driver.SCallableShader,
	"accel-struct":             driver.SAccelStruct,
	"micromap":                 driver.SMicromap,
	"copy":                     driver.SCopy,
	"resolve":                  driver.SResolve,
	"clear-storage":            driver.SClearStorage,
	"indirect":                 driver.SIndirect,
	"vertex-shaders":           driver.SVertexShaders,
	"ray-tracing-shaders":      driver.SRayTracingShaders,
	"graphics":                 driver.SGraphics,
}

var accesses = map[string]driver.Access{
	"none":                           driver.ANone,
	"index-buffer":                   driver.AIndexBuffer,
	"vertex-buffer":                  driver.AVertexBuffer,
	"constant-buffer":                driver.AConstantBuffer,
	"argument-buffer":                driver.AArgumentBuffer,
	"scratch-buffer":                 driver.AScratchBuffer,
	"color-attachment-read":          driver.AColorAttachmentRead,
	"color-attachment-write":         driver.AColorAttachmentWrite,
	"color-attachment":               driver.AColorAttachment,
	"depth-stencil-attachment-read":  driver.ADepthStencilAttachmentRead,
	"depth-stencil-attachment-write": driver.ADepthStencilAttachmentWrite,
	"depth-stencil-attachment":       driver.ADepthStencilAttachment,
	"shading-rate-attachment":        driver.AShadingRateAttachment,
	"input-attachment":               driver.AInputAttachment,
	"accel-struct-read":              driver.AAccelStructRead,
	"accel-struct-write":             driver.AAccelStructWrite,
	"micromap-read":                  driver.AMicromapRead,
	"micromap-write":                 driver.AMicromapWrite,
	"shader-resource":                driver.AShaderResource,
	"shader-resource-storage":        driver.AShaderResourceStorage,
	"shader-binding-table":           driver.AShaderBindingTable,
	"copy-source":                    driver.ACopySource,
	"copy-destination":               driver.ACopyDestination,
	"resolve-source":                 driver.AResolveSource,
	"resolve-destination":            driver.AResolveDestination,
	"clear-storage":                  driver.AClearStorage,
}

var layouts = map[string]driver.Layout{
	"":                                  driver.LUndefined,
	"undefined":                         driver.LUndefined,
	"general":                           driver.LGeneral,
	"present":                           driver.LPresent,
	"color-attachment":                  driver.LColorAttachment,
	"shading-rate-attachment":           driver.LShadingRateAttachment,
	"depth-stencil-attachment":          driver.LDepthStencilAttachment,
	"depth-stencil-readonly":            driver.LDepthStencilReadonly,
	"depth-readonly-stencil-attachment": driver.LDepthReadonlyStencilAttachment,
	"depth-attachment-stencil-readonly": driver.LDepthAttachmentStencilReadonly,
	"input-attachment":                  driver.LInputAttachment,
	"shader-resource":                   driver.LShaderResource,
	"shader-resource-storage":           driver.LShaderResourceStorage,
	"copy-source":                       driver.LCopySource,
	"copy-destination":                  driver.LCopyDestination,
	"resolve-source":                    driver.LResolveSource,
	"resolve-destination":               driver.LResolveDestination,
}

var planes = map[string]driver.Plane{
	"all":     driver.PAll,
	"color":   driver.PColor,
	"depth":   driver.PDepth,
	"stencil": driver.PStencil,
}

// formats maps the name of every known texture format to
// the format. Names are those of gputypes.TextureFormat.String,
// matched without case or separators.
var formats = formatNames()

func formatNames() map[string]gputypes.TextureFormat {
	m := make(map[string]gputypes.TextureFormat)
	for i := 1; i < 1<<10; i++ {
		f := gputypes.TextureFormat(i)
		k := formatKey(f.String())
		if k == "" || k == "undefined" || strings.HasPrefix(k, "unknown") || strings.ContainsAny(k, "() ") {
			continue
		}
		if _, ok := m[k]; !ok {
			m[k] = f
		}
	}
	return m
}

// formatKey normalizes a format name.
func formatKey(s string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
}

var bufferUsages = map[string]gputypes.BufferUsage{
	"index":    gputypes.BufferUsageIndex,
	"vertex":   gputypes.BufferUsageVertex,
	"uniform":  gputypes.BufferUsageUniform,
	"storage":  gputypes.BufferUsageStorage,
	"indirect": gputypes.BufferUsageIndirect,
	"copy-src": gputypes.BufferUsageCopySrc,
	"copy-dst": gputypes.BufferUsageCopyDst,
}

var textureUsages = map[string]gputypes.TextureUsage{
	"copy-src":          gputypes.TextureUsageCopySrc,
	"copy-dst":          gputypes.TextureUsageCopyDst,
	"texture-binding":   gputypes.TextureUsageTextureBinding,
	"storage-binding":   gputypes.TextureUsageStorageBinding,
	"render-attachment": gputypes.TextureUsageRenderAttachment,
}

// Resources declared without usage allow any access.
var (
	allBufferUsages = gputypes.BufferUsageIndex | gputypes.BufferUsageVertex |
		gputypes.BufferUsageUniform | gputypes.BufferUsageStorage |
		gputypes.BufferUsageIndirect | gputypes.BufferUsageCopySrc |
		gputypes.BufferUsageCopyDst
	allTextureUsages = gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst |
		gputypes.TextureUsageTextureBinding | gputypes.TextureUsageStorageBinding |
		gputypes.TextureUsageRenderAttachment
)
