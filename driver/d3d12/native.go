// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package d3d12

import (
	"github.com/gviegas/barrier/driver"
)

// ResourceStates mirrors D3D12_RESOURCE_STATES.
type ResourceStates uint32

// Resource states.
const (
	StateCommon                          ResourceStates = 0
	StateVertexAndConstantBuffer         ResourceStates = 0x1
	StateIndexBuffer                     ResourceStates = 0x2
	StateRenderTarget                    ResourceStates = 0x4
	StateUnorderedAccess                 ResourceStates = 0x8
	StateDepthWrite                      ResourceStates = 0x10
	StateDepthRead                       ResourceStates = 0x20
	StateNonPixelShaderResource          ResourceStates = 0x40
	StatePixelShaderResource             ResourceStates = 0x80
	StateStreamOut                       ResourceStates = 0x100
	StateIndirectArgument                ResourceStates = 0x200
	StateCopyDest                        ResourceStates = 0x400
	StateCopySource                      ResourceStates = 0x800
	StateResolveDest                     ResourceStates = 0x1000
	StateResolveSource                   ResourceStates = 0x2000
	StateRaytracingAccelerationStructure ResourceStates = 0x400000
	StateShadingRateSource               ResourceStates = 0x1000000
	StatePresent                         ResourceStates = 0
)

// StateAllShaderResource is the state of a resource read
// from any shader stage.
const StateAllShaderResource = StateNonPixelShaderResource | StatePixelShaderResource

// ResourceBarrierType mirrors D3D12_RESOURCE_BARRIER_TYPE.
type ResourceBarrierType uint32

// Resource barrier types.
const (
	BarrierTypeTransition ResourceBarrierType = iota
	BarrierTypeAliasing
	BarrierTypeUAV
)

// AllSubresources mirrors D3D12_RESOURCE_BARRIER_ALL_SUBRESOURCES.
const AllSubresources = 0xffffffff

// ResourceBarrier mirrors D3D12_RESOURCE_BARRIER.
// Only the fields that apply to Type are meaningful.
// For BarrierTypeUAV, a nil Resource means any resource.
type ResourceBarrier struct {
	Type        ResourceBarrierType
	Resource    driver.Resource
	Subresource uint32
	StateBefore ResourceStates
	StateAfter  ResourceStates
}

// BarrierSync mirrors D3D12_BARRIER_SYNC.
type BarrierSync uint32

// Barrier sync scopes.
const (
	SyncNone                                   BarrierSync = 0
	SyncAll                                    BarrierSync = 0x1
	SyncDraw                                   BarrierSync = 0x2
	SyncIndexInput                             BarrierSync = 0x4
	SyncVertexShading                          BarrierSync = 0x8
	SyncPixelShading                           BarrierSync = 0x10
	SyncDepthStencil                           BarrierSync = 0x20
	SyncRenderTarget                           BarrierSync = 0x40
	SyncComputeShading                         BarrierSync = 0x80
	SyncRaytracing                             BarrierSync = 0x100
	SyncCopy                                   BarrierSync = 0x200
	SyncResolve                                BarrierSync = 0x400
	SyncExecuteIndirect                        BarrierSync = 0x800
	SyncAllShading                             BarrierSync = 0x1000
	SyncNonPixelShading                        BarrierSync = 0x2000
	SyncEmitRaytracingAccelStructPostbuildInfo BarrierSync = 0x4000
	SyncClearUnorderedAccessView               BarrierSync = 0x8000
	SyncBuildRaytracingAccelStruct             BarrierSync = 0x800000
	SyncCopyRaytracingAccelStruct              BarrierSync = 0x1000000
)

// BarrierAccess mirrors D3D12_BARRIER_ACCESS.
type BarrierAccess uint32

// Barrier access scopes.
const (
	AccessCommon                     BarrierAccess = 0
	AccessVertexBuffer               BarrierAccess = 0x1
	AccessConstantBuffer             BarrierAccess = 0x2
	AccessIndexBuffer                BarrierAccess = 0x4
	AccessRenderTarget               BarrierAccess = 0x8
	AccessUnorderedAccess            BarrierAccess = 0x10
	AccessDepthStencilWrite          BarrierAccess = 0x20
	AccessDepthStencilRead           BarrierAccess = 0x40
	AccessShaderResource             BarrierAccess = 0x80
	AccessStreamOutput               BarrierAccess = 0x100
	AccessIndirectArgument           BarrierAccess = 0x200
	AccessCopyDest                   BarrierAccess = 0x400
	AccessCopySource                 BarrierAccess = 0x800
	AccessResolveDest                BarrierAccess = 0x1000
	AccessResolveSource              BarrierAccess = 0x2000
	AccessRaytracingAccelStructRead  BarrierAccess = 0x4000
	AccessRaytracingAccelStructWrite BarrierAccess = 0x8000
	AccessShadingRateSource          BarrierAccess = 0x10000
	AccessNoAccess                   BarrierAccess = 0x80000000
)

// BarrierLayout mirrors D3D12_BARRIER_LAYOUT.
type BarrierLayout uint32

// Barrier layouts.
const (
	LayoutUndefined         BarrierLayout = 0xffffffff
	LayoutCommon            BarrierLayout = 0
	LayoutPresent           BarrierLayout = 0
	LayoutGenericRead       BarrierLayout = 1
	LayoutRenderTarget      BarrierLayout = 2
	LayoutUnorderedAccess   BarrierLayout = 3
	LayoutDepthStencilWrite BarrierLayout = 4
	LayoutDepthStencilRead  BarrierLayout = 5
	LayoutShaderResource    BarrierLayout = 6
	LayoutCopySource        BarrierLayout = 7
	LayoutCopyDest          BarrierLayout = 8
	LayoutResolveSource     BarrierLayout = 9
	LayoutResolveDest       BarrierLayout = 10
	LayoutShadingRateSource BarrierLayout = 11
)

// TextureBarrierFlags mirrors D3D12_TEXTURE_BARRIER_FLAGS.
type TextureBarrierFlags uint32

// Texture barrier flags.
const (
	TextureBarrierFlagNone    TextureBarrierFlags = 0
	TextureBarrierFlagDiscard TextureBarrierFlags = 0x1
)

// BarrierSubresourceRange mirrors D3D12_BARRIER_SUBRESOURCE_RANGE.
type BarrierSubresourceRange struct {
	IndexOrFirstMipLevel uint32
	NumMipLevels         uint32
	FirstArraySlice      uint32
	NumArraySlices       uint32
	FirstPlane           uint32
	NumPlanes            uint32
}

// GlobalBarrier mirrors D3D12_GLOBAL_BARRIER.
type GlobalBarrier struct {
	SyncBefore   BarrierSync
	SyncAfter    BarrierSync
	AccessBefore BarrierAccess
	AccessAfter  BarrierAccess
}

// BufferBarrier mirrors D3D12_BUFFER_BARRIER.
type BufferBarrier struct {
	SyncBefore   BarrierSync
	SyncAfter    BarrierSync
	AccessBefore BarrierAccess
	AccessAfter  BarrierAccess
	Resource     driver.Buffer
	Offset       uint64
	Size         uint64
}

// TextureBarrier mirrors D3D12_TEXTURE_BARRIER.
type TextureBarrier struct {
	SyncBefore   BarrierSync
	SyncAfter    BarrierSync
	AccessBefore BarrierAccess
	AccessAfter  BarrierAccess
	LayoutBefore BarrierLayout
	LayoutAfter  BarrierLayout
	Resource     driver.Texture
	Subresources BarrierSubresourceRange
	Flags        TextureBarrierFlags
}

// BarrierType mirrors D3D12_BARRIER_TYPE.
type BarrierType uint32

// Barrier group types.
const (
	BarrierTypeGlobal BarrierType = iota
	BarrierTypeTexture
	BarrierTypeBuffer
)

// BarrierGroup mirrors D3D12_BARRIER_GROUP.
// Only the slice that matches Type is set.
type BarrierGroup struct {
	Type     BarrierType
	Globals  []GlobalBarrier
	Buffers  []BufferBarrier
	Textures []TextureBarrier
}

// Len returns the number of barriers in the group.
func (g *BarrierGroup) Len() int {
	switch g.Type {
	case BarrierTypeGlobal:
		return len(g.Globals)
	case BarrierTypeTexture:
		return len(g.Textures)
	case BarrierTypeBuffer:
		return len(g.Buffers)
	}
	return 0
}

// CommandList is the interface through which the driver
// submits native barriers. It is implemented outside this
// module, on top of ID3D12GraphicsCommandList.
// Slices passed to its methods are only valid for the
// duration of the call.
type CommandList interface {
	// ResourceBarrier mirrors
	// ID3D12GraphicsCommandList::ResourceBarrier.
	ResourceBarrier(b []ResourceBarrier)

	// Barrier mirrors ID3D12GraphicsCommandList7::Barrier.
	Barrier(g []BarrierGroup)
}

// Device is the interface that creates native command
// lists.
type Device interface {
	NewCommandList(que driver.Queue) (CommandList, error)
}
