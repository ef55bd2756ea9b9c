// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package driver

// Stage is the type of a synchronization scope.
// SAll and SNone are not masks: they must be compared for
// equality before any bit is tested.
// The numeric values are part of the binding surface and
// must not change.
type Stage uint32

// Synchronization scopes.
const (
	SIndexInput Stage = 1 << iota
	SVertexShader
	STessControlShader
	STessEvalShader
	SGeometryShader
	STaskShader
	SMeshShader
	SFragmentShader
	SDepthStencilAttachment
	SColorAttachment
	SComputeShader
	SRayGenShader
	SMissShader
	SIntersectionShader
	SClosestHitShader
	SAnyHitShader
	SCallableShader
	SAccelStruct
	SMicromap
	SCopy
	SResolve
	SClearStorage
	SIndirect

	// Every stage.
	SAll Stage = 0
	// No stage.
	SNone Stage = 0x7fffffff
)

// Composite synchronization scopes.
const (
	STessShaders       = STessControlShader | STessEvalShader
	SMeshShaders       = STaskShader | SMeshShader
	SVertexShaders     = SVertexShader | STessShaders | SGeometryShader | SMeshShaders
	SRayTracingShaders = SRayGenShader | SMissShader | SIntersectionShader | SClosestHitShader | SAnyHitShader | SCallableShader
	SGraphicsShaders   = SVertexShaders | SFragmentShader
	SGraphics          = SIndexInput | SGraphicsShaders | SDepthStencilAttachment | SColorAttachment

	// sMask has every named bit set.
	sMask = SIndirect<<1 - 1
)

// Valid reports whether s is either a sentinel or a
// combination of named bits.
func (s Stage) Valid() bool { return s == SAll || s == SNone || s&^sMask == 0 }

// Access is the type of a memory access scope.
// ANone must be compared for equality before any bit
// is tested.
// The numeric values are part of the binding surface and
// must not change.
type Access uint32

// Memory access scopes.
const (
	AIndexBuffer Access = 1 << iota
	AVertexBuffer
	AConstantBuffer
	AArgumentBuffer
	AScratchBuffer
	AColorAttachmentRead
	AColorAttachmentWrite
	ADepthStencilAttachmentRead
	ADepthStencilAttachmentWrite
	AShadingRateAttachment
	AInputAttachment
	AAccelStructRead
	AAccelStructWrite
	AMicromapRead
	AMicromapWrite
	AShaderResource
	AShaderResourceStorage
	AShaderBindingTable
	ACopySource
	ACopyDestination
	AResolveSource
	AResolveDestination
	AClearStorage

	// No access.
	ANone Access = 0
)

// Composite memory access scopes.
const (
	AColorAttachment        = AColorAttachmentRead | AColorAttachmentWrite
	ADepthStencilAttachment = ADepthStencilAttachmentRead | ADepthStencilAttachmentWrite

	aMask = AClearStorage<<1 - 1
)

// Valid reports whether a is a combination of named bits.
func (a Access) Valid() bool { return a&^aMask == 0 }

// Layout is the type of a logical image layout.
// Layouts are only meaningful for textures.
// The numeric values are part of the binding surface and
// must not change.
type Layout uint8

// Image layouts.
const (
	LUndefined Layout = iota
	LGeneral
	LPresent
	LColorAttachment
	LShadingRateAttachment
	LDepthStencilAttachment
	LDepthStencilReadonly
	LDepthReadonlyStencilAttachment
	LDepthAttachmentStencilReadonly
	LInputAttachment
	LShaderResource
	LShaderResourceStorage
	LCopySource
	LCopyDestination
	LResolveSource
	LResolveDestination

	layoutN
)

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool { return l < layoutN }

// Plane is a mask of texture planes.
// PAll selects every plane that the texture's format has.
type Plane uint8

// Texture planes.
const (
	PColor Plane = 1 << iota
	PDepth
	PStencil

	PAll Plane = 0
)

// AccessState describes how a resource is used at a given
// point in the command stream.
// Buffers ignore the Layout field.
type AccessState struct {
	Stages Stage
	Access Access
	Layout Layout
}

// Remaining is a reserved count meaning "from the offset
// to the end of the resource".
const Remaining = 0
