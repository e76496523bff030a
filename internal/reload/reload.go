// Package reload implements the shader reload coordinator: recompiling
// one or more compute programs from source, emitting every
// specialization variant of the generic stages, and triggering a
// refresh dispatch so the view the user is looking at doesn't go
// stale after an edit-reload cycle.
package reload

import (
	"fmt"

	"github.com/gogpu/beamform/internal/shm"
)

// reloadSpecializations restates the fan-out beamformer_reload_shader
// performs with a sequence of manual `src->kind = ...` assignments as a
// declarative table: reloading a generic stage recompiles every listed
// concrete specialization, each into its own program slot.
var reloadSpecializations = map[shm.ShaderKind][]shm.ShaderKind{
	shm.ShaderDecode: {
		shm.ShaderDecode,
		shm.ShaderDecodeInt16Complex,
		shm.ShaderDecodeFloat,
		shm.ShaderDecodeFloatComplex,
	},
	shm.ShaderDemodulate: {
		shm.ShaderDemodulate,
		shm.ShaderDemodulateFloat,
	},
	shm.ShaderDAS: {
		shm.ShaderDAS,
		shm.ShaderDASFast,
	},
}

// Source describes one reloadable compute program: where to read it
// from, the preamble/header text prefixed before compilation, and
// which generic-or-concrete shader kind it compiles as.
type Source struct {
	Name     string
	Path     string
	Preamble string
	Kind     shm.ShaderKind

	// Next links to another Source composing the same multi-stage
	// program (e.g. a shared header file included by several kernels).
	// Nil for single-stage programs.
	Next *Source
}

// Compiler compiles one linked chain of shader text into a GPU program
// handle. Implementations are provided by the GPU backend; Coordinator
// is backend-agnostic.
type Compiler interface {
	// Compile links the given specialization's source (already
	// assembled with its generated header) and returns an opaque
	// program handle, or an error if compilation/linking fails.
	Compile(kind shm.ShaderKind, source string) (any, error)
}

// FileReader reads reloadable shader source from disk (or any other
// backing store); swappable in tests.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// Refresher enqueues a refresh dispatch for the given view plane once
// a reload completes, letting the caller keep the displayed frame in
// sync with newly compiled kernels.
type Refresher interface {
	// HasRawData reports whether a Compute refresh is meaningful; a
	// reload before any RF data has arrived has nothing to
	// re-beamform.
	HasRawData() bool
	EnqueueCompute(viewPlane shm.ViewPlane) error
}

// Coordinator owns the set of compiled program handles and performs
// reload fan-out.
type Coordinator struct {
	reader   FileReader
	compiler Compiler

	handles map[shm.ShaderKind]any
}

// NewCoordinator constructs a Coordinator that reads shader source via
// reader and compiles it via compiler.
func NewCoordinator(reader FileReader, compiler Compiler) *Coordinator {
	return &Coordinator{
		reader:   reader,
		compiler: compiler,
		handles:  make(map[shm.ShaderKind]any),
	}
}

// Handle returns the compiled program handle for kind, or nil if it
// hasn't been (re)loaded yet.
func (c *Coordinator) Handle(kind shm.ShaderKind) any {
	return c.handles[kind]
}

// Reload reads src (and every Source in its Next chain), composes each
// specialization's header-prefixed source text, compiles it, and on
// success atomically replaces that specialization's handle — mirroring
// beamformer_reload_shader's "compile all variants; only replace
// handles if every compile+link succeeded" behavior, so a bad edit
// never leaves some specializations on new code and others stale.
//
// If src.Kind is a generic stage, every entry in reloadSpecializations
// is recompiled; otherwise only src.Kind itself is.
func (c *Coordinator) Reload(src *Source, lastViewPlane shm.ViewPlane, refresher Refresher) error {
	text, err := c.readLinkedSource(src)
	if err != nil {
		return fmt.Errorf("reload: read source: %w", err)
	}

	kinds, ok := reloadSpecializations[src.Kind]
	if !ok {
		kinds = []shm.ShaderKind{src.Kind}
	}

	compiled := make(map[shm.ShaderKind]any, len(kinds))
	for _, kind := range kinds {
		header := shaderHeader(kind)
		program, err := c.compiler.Compile(kind, header+text)
		if err != nil {
			return fmt.Errorf("reload: compile %s: %w", kind, err)
		}
		compiled[kind] = program
	}

	for kind, program := range compiled {
		c.handles[kind] = program
	}

	if refresher != nil && refresher.HasRawData() {
		if err := refresher.EnqueueCompute(lastViewPlane); err != nil {
			return fmt.Errorf("reload: enqueue refresh compute: %w", err)
		}
	}

	return nil
}

// readLinkedSource concatenates src's own source with every source in
// its Next chain, each separately prefixed by its own Preamble,
// matching shader_text_with_header's multi-file stream assembly.
func (c *Coordinator) readLinkedSource(src *Source) (string, error) {
	var out string
	for s := src; s != nil; s = s.Next {
		body, err := c.reader.ReadFile(s.Path)
		if err != nil {
			return "", fmt.Errorf("%s: %w", s.Path, err)
		}
		out += s.Preamble + string(body)
	}
	return out, nil
}

// shaderHeader generates the `#define`-style header text appropriate
// to kind: an input data-type flag for the concrete Decode and
// Demodulate variants, and DAS_FAST 1 or 0 for ShaderDASFast and
// ShaderDAS. It emits no local workgroup size, DAS id or decode-mode
// id; every other kind gets an empty header.
func shaderHeader(kind shm.ShaderKind) string {
	switch kind {
	case shm.ShaderDecodeInt16Complex:
		return "#define INPUT_DATA_TYPE_INT16_COMPLEX\n\n"
	case shm.ShaderDecodeFloat:
		return "#define INPUT_DATA_TYPE_FLOAT\n\n"
	case shm.ShaderDecodeFloatComplex:
		return "#define INPUT_DATA_TYPE_FLOAT_COMPLEX\n\n"
	case shm.ShaderDemodulateFloat:
		return "#define INPUT_DATA_TYPE_FLOAT\n\n"
	case shm.ShaderDASFast:
		return "#define DAS_FAST 1\n\n"
	case shm.ShaderDAS:
		return "#define DAS_FAST 0\n\n"
	default:
		return ""
	}
}
