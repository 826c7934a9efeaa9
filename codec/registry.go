package codec

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/ndcodec"
	"github.com/wippyai/ndcodec/errors"
	"github.com/wippyai/ndcodec/resource"
)

// DecodeFunc reads the element at offset of a.
type DecodeFunc func(offset int64, a *Array) (any, error)

// EncodeFunc writes value into the element at offset of a.
type EncodeFunc func(value any, offset int64, a *Array) error

// Functions is the immutable pair of element functions for one tag.
type Functions struct {
	Decode DecodeFunc
	Encode EncodeFunc
	Tag    TypeTag
}

// Config selects the platform widths and the handle table used for
// object elements. The zero value means native sizes and resource.Default().
type Config struct {
	Handles *resource.Table
	Sizes   ndcodec.Sizes
}

func (c Config) withDefaults() Config {
	if c.Sizes == (ndcodec.Sizes{}) {
		c.Sizes = ndcodec.NativeSizes()
	}
	if c.Handles == nil {
		c.Handles = resource.Default()
	}
	return c
}

// Registry maps every tag to its element functions.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	handles *resource.Table
	table   [NumTags]*Functions
	sizes   ndcodec.Sizes
}

// NewRegistry builds the function table for the given configuration.
// Integer categories resolve to 4- or 8-byte codecs from cfg.Sizes; any
// other width, or a pointer width other than 4 or 8, is a size mismatch.
func NewRegistry(cfg Config) (*Registry, error) {
	cfg = cfg.withDefaults()
	r := &Registry{
		handles: cfg.Handles,
		sizes:   cfg.Sizes,
	}

	r.table[Bool] = boolFunctions()
	r.table[Byte] = integerFunctions[int8](Byte)
	r.table[UByte] = integerFunctions[uint8](UByte)
	r.table[Short] = integerFunctions[int16](Short)
	r.table[UShort] = integerFunctions[uint16](UShort)

	widths := []struct {
		name             string
		signed, unsigned TypeTag
		size             int
	}{
		{"int", Int, UInt, cfg.Sizes.Int},
		{"long", Long, ULong, cfg.Sizes.Long},
		{"long long", LongLong, ULongLong, cfg.Sizes.LongLong},
	}
	for _, w := range widths {
		switch w.size {
		case 4:
			r.table[w.signed] = integerFunctions[int32](w.signed)
			r.table[w.unsigned] = integerFunctions[uint32](w.unsigned)
		case 8:
			r.table[w.signed] = integerFunctions[int64](w.signed)
			r.table[w.unsigned] = integerFunctions[uint64](w.unsigned)
		default:
			return nil, errors.SizeMismatch(errors.PhaseRegistry, w.name, w.size)
		}
	}

	r.table[Float] = floatFunctions[float32](Float)
	r.table[Double] = floatFunctions[float64](Double)
	r.table[CDouble] = complexFunctions()
	r.table[String] = byteStringFunctions()

	switch cfg.Sizes.Pointer {
	case 4, 8:
		r.table[Object] = r.objectFunctions()
	default:
		return nil, errors.SizeMismatch(errors.PhaseRegistry, "pointer", cfg.Sizes.Pointer)
	}

	r.table[Void] = r.recordFunctions()

	return r, nil
}

// FunctionsFor returns the functions registered for tag.
func (r *Registry) FunctionsFor(tag TypeTag) (*Functions, error) {
	if !tag.Valid() || r.table[tag] == nil {
		return nil, errors.UnsupportedType(errors.PhaseRegistry, tag.String())
	}
	return r.table[tag], nil
}

// Decode reads the element at offset using the functions for a's tag.
func (r *Registry) Decode(offset int64, a *Array) (any, error) {
	if a == nil || a.Descr == nil {
		return nil, errors.InvalidInput(errors.PhaseDecode, "array without descriptor")
	}
	fn, err := r.FunctionsFor(a.Descr.Tag)
	if err != nil {
		return nil, err
	}
	return fn.Decode(offset, a)
}

// Encode writes value into the element at offset using the functions for
// a's tag.
func (r *Registry) Encode(value any, offset int64, a *Array) error {
	if a == nil || a.Descr == nil {
		return errors.InvalidInput(errors.PhaseEncode, "array without descriptor")
	}
	fn, err := r.FunctionsFor(a.Descr.Tag)
	if err != nil {
		return err
	}
	return fn.Encode(value, offset, a)
}

// Sizes returns the platform widths the registry was built with.
func (r *Registry) Sizes() ndcodec.Sizes {
	return r.sizes
}

// Handles returns the table backing object elements.
func (r *Registry) Handles() *resource.Table {
	return r.handles
}

// NewScalar returns the descriptor of tag using the registry's sizes.
func (r *Registry) NewScalar(tag TypeTag) *Descriptor {
	return NewScalar(tag, r.sizes)
}

var (
	global   atomic.Pointer[Registry]
	globalMu sync.Mutex
	builds   atomic.Int64
)

// Init builds the process-wide registry. Calling it again with the same
// configuration returns the existing registry; a different configuration
// fails with already_initialized.
func Init(cfg Config) (*Registry, error) {
	return install(cfg.withDefaults(), true)
}

// Default returns the process-wide registry, building it with native sizes
// and the default handle table if Init has not been called.
func Default() (*Registry, error) {
	if r := global.Load(); r != nil {
		return r, nil
	}
	return install(Config{}.withDefaults(), false)
}

// FunctionsFor looks tag up in the process-wide registry.
func FunctionsFor(tag TypeTag) (*Functions, error) {
	r, err := Default()
	if err != nil {
		return nil, err
	}
	return r.FunctionsFor(tag)
}

func install(cfg Config, strict bool) (*Registry, error) {
	if r := global.Load(); r != nil {
		return existing(r, cfg, strict)
	}

	globalMu.Lock()
	defer globalMu.Unlock()

	if r := global.Load(); r != nil {
		return existing(r, cfg, strict)
	}

	r, err := NewRegistry(cfg)
	if err != nil {
		return nil, err
	}
	builds.Add(1)
	global.Store(r)

	Logger().Debug("element registry built",
		zap.Int("int", cfg.Sizes.Int),
		zap.Int("long", cfg.Sizes.Long),
		zap.Int("longlong", cfg.Sizes.LongLong),
		zap.Int("pointer", cfg.Sizes.Pointer),
	)
	return r, nil
}

func existing(r *Registry, cfg Config, strict bool) (*Registry, error) {
	if strict && (r.sizes != cfg.Sizes || r.handles != cfg.Handles) {
		return nil, errors.New(errors.PhaseRegistry, errors.KindAlreadyInitialized).
			Detail("registry already built with sizes %+v", r.sizes).
			Build()
	}
	return r, nil
}
