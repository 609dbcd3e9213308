package gpu

import (
	"fmt"

	"github.com/gogpu/sceneview/render"
)

// NoopDevice is an in-memory render.Device for tests and headless runs. It
// records texture uploads, program binds, and draws so tests can assert on
// compositor behavior without a GPU.
type NoopDevice struct {
	maxTextureSize int

	// FailTextures makes CreateTexture report exhaustion.
	FailTextures bool

	// FailPrograms makes CreateProgram report exhaustion.
	FailPrograms bool

	Textures []*NoopTexture
	Programs []*NoopProgram
	Binds    int
	Draws    int
	bound    render.Program
}

// NewNoopDevice creates a device with the given maximum texture size.
func NewNoopDevice(maxTextureSize int) *NoopDevice {
	if maxTextureSize <= 0 {
		maxTextureSize = defaultMaxTextureSize
	}
	return &NoopDevice{maxTextureSize: maxTextureSize}
}

func (d *NoopDevice) MaxTextureSize() int { return d.maxTextureSize }

func (d *NoopDevice) CreateTexture(desc render.TextureDescriptor, data []byte) (render.Texture, error) {
	if d.FailTextures {
		return nil, fmt.Errorf("noop: texture creation disabled")
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("noop: texture dimensions must be positive, got %dx%d", desc.Width, desc.Height)
	}
	tex := &NoopTexture{
		Width:  desc.Width,
		Height: desc.Height,
		bpp:    bytesPerTexel(desc.Format),
	}
	if data != nil {
		if err := tex.Update(data); err != nil {
			return nil, err
		}
	}
	d.Textures = append(d.Textures, tex)
	return tex, nil
}

func (d *NoopDevice) CreateProgram(label, source string) (render.Program, error) {
	if d.FailPrograms {
		return nil, fmt.Errorf("noop: program creation disabled")
	}
	p := &NoopProgram{Label: label, Source: source}
	d.Programs = append(d.Programs, p)
	return p, nil
}

func (d *NoopDevice) BindProgram(prog render.Program) {
	if prog != d.bound {
		d.Binds++
		d.bound = prog
	}
}

func (d *NoopDevice) Draw(args render.DrawArgs) error {
	if args.Program == nil || args.Primitive == nil {
		return fmt.Errorf("noop: draw with missing program or primitive")
	}
	d.Draws++
	return nil
}

// NoopTexture records its current contents and update count.
type NoopTexture struct {
	Width    int
	Height   int
	Data     []byte
	Updates  int
	Disposed bool
	bpp      int
}

func (t *NoopTexture) Update(data []byte) error {
	if t.Disposed {
		return ErrTextureReleased
	}
	if len(data) != t.Width*t.Height*t.bpp {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrDataSizeMismatch, len(data), t.Width*t.Height*t.bpp)
	}
	t.Data = append(t.Data[:0], data...)
	t.Updates++
	return nil
}

func (t *NoopTexture) Dispose() { t.Disposed = true }

// NoopProgram records the source it was created from.
type NoopProgram struct {
	Label    string
	Source   string
	Disposed bool
}

func (p *NoopProgram) Dispose() { p.Disposed = true }

var _ render.Device = (*NoopDevice)(nil)
