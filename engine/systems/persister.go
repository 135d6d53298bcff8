package systems

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/renderer"
	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
)

const filePerm os.FileMode = 0o644

// FrameFileName is the decimal frame index, no padding, with a .png extension.
func FrameFileName(frameIndex uint64) string {
	return strconv.FormatUint(frameIndex, 10) + ".png"
}

// reuses one encoder scratch buffer across frames; the persister is single threaded
type encoderBufferPool struct {
	buffer *png.EncoderBuffer
}

func (p *encoderBufferPool) Get() *png.EncoderBuffer {
	b := p.buffer
	p.buffer = nil
	return b
}

func (p *encoderBufferPool) Put(b *png.EncoderBuffer) {
	p.buffer = b
}

/**
 * @brief Reads the persistent targets back to the CPU and writes one PNG per
 * channel into the run directory.
 */
type FramePersister struct {
	backend  renderer.RendererBackend
	buffers  *FrameBufferSet
	channels []metadata.ChannelDescriptor
	run      *RunDirectory
	metrics  *core.Metrics

	encoder *png.Encoder
	data    bytes.Buffer
}

func NewFramePersister(backend renderer.RendererBackend, buffers *FrameBufferSet, channels []metadata.ChannelDescriptor, run *RunDirectory, metrics *core.Metrics) *FramePersister {
	return &FramePersister{
		backend:  backend,
		buffers:  buffers,
		channels: channels,
		run:      run,
		metrics:  metrics,
		encoder: &png.Encoder{
			CompressionLevel: png.DefaultCompression,
			BufferPool:       &encoderBufferPool{},
		},
	}
}

/**
 * @brief Writes every channel of frameIndex in table order. Stops at the first
 * failing channel; files already written stay on disk.
 */
func (fp *FramePersister) SaveFrame(frameIndex uint64) error {
	for _, ch := range fp.channels {
		if err := fp.saveChannel(ch, frameIndex); err != nil {
			return fmt.Errorf("frame %d channel %s: %w", frameIndex, ch.Name, err)
		}
		if fp.metrics != nil {
			fp.metrics.ChannelWritten()
		}
	}
	return nil
}

func (fp *FramePersister) saveChannel(ch metadata.ChannelDescriptor, frameIndex uint64) error {
	target := fp.buffers.Target(ch.Name)
	if target == nil {
		return fmt.Errorf("%w: %s", core.ErrUnknownRenderTarget, ch.Name)
	}
	staging := fp.buffers.Staging(ch.Resolution)
	if err := fp.readback(target, staging); err != nil {
		return err
	}
	data, err := fp.Encode(staging.Image.SubImage(target.Rect()))
	if err != nil {
		return err
	}
	dir, ok := fp.run.ChannelPath(ch.Dir)
	if !ok {
		return fmt.Errorf("no output folder %s in %s", ch.Dir, fp.run.Path)
	}
	return os.WriteFile(filepath.Join(dir, FrameFileName(frameIndex)), data, filePerm)
}

// readback binds target for reading and restores the previously active target on return.
func (fp *FramePersister) readback(target *metadata.RenderTarget, staging *metadata.StagingImage) (err error) {
	previous := fp.backend.ActiveRenderTarget()
	if err := fp.backend.SetActiveRenderTarget(target); err != nil {
		return err
	}
	defer func() {
		if rerr := fp.backend.SetActiveRenderTarget(previous); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fp.backend.ReadPixels(target.Rect(), staging)
}

// Encode returns img as PNG bytes. The slice is only valid until the next call.
func (fp *FramePersister) Encode(img image.Image) ([]byte, error) {
	fp.data.Reset()
	if err := fp.encoder.Encode(&fp.data, img); err != nil {
		return nil, err
	}
	return fp.data.Bytes(), nil
}
