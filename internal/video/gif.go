// Package video assembles ground-truth animations from rendered frames.
package video

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// EncodeGIF writes an animated GIF of the frames at the given frame rate.
// Frames are quantized to the Plan9 palette; the animation loops forever.
func EncodeGIF(path string, frames []*image.RGBA, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("video: no frames to encode")
	}
	if fps <= 0 {
		return fmt.Errorf("video: fps must be positive, got %d", fps)
	}

	// GIF delays are in hundredths of a second.
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}

	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		pal := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.Draw(pal, frame.Bounds(), frame, frame.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("video: create %s: %w", path, err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("video: encode %s: %w", path, err)
	}
	return nil
}
