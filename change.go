package flairsync

import (
	"errors"
	"image"
	"io/fs"

	"github.com/cespare/xxhash"
	"github.com/corona10/goimagehash"
	"github.com/setanarut/flairsync/utils"
)

// State is the outcome of comparing a fetched sheet with the baseline.
type State int

const (
	StateUnchanged State = iota
	StateChanged
	// StateNoBaseline means no baseline file existed. It counts as a change
	// and the fetched image becomes the first baseline.
	StateNoBaseline
)

func (s State) String() string {
	switch s {
	case StateChanged:
		return "changed"
	case StateNoBaseline:
		return "no-baseline"
	default:
		return "unchanged"
	}
}

// Changed reports whether outputs should be regenerated.
func (s State) Changed() bool { return s != StateUnchanged }

// Result describes one comparison.
type Result struct {
	State State
	// Diff bounds the differing pixels, in the fetched image's coordinates.
	// Empty when unchanged.
	Diff image.Rectangle
	// Fingerprint is the xxhash of the fetched image's NRGBA pixels.
	Fingerprint uint64
	// Distance is the perceptual hash distance to the old baseline, -1 when
	// there is no baseline or the hash failed.
	Distance int
}

// Detector compares images against the baseline stored at Path.
type Detector struct {
	Path string
	// Strict makes a missing baseline an error instead of seeding it.
	Strict bool
}

// NewDetector returns a Detector that seeds a missing baseline.
func NewDetector(path string) *Detector {
	return &Detector{Path: path}
}

// Check compares img with the stored baseline without modifying it.
func (d *Detector) Check(img image.Image) (Result, error) {
	cur := utils.ToNRGBA(img)
	res := Result{Fingerprint: xxhash.Sum64(cur.Pix), Distance: -1}

	base, err := utils.ReadImage(d.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if d.Strict {
			return res, Wrap(err, KindBaselineMissing, "baseline not found").WithMetadata("path", d.Path)
		}
		res.State = StateNoBaseline
		res.Diff = cur.Bounds()
		return res, nil
	case err != nil:
		return res, Wrap(err, KindImageDecode, "read baseline").WithMetadata("path", d.Path)
	}

	old := utils.ToNRGBA(base)
	res.Diff = diffBounds(cur, old)
	if res.Diff.Empty() {
		res.State = StateUnchanged
		return res, nil
	}
	res.State = StateChanged
	res.Distance = perceptualDistance(cur, old)
	return res, nil
}

// Commit replaces the baseline with img.
func (d *Detector) Commit(img image.Image) error {
	if err := utils.SaveImage(img, d.Path); err != nil {
		return Wrap(err, KindFileWrite, "write baseline").WithMetadata("path", d.Path)
	}
	return nil
}

// HasChanged checks img and, when it differs, stores it as the new baseline.
// Calling it again with the same image returns false.
func (d *Detector) HasChanged(img image.Image) (bool, error) {
	res, err := d.Check(img)
	if err != nil {
		return false, err
	}
	if !res.State.Changed() {
		return false, nil
	}
	if err := d.Commit(img); err != nil {
		return false, err
	}
	return true, nil
}

// diffBounds returns the bounding box of pixels that differ between a and b.
// Images of different size differ over the union of their bounds.
func diffBounds(a, b *image.NRGBA) image.Rectangle {
	if a.Bounds() != b.Bounds() {
		return a.Bounds().Union(b.Bounds())
	}
	var box image.Rectangle
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	for y := range h {
		ra := a.Pix[y*a.Stride : y*a.Stride+w*4]
		rb := b.Pix[y*b.Stride : y*b.Stride+w*4]
		for x := range w {
			i := x * 4
			if ra[i] != rb[i] || ra[i+1] != rb[i+1] || ra[i+2] != rb[i+2] || ra[i+3] != rb[i+3] {
				box = box.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return box
}

func perceptualDistance(a, b image.Image) int {
	ha, err := goimagehash.PerceptionHash(a)
	if err != nil {
		return -1
	}
	hb, err := goimagehash.PerceptionHash(b)
	if err != nil {
		return -1
	}
	dist, err := ha.Distance(hb)
	if err != nil {
		return -1
	}
	return dist
}
