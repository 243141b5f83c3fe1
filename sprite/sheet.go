package sprite

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/disintegration/imaging"
	"github.com/plus3/adventurer/anim"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSheet is returned for a sprite-sheet description that cannot be
// turned into clips.
var ErrInvalidSheet = errors.New("invalid sprite sheet")

// RectDesc is a pixel rectangle in the source image, y down.
type RectDesc struct {
	X uint32 `yaml:"x"`
	Y uint32 `yaml:"y"`
	W uint32 `yaml:"w"`
	H uint32 `yaml:"h"`
}

// Rectangle converts the description to an image.Rectangle.
func (r RectDesc) Rectangle() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
}

// ClipDesc describes one clip: where it sits in the source image and
// whether it is mirrored and trimmed.
type ClipDesc struct {
	Rect      RectDesc `yaml:"rect"`
	IsFlipped bool     `yaml:"is_flipped"`
	Squeeze   bool     `yaml:"squeeze"`
}

// Description is the on-disk form of a sprite sheet.
type Description struct {
	SourcePath string                `yaml:"source_path"`
	ClipMap    map[uint32][]ClipDesc `yaml:"clip_map"`
}

// Sheet maps animation states to their frame sequences.
type Sheet struct {
	clips map[anim.StateKey][]*Clip
}

// NewSheet wraps an already built clip map.
func NewSheet(clips map[anim.StateKey][]*Clip) *Sheet {
	return &Sheet{clips: clips}
}

// FromConfig reads the description at path. A relative source_path is
// resolved against the directory holding the description.
func FromConfig(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sprite sheet: %w", err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	return Decode(f, func(rel string) string {
		if filepath.IsAbs(rel) {
			return rel
		}
		return filepath.Join(dir, rel)
	})
}

// Decode parses a description from r. resolve maps source_path to a file on
// disk; nil leaves it untouched.
func Decode(r io.Reader, resolve func(string) string) (*Sheet, error) {
	var desc Description
	if err := yaml.NewDecoder(r).Decode(&desc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSheet, err)
	}
	if desc.SourcePath == "" {
		return nil, fmt.Errorf("%w: missing source_path", ErrInvalidSheet)
	}
	if len(desc.ClipMap) == 0 {
		return nil, fmt.Errorf("%w: empty clip_map", ErrInvalidSheet)
	}

	path := desc.SourcePath
	if resolve != nil {
		path = resolve(path)
	}
	src, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load sheet image %s: %w", path, err)
	}
	return Build(src, desc)
}

// Build cuts every clip of desc out of the single decoded src image.
func Build(src image.Image, desc Description) (*Sheet, error) {
	clips := make(map[anim.StateKey][]*Clip, len(desc.ClipMap))
	for state, seq := range desc.ClipMap {
		if len(seq) == 0 {
			return nil, fmt.Errorf("%w: state %d has no clips", ErrInvalidSheet, state)
		}
		out := make([]*Clip, 0, len(seq))
		for i, cd := range seq {
			c, err := NewClip(src, cd.Rect.Rectangle(), cd.IsFlipped, cd.Squeeze)
			if err != nil {
				return nil, fmt.Errorf("%w: state %d clip %d: %w", ErrInvalidSheet, state, i, err)
			}
			out = append(out, c)
		}
		clips[anim.StateKey(state)] = out
	}
	return &Sheet{clips: clips}, nil
}

// Clip returns frame i of state. It panics when either is out of range.
func (s *Sheet) Clip(state anim.StateKey, i int) *Clip {
	seq, ok := s.clips[state]
	if !ok {
		panic(fmt.Sprintf("sprite: no clips for state %d", state))
	}
	if i < 0 || i >= len(seq) {
		panic(fmt.Sprintf("sprite: frame %d out of range for state %d (%d frames)", i, state, len(seq)))
	}
	return seq[i]
}

// Frames returns the number of clips for state, 0 when it has none.
func (s *Sheet) Frames(state anim.StateKey) int {
	return len(s.clips[state])
}

// States returns the state keys present, sorted.
func (s *Sheet) States() []anim.StateKey {
	out := make([]anim.StateKey, 0, len(s.clips))
	for k := range s.clips {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Validate checks that each of states has exactly frames(state) clips.
func (s *Sheet) Validate(states []anim.StateKey, frames anim.FramesFunc) error {
	var errs []error
	for _, st := range states {
		want, got := frames(st), s.Frames(st)
		if got == 0 {
			errs = append(errs, fmt.Errorf("state %d: no clips", st))
			continue
		}
		if got != want {
			errs = append(errs, fmt.Errorf("state %d: %d clips, animation expects %d", st, got, want))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSheet, errors.Join(errs...))
	}
	return nil
}
