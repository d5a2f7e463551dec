package command

import (
	"fmt"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/operand"
	"github.com/eventpy/eventpy/pkg/core"
)

// ScreenEffect is Tint Screen or Flash Screen. Color holds the tone
// (red, green, blue, gray) or the flash color (red, green, blue, intensity).
type ScreenEffect struct {
	Color    [4]int64
	Duration uint32
	Wait     bool
}

// ParseTintScreen parses Tint Screen. Tone channels range over -255..255,
// gray over 0..255.
func ParseTintScreen(params []any) (ScreenEffect, error) {
	return parseScreenEffect(params, "tone", -255)
}

// ParseFlashScreen parses Flash Screen. All channels range over 0..255.
func ParseFlashScreen(params []any) (ScreenEffect, error) {
	return parseScreenEffect(params, "color", 0)
}

func parseScreenEffect(params []any, name string, min int64) (ScreenEffect, error) {
	var c ScreenEffect
	r := operand.NewReader(params)
	if err := r.ExpectLen(3); err != nil {
		return c, err
	}

	values, err := r.Ints(0, name)
	if err != nil {
		return c, err
	}
	if len(values) != 4 {
		return c, fmt.Errorf("%w: %s needs 4 channels, got %d", diag.ErrSchemaMismatch, name, len(values))
	}
	for i, v := range values {
		lo := min
		if i == 3 {
			lo = 0
		}
		if v < lo || v > 255 {
			return c, fmt.Errorf("%w: %s channel %d out of range: %d", diag.ErrData, name, i, v)
		}
		c.Color[i] = v
	}
	if c.Duration, err = r.Uint32(1, "duration"); err != nil {
		return c, err
	}
	if c.Wait, err = r.Bool(2, "wait"); err != nil {
		return c, err
	}
	return c, nil
}

// ShakeScreen shakes the screen.
type ShakeScreen struct {
	Power    uint32
	Speed    uint32
	Duration uint32
	Wait     bool
}

// ParseShakeScreen parses Shake Screen.
func ParseShakeScreen(params []any) (ShakeScreen, error) {
	var c ShakeScreen
	r := operand.NewReader(params)
	if err := r.ExpectLen(4); err != nil {
		return c, err
	}

	var err error
	if c.Power, err = r.Uint32(0, "power"); err != nil {
		return c, err
	}
	if c.Speed, err = r.Uint32(1, "speed"); err != nil {
		return c, err
	}
	if c.Duration, err = r.Uint32(2, "duration"); err != nil {
		return c, err
	}
	if c.Wait, err = r.Bool(3, "wait"); err != nil {
		return c, err
	}
	return c, nil
}

// ParseSingleUint parses commands whose only slot is a non-negative
// integer: Wait, Erase Picture, the fade-outs, Common Event.
func ParseSingleUint(params []any, name string) (uint32, error) {
	r := operand.NewReader(params)
	if err := r.ExpectLen(1); err != nil {
		return 0, err
	}
	return r.Uint32(0, name)
}

// ParseSingleString parses commands whose only slot is a string: labels,
// script rows and MV plugin commands.
func ParseSingleString(params []any, name string) (string, error) {
	r := operand.NewReader(params)
	if err := r.ExpectLen(1); err != nil {
		return "", err
	}
	return r.String(0, name)
}

// ParseAudio parses the play commands for BGM, BGS, ME and SE.
func ParseAudio(params []any) (core.AudioFile, error) {
	r := operand.NewReader(params)
	if err := r.ExpectLen(1); err != nil {
		return core.AudioFile{}, err
	}
	return r.Audio(0, "audio")
}

// ShowPicture displays a picture.
type ShowPicture struct {
	PictureID uint32
	Name      string
	Origin    uint8
	X         operand.MaybeRef[int32]
	Y         operand.MaybeRef[int32]
	ScaleX    uint32
	ScaleY    uint32
	Opacity   uint8
	BlendMode uint8
}

// ParseShowPicture parses Show Picture. One designation flag covers x and y.
func ParseShowPicture(params []any) (ShowPicture, error) {
	var c ShowPicture
	r := operand.NewReader(params)
	if err := r.ExpectLen(10); err != nil {
		return c, err
	}

	var err error
	if c.PictureID, err = r.Uint32(0, "picture id"); err != nil {
		return c, err
	}
	if c.Name, err = r.String(1, "picture name"); err != nil {
		return c, err
	}
	origin, err := r.Enum(2, "origin", 2)
	if err != nil {
		return c, err
	}
	c.Origin = uint8(origin)

	byVariable, err := r.IntBool(3, "designation")
	if err != nil {
		return c, err
	}
	if c.X, err = operand.ReadMaybeRefWith(r, byVariable, 4, "x", r.Int32); err != nil {
		return c, err
	}
	if c.Y, err = operand.ReadMaybeRefWith(r, byVariable, 5, "y", r.Int32); err != nil {
		return c, err
	}
	if c.ScaleX, err = r.Uint32(6, "scale x"); err != nil {
		return c, err
	}
	if c.ScaleY, err = r.Uint32(7, "scale y"); err != nil {
		return c, err
	}
	if c.Opacity, err = r.Uint8(8, "opacity"); err != nil {
		return c, err
	}
	blend, err := r.Enum(9, "blend mode", 4)
	if err != nil {
		return c, err
	}
	c.BlendMode = uint8(blend)
	return c, nil
}
