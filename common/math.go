package common

import "image/color"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpColor blends two colours channel by channel in premultiplied space.
func LerpColor(a, b color.Color, t float64) color.RGBA {
	if t <= 0 {
		t = 0
	} else if t >= 1 {
		t = 1
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	mix := func(x, y uint32) uint8 {
		return uint8(Lerp(float64(x>>8), float64(y>>8), t) + 0.5)
	}
	return color.RGBA{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: mix(aa, ba)}
}
