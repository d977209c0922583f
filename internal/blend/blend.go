// Package blend implements the Porter-Duff operators used by the raster
// backend, applied with an anti-aliasing coverage value.
//
// All values are premultiplied alpha in the range 0-255.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode represents a Porter-Duff compositing operation.
type Mode uint8

const (
	ModeSourceOver Mode = iota // Result: S + D*(1-Sa) [default]
	ModeSource                 // Result: S (replace destination)
)

// Pixel composites the premultiplied source (sr, sg, sb, sa) onto the
// destination with coverage cov. Partial coverage interpolates between
// the destination and the fully covered result, which for ModeSource
// means overlapping translucent shapes keep the source alpha instead of
// accumulating.
func Pixel(mode Mode, sr, sg, sb, sa, dr, dg, db, da, cov byte) (r, g, b, a byte) {
	if cov == 0 {
		return dr, dg, db, da
	}
	switch mode {
	case ModeSource:
		if cov == 255 {
			return sr, sg, sb, sa
		}
		inv := 255 - cov
		return addDiv255(mulDiv255(sr, cov), mulDiv255(dr, inv)),
			addDiv255(mulDiv255(sg, cov), mulDiv255(dg, inv)),
			addDiv255(mulDiv255(sb, cov), mulDiv255(db, inv)),
			addDiv255(mulDiv255(sa, cov), mulDiv255(da, inv))
	default:
		if cov != 255 {
			sr, sg, sb, sa = mulDiv255(sr, cov), mulDiv255(sg, cov), mulDiv255(sb, cov), mulDiv255(sa, cov)
		}
		return sourceOver(sr, sg, sb, sa, dr, dg, db, da)
	}
}

// sourceOver composites source over destination.
// Formula: S + D * (1 - Sa)
func sourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addDiv255(sr, mulDiv255(dr, invSa)),
		addDiv255(sg, mulDiv255(dg, invSa)),
		addDiv255(sb, mulDiv255(db, invSa)),
		addDiv255(sa, mulDiv255(da, invSa))
}

// Premultiply converts a straight 8-bit color to premultiplied alpha.
func Premultiply(r, g, b, a byte) (byte, byte, byte, byte) {
	return mulDiv255(r, a), mulDiv255(g, a), mulDiv255(b, a), a
}
