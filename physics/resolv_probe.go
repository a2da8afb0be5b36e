package physics

import (
	"math"

	"github.com/milk9111/charcore/prefabs"
	"github.com/solarlune/resolv"
)

const (
	// resolvCellsPerMeter sets grid resolution; coordinates are in cells.
	resolvCellsPerMeter = 16
	tagGround           = "ground"
)

// ResolvProbe answers ground queries with a resolv grid mirroring the
// world's platforms. The grid is Y-down, so positions are flipped against
// the top of the level.
type ResolvProbe struct {
	space  *resolv.Space
	feet   *resolv.Object
	body   *Body
	top    float64
	length float64
	inset  float64
}

func NewResolvProbe(w *World, b *Body, length, inset float64) *ResolvProbe {
	if length <= 0 {
		length = 0.1
	}
	right, top := 1.0, 1.0
	for _, p := range w.Platforms() {
		right = math.Max(right, p.X+p.W)
		top = math.Max(top, p.Y+p.H)
	}
	// headroom for jumps above the highest platform
	top += 16

	cols := int(math.Ceil(right * resolvCellsPerMeter))
	rows := int(math.Ceil(top * resolvCellsPerMeter))
	rp := &ResolvProbe{
		space:  resolv.NewSpace(cols, rows, 1, 1),
		body:   b,
		top:    top,
		length: length,
		inset:  inset,
	}
	for _, p := range w.Platforms() {
		rp.AddPlatform(p)
	}

	bw, _ := b.Size()
	fw := math.Max(bw-2*inset, 0.01)
	rp.feet = resolv.NewObject(0, 0, fw*resolvCellsPerMeter, (length+probeSkin)*resolvCellsPerMeter, "feet")
	rp.space.Add(rp.feet)
	return rp
}

// AddPlatform mirrors a platform into the grid.
func (rp *ResolvProbe) AddPlatform(p prefabs.PlatformSpec) {
	if rp == nil || p.W <= 0 || p.H <= 0 {
		return
	}
	obj := resolv.NewObject(
		p.X*resolvCellsPerMeter,
		(rp.top-(p.Y+p.H))*resolvCellsPerMeter,
		p.W*resolvCellsPerMeter,
		p.H*resolvCellsPerMeter,
		tagGround,
	)
	rp.space.Add(obj)
}

func (rp *ResolvProbe) OnGround() bool {
	if rp == nil || rp.feet == nil || rp.body == nil {
		return false
	}
	pos := rp.body.Position()
	bw, _ := rp.body.Size()
	rp.feet.X = (pos.X - bw/2 + rp.inset) * resolvCellsPerMeter
	rp.feet.Y = (rp.top - (rp.body.Bottom() + probeSkin)) * resolvCellsPerMeter
	rp.feet.Update()
	return rp.feet.Check(0, 0, tagGround) != nil
}
