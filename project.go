package velodyne

import (
	"math"
	"time"
)

// ReturnType marks which of a firing's (possibly several) returns a Point
// represents.
type ReturnType int

const (
	ReturnTypeStrongest ReturnType = iota
	ReturnTypeLast
	// ReturnTypeSecondary marks the second point of a dual-return firing
	// whose two blocks carry identical records; that point repeats the
	// strongest point's distance and reflectivity. No second-strongest
	// return is derived for it.
	ReturnTypeSecondary
)

func (t ReturnType) String() string {
	switch t {
	case ReturnTypeStrongest:
		return "strongest"
	case ReturnTypeLast:
		return "last"
	case ReturnTypeSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Point is a single reconstructed 3D measurement: one laser's return at
// one firing. x²+y²+z² equals Distance²; zero ranges (no
// return) still produce a Point at the origin carrying their
// reflectivity byte, so callers that want to drop non-returns filter on
// Distance == 0.
type Point struct {
	X, Y, Z          float32
	Distance         float32
	Reflectivity     uint8
	Channel          uint8
	Azimuth          AzimuthTag
	ReturnType       ReturnType
	FiringTimeOffset time.Duration
}

// Points enumerates every firing in a Data packet as a Point, in firing
// order (block-major, then sequence-major, then channel-major). It
// returns nil for a Position packet. Enumeration is a pure function of
// the packet: it runs the azimuth model for each firing and emits one point per
// (block, sequence, channel), or two per firing in ReturnModeDual.
func (p *Packet) Points() []Point {
	if p.kind != kindData {
		return nil
	}
	d := &p.data

	if d.ReturnMode == ReturnModeDual {
		return projectDual(d)
	}

	returnType := ReturnTypeLast
	if d.ReturnMode == ReturnModeStrongest {
		returnType = ReturnTypeStrongest
	}

	points := make([]Point, 0, blocksPerPacket*sequencesPerBlock*recordsPerSequence)
	for b := 0; b < blocksPerPacket; b++ {
		for s := 0; s < sequencesPerBlock; s++ {
			for c := 0; c < recordsPerSequence; c++ {
				tag := predictAzimuth(d.Blocks, b, s, c)
				rec := d.Blocks[b].Firings[s][c]
				points = append(points, buildPoint(d, rec, tag, b, s, c, returnType))
			}
		}
	}
	return points
}

// projectDual implements the dual-return layout: the 12 blocks are 6
// logical firings, each contributing two adjacent blocks sharing one
// nominal azimuth — the first block the strongest return, the second the
// last return.
func projectDual(d *DataPacket) []Point {
	points := make([]Point, 0, 2*blocksPerPacket/2*sequencesPerBlock*recordsPerSequence)
	for pair := 0; pair < blocksPerPacket/2; pair++ {
		strongBlock := 2 * pair
		lastBlock := 2*pair + 1

		for s := 0; s < sequencesPerBlock; s++ {
			for c := 0; c < recordsPerSequence; c++ {
				strongTag := predictAzimuth(d.Blocks, strongBlock, s, c)
				lastTag := predictAzimuth(d.Blocks, lastBlock, s, c)

				strongRec := d.Blocks[strongBlock].Firings[s][c]
				lastRec := d.Blocks[lastBlock].Firings[s][c]

				points = append(points, buildPoint(d, strongRec, strongTag, strongBlock, s, c, ReturnTypeStrongest))

				secondType := ReturnTypeLast
				if lastRec == strongRec {
					secondType = ReturnTypeSecondary
				}
				points = append(points, buildPoint(d, lastRec, lastTag, lastBlock, s, c, secondType))
			}
		}
	}
	return points
}

func buildPoint(d *DataPacket, rec DataRecord, tag AzimuthTag, block, sequence, channel int, rt ReturnType) Point {
	flat := sequence*recordsPerSequence + channel
	vert := verticalAngle(d.Sensor, flat)

	azRad := float64(tag.Degrees) * math.Pi / 180
	vertRad := float64(vert) * math.Pi / 180

	cosVert := math.Cos(vertRad)
	sinVert := math.Sin(vertRad)
	sinAz := math.Sin(azRad)
	cosAz := math.Cos(azRad)

	r := float64(rec.ReturnDistanceMetres)

	channelOut := channel
	if d.Sensor == SensorHDL32E {
		channelOut = flat
	}

	return Point{
		X:                float32(r * cosVert * sinAz),
		Y:                float32(r * cosVert * cosAz),
		Z:                float32(r * sinVert),
		Distance:         rec.ReturnDistanceMetres,
		Reflectivity:     rec.Reflectivity,
		Channel:          uint8(channelOut),
		Azimuth:          tag,
		ReturnType:       rt,
		FiringTimeOffset: firingTimeOffset(d.TimestampMicros, 2*block+sequence, channel),
	}
}
