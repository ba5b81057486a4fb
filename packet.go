package velodyne

import (
	"bytes"
	"time"
)

const (
	// CapturePayloadSize is the fixed length, in bytes, of a capture
	// payload handed to Decode: a 42-byte network-capture header
	// (Ethernet + IP + UDP) followed by the sensor's own payload.
	CapturePayloadSize = 1248

	captureHeaderSize = 42
	gprmcOffset       = 248
)

var gprmcMagic = []byte("$GPRMC")

// ReturnMode selects which of potentially many reflected pulses a Data
// packet reports for a firing.
type ReturnMode uint8

const (
	ReturnModeStrongest ReturnMode = 0x37
	ReturnModeLast      ReturnMode = 0x38
	ReturnModeDual      ReturnMode = 0x39
)

func (m ReturnMode) String() string {
	switch m {
	case ReturnModeStrongest:
		return "strongest"
	case ReturnModeLast:
		return "last"
	case ReturnModeDual:
		return "dual"
	default:
		return "unknown"
	}
}

func parseReturnMode(b uint8) (ReturnMode, error) {
	switch ReturnMode(b) {
	case ReturnModeStrongest, ReturnModeLast, ReturnModeDual:
		return ReturnMode(b), nil
	default:
		return 0, &ErrInvalidReturnMode{Value: b}
	}
}

// Sensor identifies which Velodyne head produced a Data packet. VLP_16 is
// fully detailed by this package; HDL_32E shares the wire layout but has a
// different vertical-angle table and channel count (see verticalangles.go).
type Sensor uint8

const (
	SensorHDL32E Sensor = 0x21
	SensorVLP16  Sensor = 0x22
)

func (s Sensor) String() string {
	switch s {
	case SensorHDL32E:
		return "HDL-32E"
	case SensorVLP16:
		return "VLP-16"
	default:
		return "unknown"
	}
}

// channelCount returns the number of laser channels this sensor has: 16
// for VLP-16, 32 for HDL-32E.
func (s Sensor) channelCount() int {
	if s == SensorHDL32E {
		return hdl32EChannels
	}
	return vlp16Channels
}

func parseSensor(b uint8) (Sensor, error) {
	switch Sensor(b) {
	case SensorHDL32E, SensorVLP16:
		return Sensor(b), nil
	default:
		return 0, &ErrInvalidSensor{Value: b}
	}
}

// packetKind discriminates the two Packet alternatives. It is fixed at
// construction and never mutated afterward.
type packetKind int

const (
	kindData packetKind = iota
	kindPosition
)

// DataPacket is the payload of a Data variant Packet: 12 rotating data
// blocks, the sensor's reporting timestamp, its active return mode, and
// which sensor produced it.
type DataPacket struct {
	Blocks          [12]DataBlock
	TimestampMicros uint32
	ReturnMode      ReturnMode
	Sensor          Sensor
}

// PositionPacket is the payload of a Position variant Packet: the sensor's
// reporting timestamp and the raw, unparsed $GPRMC sentence it forwarded
// from its GNSS receiver. NMEA parsing happens lazily, see Packet.Position.
type PositionPacket struct {
	TimestampMicros uint32
	NMEASentence    string
}

// Packet is a decoded Velodyne capture payload: a Data packet or a
// Position packet, never both. The discriminator is immutable once
// constructed by Decode.
type Packet struct {
	kind     packetKind
	data     DataPacket
	position PositionPacket
}

// IsData reports whether this packet is the Data alternative.
func (p *Packet) IsData() bool { return p.kind == kindData }

// IsPosition reports whether this packet is the Position alternative.
func (p *Packet) IsPosition() bool { return p.kind == kindPosition }

// Timestamp returns the sensor's reported time-since-the-hour, with
// microsecond precision, regardless of which alternative this packet is.
func (p *Packet) Timestamp() time.Duration {
	if p.kind == kindData {
		return time.Duration(p.data.TimestampMicros) * time.Microsecond
	}
	return time.Duration(p.position.TimestampMicros) * time.Microsecond
}

// ReturnMode returns the Data packet's return mode and true, or the zero
// value and false if this is a Position packet.
func (p *Packet) ReturnMode() (ReturnMode, bool) {
	if p.kind != kindData {
		return 0, false
	}
	return p.data.ReturnMode, true
}

// SensorTag returns the Data packet's sensor tag and true, or the zero
// value and false if this is a Position packet.
func (p *Packet) SensorTag() (Sensor, bool) {
	if p.kind != kindData {
		return 0, false
	}
	return p.data.Sensor, true
}

// DataBlocks returns the Data packet's 12 blocks and true, or the zero
// value and false if this is a Position packet.
func (p *Packet) DataBlocks() ([12]DataBlock, bool) {
	if p.kind != kindData {
		return [12]DataBlock{}, false
	}
	return p.data.Blocks, true
}

// NMEA returns the Position packet's raw, unparsed $GPRMC sentence and
// true, or the empty string and false if this is a Data packet.
func (p *Packet) NMEA() (string, bool) {
	if p.kind != kindPosition {
		return "", false
	}
	return p.position.NMEASentence, true
}

// Position parses the Position packet's raw sentence into a structured
// NmeaPosition on demand: a malformed sentence never poisons the
// enclosing Packet, only this call fails. ok is false if this is a Data
// packet.
func (p *Packet) Position() (pos NmeaPosition, err error, ok bool) {
	if p.kind != kindPosition {
		return NmeaPosition{}, nil, false
	}
	pos, err = ParseGPRMC(p.position.NMEASentence)
	return pos, err, true
}

// Classify inspects payload[248:254] to decide whether a capture payload
// is the Data or the Position alternative. Data packets encode a non-zero
// fingerprint in their data blocks; Position packets always carry the
// ASCII marker "$GPRMC" at this fixed absolute offset, so that marker is
// the one authoritative signal. Classify depends only on those six bytes
// (property P6): the rest of the payload never changes its answer.
func Classify(payload []byte) (isPosition bool, err error) {
	if len(payload) < CapturePayloadSize {
		return false, &ErrTooShort{Need: CapturePayloadSize, Got: len(payload)}
	}
	return bytes.Equal(payload[gprmcOffset:gprmcOffset+len(gprmcMagic)], gprmcMagic), nil
}

// Decode classifies a raw capture payload and parses its internal
// structure. The payload is a CapturePayloadSize-byte capture: a 42-byte
// capture header followed by the sensor's own 1206-byte payload. A shorter
// payload fails with ErrTooShort; bytes past CapturePayloadSize are ignored.
// Decode either returns a fully-formed Packet or an error; it never
// returns a partially decoded result.
func Decode(payload []byte) (*Packet, error) {
	isPosition, err := Classify(payload)
	if err != nil {
		return nil, err
	}
	if isPosition {
		return decodePositionPacket(payload)
	}
	return decodeDataPacket(payload)
}
