package velodyne

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// A VLP-16 Data packet with distinct, known block[0] and block[11] values
// decodes to a packet exposing those same values.
func TestDecodeDataPacket_PreservesBlockValues(t *testing.T) {
	var blocks [blocksPerPacket]DataBlock
	blocks[0] = filledBlock(229.70, 0, 0)
	blocks[0].Firings[0][0] = DataRecord{ReturnDistanceMetres: float32(3262) * distanceScale, Reflectivity: 4}
	for b := 1; b < blocksPerPacket; b++ {
		blocks[b] = filledBlock(float32(b)*10, 0, 0)
	}
	blocks[11].Firings[1][12] = DataRecord{ReturnDistanceMetres: float32(25735) * distanceScale, Reflectivity: 9}

	payload := buildDataPayload(blocks, 2_467_108_343, byte(ReturnModeStrongest), byte(SensorVLP16))

	pkt, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !pkt.IsData() || pkt.IsPosition() {
		t.Fatalf("expected Data packet")
	}

	gotBlocks, ok := pkt.DataBlocks()
	if !ok {
		t.Fatalf("DataBlocks: not a data packet")
	}

	if !almostEqual(float64(gotBlocks[0].Azimuth), 229.70, 0.01) {
		t.Errorf("block[0].Azimuth = %v, want 229.70", gotBlocks[0].Azimuth)
	}
	rec := gotBlocks[0].Firings[0][0]
	if !almostEqual(float64(rec.ReturnDistanceMetres), 6.524, 1e-3) {
		t.Errorf("block[0].firings[0][0].distance = %v, want 6.524", rec.ReturnDistanceMetres)
	}
	if rec.Reflectivity != 4 {
		t.Errorf("block[0].firings[0][0].reflectivity = %v, want 4", rec.Reflectivity)
	}

	rec2 := gotBlocks[11].Firings[1][12]
	if !almostEqual(float64(rec2.ReturnDistanceMetres), 51.470, 1e-3) {
		t.Errorf("block[11].firings[1][12].distance = %v, want 51.470", rec2.ReturnDistanceMetres)
	}
	if rec2.Reflectivity != 9 {
		t.Errorf("block[11].firings[1][12].reflectivity = %v, want 9", rec2.Reflectivity)
	}

	if pkt.Timestamp().Microseconds() != 2_467_108_343 {
		t.Errorf("timestamp = %v, want 2467108343us", pkt.Timestamp().Microseconds())
	}
	mode, ok := pkt.ReturnMode()
	if !ok || mode != ReturnModeStrongest {
		t.Errorf("return mode = %v, want Strongest", mode)
	}
	sensor, ok := pkt.SensorTag()
	if !ok || sensor != SensorVLP16 {
		t.Errorf("sensor = %v, want VLP-16", sensor)
	}
}

// A Position packet decodes to a packet preserving its timestamp and the
// exact NMEA sentence bytes it carried.
func TestDecodePositionPacket_PreservesTimestampAndSentence(t *testing.T) {
	sentence := "$GPRMC,214106,A,3707.8178,N,12139.2690,W,010.3,188.2,230715,013.8,E,D*05"
	payload := buildPositionPayload(2_467_110_195, sentence)

	pkt, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !pkt.IsPosition() || pkt.IsData() {
		t.Fatalf("expected Position packet")
	}
	if pkt.Timestamp().Microseconds() != 2_467_110_195 {
		t.Errorf("timestamp = %v, want 2467110195us", pkt.Timestamp().Microseconds())
	}
	got, ok := pkt.NMEA()
	if !ok {
		t.Fatalf("NMEA: not a position packet")
	}
	if got != sentence {
		t.Errorf("NMEA sentence = %q, want %q", got, sentence)
	}
}

func TestClassify_TooShort(t *testing.T) {
	_, err := Classify(make([]byte, 100))
	if _, ok := err.(*ErrTooShort); !ok {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}

// Classify depends only on bytes[248:254]; nothing else in the payload
// changes the outcome.
func TestClassify_DependsOnlyOnFingerprintBytes(t *testing.T) {
	a := make([]byte, CapturePayloadSize)
	b := make([]byte, CapturePayloadSize)
	for i := range a {
		a[i] = byte(i)
		b[i] = byte(255 - i)
	}
	copy(a[gprmcOffset:], "$GPRMC")
	copy(b[gprmcOffset:], "$GPRMC")

	posA, err := Classify(a)
	if err != nil {
		t.Fatal(err)
	}
	posB, err := Classify(b)
	if err != nil {
		t.Fatal(err)
	}
	if !posA || !posB {
		t.Fatalf("expected both payloads classified as Position")
	}
}

func TestDecode_InvalidSensorAndReturnMode(t *testing.T) {
	var blocks [blocksPerPacket]DataBlock
	for b := range blocks {
		blocks[b] = filledBlock(0, 0, 0)
	}

	payload := buildDataPayload(blocks, 0, 0xFF, byte(SensorVLP16))
	_, err := Decode(payload)
	if _, ok := err.(*ErrInvalidReturnMode); !ok {
		t.Fatalf("expected ErrInvalidReturnMode, got %v", err)
	}

	payload = buildDataPayload(blocks, 0, byte(ReturnModeStrongest), 0xFF)
	_, err = Decode(payload)
	if _, ok := err.(*ErrInvalidSensor); !ok {
		t.Fatalf("expected ErrInvalidSensor, got %v", err)
	}
}
