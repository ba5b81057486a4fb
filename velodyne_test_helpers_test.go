package velodyne

import "encoding/binary"

// buildDataPayload assembles a full 1248-byte Data capture payload from
// already-decoded blocks, for use by tests across this package. The
// capture header is left zeroed; nothing in this package inspects it.
func buildDataPayload(blocks [blocksPerPacket]DataBlock, timestampMicros uint32, returnMode, sensor byte) []byte {
	payload := make([]byte, captureHeaderSize)
	for _, b := range blocks {
		payload = append(payload, encodeDataBlock(b)...)
	}

	tail := make([]byte, 4)
	binary.LittleEndian.PutUint32(tail, timestampMicros)
	payload = append(payload, tail...)
	payload = append(payload, returnMode, sensor)

	if len(payload) != CapturePayloadSize {
		panic("buildDataPayload: constructed payload has wrong size")
	}
	return payload
}

// buildPositionPayload assembles a full 1248-byte Position capture
// payload carrying the given sentence (NUL-padded to 72 bytes).
func buildPositionPayload(timestampMicros uint32, sentence string) []byte {
	payload := make([]byte, CapturePayloadSize)

	binary.LittleEndian.PutUint32(payload[positionTimestampOffset:], timestampMicros)
	// 4 bytes of padding already zero.
	copy(payload[positionTimestampOffset+8:], sentence)

	return payload
}

// filledBlock returns a DataBlock with a valid start identifier implicit
// (encodeDataBlock always writes it), the given azimuth, and every firing
// set to the given distance/reflectivity.
func filledBlock(azimuth float32, distance float32, reflectivity uint8) DataBlock {
	var b DataBlock
	b.Azimuth = azimuth
	for s := 0; s < sequencesPerBlock; s++ {
		for c := 0; c < recordsPerSequence; c++ {
			b.Firings[s][c] = DataRecord{ReturnDistanceMetres: distance, Reflectivity: reflectivity}
		}
	}
	return b
}
