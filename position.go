package velodyne

const (
	positionTimestampOffset = captureHeaderSize + 198 // = 240
	positionPaddingSize     = 4
	positionSentenceSize    = 72
)

// decodePositionPacket parses the Position-packet wire layout. Decode has
// already confirmed "$GPRMC" sits at absolute offset 248 (= 42+206), which
// is relative offset 8 from positionTimestampOffset (240): 4 bytes of
// timestamp plus 4 bytes of padding.
func decodePositionPacket(payload []byte) (*Packet, error) {
	r := newByteReader(payload)
	if err := r.setPositionOffset(positionTimestampOffset); err != nil {
		return nil, err
	}

	timestampMicros, err := r.readU32()
	if err != nil {
		return nil, err
	}

	if err := r.skip(positionPaddingSize); err != nil {
		return nil, err
	}

	sentence, err := r.readString(positionSentenceSize)
	if err != nil {
		return nil, err
	}

	return &Packet{
		kind: kindPosition,
		position: PositionPacket{
			TimestampMicros: timestampMicros,
			NMEASentence:    sentence,
		},
	}, nil
}

// setPositionOffset seeks the reader to an absolute offset, failing if
// that offset is past the end of the buffer.
func (r *byteReader) setPositionOffset(offset int) error {
	if offset > len(r.buf) {
		return &ErrTooShort{Need: offset, Got: len(r.buf)}
	}
	r.setPosition(offset)
	return nil
}
