package velodyne

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const nmeaFieldCount = 13

// NmeaPosition is a parsed $GPRMC sentence: UTC time and horizontal
// position from the sensor's companion GNSS receiver.
type NmeaPosition struct {
	DateTime             time.Time
	Valid                bool
	LatitudeDegrees      float64
	LongitudeDegrees     float64
	SpeedKnots           float32
	TrueCourseDegrees    float32
	VariationDegrees     float32
}

// ParseGPRMC parses an ASCII $GPRMC sentence of the form
// "$GPRMC,HHMMSS,A,ddmm.mmmm,N,dddmm.mmmm,W,speed,course,ddmmyy,var,E,M*HH"
// (exactly 13 comma-delimited fields; the trailing mode-indicator field M
// must be present but is not otherwise interpreted). Validation runs in a
// fixed order: field count, header, then checksum; only once all three pass
// are the fields parsed.
func ParseGPRMC(sentence string) (NmeaPosition, error) {
	fields := strings.Split(sentence, ",")
	if len(fields) != nmeaFieldCount {
		return NmeaPosition{}, &ErrNmeaMalformed{
			Reason: fmt.Sprintf("expected %d comma-delimited fields, got %d", nmeaFieldCount, len(fields)),
		}
	}

	if fields[0] != "$GPRMC" {
		return NmeaPosition{}, &ErrNmeaMalformed{Reason: fmt.Sprintf("expected header $GPRMC, got %q", fields[0])}
	}

	star := strings.LastIndexByte(sentence, '*')
	if star == -1 {
		return NmeaPosition{}, &ErrNmeaMalformed{Reason: "missing '*' checksum delimiter"}
	}
	dollar := strings.IndexByte(sentence, '$')
	if dollar == -1 {
		return NmeaPosition{}, &ErrNmeaMalformed{Reason: "missing leading '$'"}
	}

	if err := verifyChecksum(sentence, dollar, star); err != nil {
		return NmeaPosition{}, err
	}

	dateTime, err := parseNmeaDateTime(fields[9], fields[1])
	if err != nil {
		return NmeaPosition{}, err
	}

	lat, err := parseNmeaCoordinate(fields[3], 3)
	if err != nil {
		return NmeaPosition{}, err
	}
	if fields[4] == "S" {
		lat = -lat
	}

	lon, err := parseNmeaCoordinate(fields[5], 5)
	if err != nil {
		return NmeaPosition{}, err
	}
	if fields[6] == "W" {
		lon = -lon
	}

	speed, err := parseNmeaFloat(fields[7], 7)
	if err != nil {
		return NmeaPosition{}, err
	}

	course, err := parseNmeaFloat(fields[8], 8)
	if err != nil {
		return NmeaPosition{}, err
	}

	variation, err := parseNmeaFloat(fields[10], 10)
	if err != nil {
		return NmeaPosition{}, err
	}
	if fields[11] == "W" {
		variation = -variation
	}

	return NmeaPosition{
		DateTime:          dateTime,
		Valid:             fields[2] == "A",
		LatitudeDegrees:   lat,
		LongitudeDegrees:  lon,
		SpeedKnots:        float32(speed),
		TrueCourseDegrees: float32(course),
		VariationDegrees:  float32(variation),
	}, nil
}

// verifyChecksum recomputes the XOR of every byte strictly between '$' and
// '*' and compares it, as lowercase hex, against the two characters that
// follow '*'.
func verifyChecksum(sentence string, dollar, star int) error {
	if star+2 >= len(sentence) {
		return &ErrNmeaMalformed{Reason: "checksum suffix truncated"}
	}
	suffix := sentence[star+1 : star+3]

	var sum byte
	for i := dollar + 1; i < star; i++ {
		sum ^= sentence[i]
	}
	want := strings.ToLower(fmt.Sprintf("%02x", sum))
	got := strings.ToLower(suffix)
	if got != want {
		return &ErrNmeaMalformed{Reason: fmt.Sprintf("checksum mismatch: sentence says %s, computed %s", got, want)}
	}
	return nil
}

func parseNmeaFloat(raw string, field int) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ErrNmeaFieldParse{Field: field, Raw: raw, Err: err}
	}
	return v, nil
}

// parseNmeaCoordinate converts a ddmm.mmmm or dddmm.mmmm field to signed
// decimal degrees (the sign is applied by the caller from the adjacent
// hemisphere field): degrees = trunc(n/100); decimal = (n/100-degrees)*100/60.
func parseNmeaCoordinate(raw string, field int) (float64, error) {
	n, err := parseNmeaFloat(raw, field)
	if err != nil {
		return 0, err
	}
	degrees := float64(int(n / 100))
	minutes := n/100 - degrees
	return degrees + minutes*100/60, nil
}

// parseNmeaDateTime combines a ddmmyy date field and an HHMMSS time field
// into a single UTC instant.
func parseNmeaDateTime(dateField, timeField string) (time.Time, error) {
	if len(dateField) < 6 {
		return time.Time{}, &ErrNmeaFieldParse{Field: 9, Raw: dateField, Err: fmt.Errorf("expected 6 digits ddmmyy")}
	}
	if len(timeField) < 6 {
		return time.Time{}, &ErrNmeaFieldParse{Field: 1, Raw: timeField, Err: fmt.Errorf("expected at least 6 digits HHMMSS")}
	}

	day, err := strconv.Atoi(dateField[0:2])
	if err != nil {
		return time.Time{}, &ErrNmeaFieldParse{Field: 9, Raw: dateField, Err: err}
	}
	month, err := strconv.Atoi(dateField[2:4])
	if err != nil {
		return time.Time{}, &ErrNmeaFieldParse{Field: 9, Raw: dateField, Err: err}
	}
	year, err := strconv.Atoi(dateField[4:6])
	if err != nil {
		return time.Time{}, &ErrNmeaFieldParse{Field: 9, Raw: dateField, Err: err}
	}

	hour, err := strconv.Atoi(timeField[0:2])
	if err != nil {
		return time.Time{}, &ErrNmeaFieldParse{Field: 1, Raw: timeField, Err: err}
	}
	minute, err := strconv.Atoi(timeField[2:4])
	if err != nil {
		return time.Time{}, &ErrNmeaFieldParse{Field: 1, Raw: timeField, Err: err}
	}
	second, err := strconv.Atoi(timeField[4:6])
	if err != nil {
		return time.Time{}, &ErrNmeaFieldParse{Field: 1, Raw: timeField, Err: err}
	}

	return time.Date(2000+year, time.Month(month), day, hour, minute, second, 0, time.UTC), nil
}
