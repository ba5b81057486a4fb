package velodyne

import (
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

const (
	vlp16Channels  = 16
	hdl32EChannels = 32
)

//go:embed sensor_configs/*.csv
var embeddedVerticalAngles embed.FS

// VerticalAngleVLP16 gives the firing-order vertical angle, in degrees,
// for each of the VLP-16's 16 channels. This is the firing ORDER table,
// not a sorted one: channel index must not be re-sorted before use.
//
//	angle(c) = c        if c is odd
//	angle(c) = -15 + c  if c is even
var VerticalAngleVLP16 = func() [vlp16Channels]float32 {
	var t [vlp16Channels]float32
	for c := 0; c < vlp16Channels; c++ {
		if c%2 == 1 {
			t[c] = float32(c)
		} else {
			t[c] = float32(-15 + c)
		}
	}
	return t
}()

// VerticalAngleHDL32E gives the manufacturer-published vertical angle, in
// degrees, for each of the HDL-32E's 32 channels in firing order. This is
// the standard firing-group order Velodyne documents for the sensor and has
// not been independently verified against a live unit in this environment.
var VerticalAngleHDL32E = [hdl32EChannels]float32{
	-30.67, -9.33, -29.33, -8.00, -28.00, -6.66, -26.66, -5.33,
	-25.33, -4.00, -24.00, -2.67, -22.67, -1.33, -21.33, 0.00,
	-20.00, 1.33, -18.67, 2.67, -17.33, 4.00, -16.00, 5.33,
	-14.67, 6.67, -13.33, 8.00, -12.00, 9.33, -10.67, 10.67,
}

// verticalAngle returns the vertical angle for a channel of the given
// sensor. For VLP-16 the channel is 0..15 into the 16-firing block
// sequence; for HDL-32E it is the flattened 0..31 firing index within a
// block (sequence*16+channel), since the HDL-32E fires all 32 lasers in a
// single group per block instead of two 16-laser sequences.
func verticalAngle(sensor Sensor, flatChannel int) float32 {
	if sensor == SensorHDL32E {
		return VerticalAngleHDL32E[flatChannel%hdl32EChannels]
	}
	return VerticalAngleVLP16[flatChannel%vlp16Channels]
}

// LoadVerticalAngleTable loads a per-channel vertical-angle override table
// from an embedded CSV resource named sensor_configs/<name>.csv, with a
// header row "channel,elevation_degrees" followed by one row per channel.
// It exists for calibration tables that differ from a sensor's published
// defaults (worn units, factory recalibration) without requiring a code
// change. The table is only returned: Packet.Points does not consult it and
// always projects with VerticalAngleVLP16 or VerticalAngleHDL32E.
func LoadVerticalAngleTable(name string, channels int) ([]float32, error) {
	f, err := embeddedVerticalAngles.Open("sensor_configs/" + name + ".csv")
	if err != nil {
		return nil, fmt.Errorf("velodyne: open vertical angle table %q: %w", name, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("velodyne: read vertical angle table %q: %w", name, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("velodyne: vertical angle table %q is empty", name)
	}

	header := records[0]
	if len(header) != 2 || strings.ToLower(header[0]) != "channel" || strings.ToLower(header[1]) != "elevation_degrees" {
		return nil, fmt.Errorf("velodyne: vertical angle table %q: expected header channel,elevation_degrees", name)
	}

	table := make([]float32, channels)
	seen := make([]bool, channels)
	for i, rec := range records[1:] {
		if len(rec) != 2 {
			return nil, fmt.Errorf("velodyne: vertical angle table %q: row %d: expected 2 fields", name, i+2)
		}
		channel, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("velodyne: vertical angle table %q: row %d: invalid channel: %w", name, i+2, err)
		}
		elevation, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("velodyne: vertical angle table %q: row %d: invalid elevation: %w", name, i+2, err)
		}
		if channel < 0 || channel >= channels {
			return nil, fmt.Errorf("velodyne: vertical angle table %q: channel %d out of range 0..%d", name, channel, channels-1)
		}
		table[channel] = float32(elevation)
		seen[channel] = true
	}
	for c, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("velodyne: vertical angle table %q: missing channel %d", name, c)
		}
	}
	return table, nil
}
