// Package velodyne decodes the UDP wire packets emitted by spinning
// Velodyne LiDAR units (VLP-16 and HDL-32E), reconstructs 3D points from
// those packets, and correlates laser firings with the sensor's companion
// GNSS position packets.
//
// The package is a building block for higher-level point-cloud tools: it
// does no visualization, storage, or streaming of its own. Reading packets
// off a network interface or capture file is an external concern; see the
// velodynepcap subpackage for one concrete byte-stream source backed by a
// libpcap capture file.
//
// Decoding is pure and allocation-light: Decode borrows the input slice for
// the duration of the call and returns owned values, so a caller may reuse
// or free its read buffer immediately afterward.
package velodyne
