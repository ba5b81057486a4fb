// Package velodynepcap is a reference byte-stream source for the
// velodyne package: it walks a libpcap-format capture file and yields
// successive raw capture payloads, ready to hand to velodyne.Decode.
//
// Reading packets off a capture file is an external collaborator from the
// core decoder's point of view (velodyne does no I/O of its own); this
// package is the one concrete implementation the core's own
// documentation names.
package velodynepcap
