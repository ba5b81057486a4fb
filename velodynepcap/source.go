package velodynepcap

import (
	"fmt"
	"io"
	"time"

	"github.com/banshee-data/go-velodyne/internal/monitoring"
)

// ErrSourceIO wraps an underlying read failure from a byte-stream source:
// the source's own I/O layer failed, as opposed to the decoder rejecting
// a malformed payload.
type ErrSourceIO struct {
	Err error
}

func (e *ErrSourceIO) Error() string { return fmt.Sprintf("velodynepcap: %v", e.Err) }
func (e *ErrSourceIO) Unwrap() error { return e.Err }

// Source is a byte-stream producer: each call to Next yields the next raw
// capture payload, io.EOF at end of stream, or a read error. Concrete
// sources deliver payloads in the order their underlying stream produced
// them; the velodyne package preserves that order end to end.
type Source interface {
	// Next returns the next capture payload, or io.EOF once the stream
	// is exhausted. Next is stateful and not safe for concurrent use;
	// callers that want to parallelise over packets should read payloads
	// from one goroutine and fan them out from there.
	Next() ([]byte, error)
	Close() error
}

// reader abstracts the packet-capture library call surface this package
// needs, so tests can inject a fake stream of packets without a real
// capture file. This mirrors the PCAPReader seam used for the same
// reason in other capture-driven packages.
type reader interface {
	Open(filename string) error
	SetBPFFilter(filter string) error
	NextPacket() (data []byte, timestamp time.Time, err error)
	LinkType() int
	Close()
}

// FileSource reads a pcap/pcapng capture file and yields the UDP payloads
// addressed to udpPort, each CapturePayloadSize bytes (a 42-byte capture
// header plus the sensor's own payload), in file order.
type FileSource struct {
	r       reader
	udpPort int
	opened  bool
}

// newFileSource is shared by the real (build-tagged) constructor and
// tests: it lets tests supply a fake reader without linking libpcap.
func newFileSource(r reader, path string, udpPort int) (*FileSource, error) {
	if err := r.Open(path); err != nil {
		return nil, &ErrSourceIO{Err: fmt.Errorf("open %s: %w", path, err)}
	}
	filter := fmt.Sprintf("udp port %d", udpPort)
	if err := r.SetBPFFilter(filter); err != nil {
		r.Close()
		return nil, &ErrSourceIO{Err: fmt.Errorf("set filter %q: %w", filter, err)}
	}
	return &FileSource{r: r, udpPort: udpPort, opened: true}, nil
}

// Next returns the next UDP payload captured on udpPort, skipping any
// other traffic the underlying capture happened to include despite the
// BPF filter (e.g. ARP broadcast noise some drivers still surface).
func (s *FileSource) Next() ([]byte, error) {
	for {
		data, _, err := s.r.NextPacket()
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, &ErrSourceIO{Err: err}
		}
		if len(data) == 0 {
			monitoring.Logf("velodynepcap: skipping zero-length capture past BPF filter")
			continue
		}
		return data, nil
	}
}

// Close releases the underlying capture handle. Calling Next after Close
// is not supported.
func (s *FileSource) Close() error {
	if !s.opened {
		return nil
	}
	s.opened = false
	s.r.Close()
	return nil
}
