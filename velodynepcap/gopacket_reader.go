//go:build pcap
// +build pcap

package velodynepcap

import (
	"fmt"
	"io"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

// gopacketReader implements reader against a real libpcap capture file.
// Isolated behind the "pcap" build tag because gopacket/pcap links against
// libpcap via cgo.
type gopacketReader struct {
	handle *pcap.Handle
	source *gopacket.PacketSource
}

func (r *gopacketReader) Open(filename string) error {
	handle, err := pcap.OpenOffline(filename)
	if err != nil {
		return fmt.Errorf("pcap.OpenOffline: %w", err)
	}
	r.handle = handle
	r.source = gopacket.NewPacketSource(handle, handle.LinkType())
	return nil
}

func (r *gopacketReader) SetBPFFilter(filter string) error {
	return r.handle.SetBPFFilter(filter)
}

func (r *gopacketReader) NextPacket() ([]byte, time.Time, error) {
	packet, err := r.source.NextPacket()
	if err != nil {
		if err == io.EOF {
			return nil, time.Time{}, io.EOF
		}
		return nil, time.Time{}, err
	}

	// velodyne.Decode expects the fixed 42-byte Ethernet+IP+UDP capture
	// header still attached ahead of the sensor's own payload, so this
	// returns the packet's raw captured bytes rather than udp.Payload —
	// the BPF filter already guarantees every packet here is UDP.
	if packet.Layer(layers.LayerTypeUDP) == nil {
		return nil, packet.Metadata().Timestamp, nil
	}
	return packet.Data(), packet.Metadata().Timestamp, nil
}

func (r *gopacketReader) LinkType() int {
	return int(r.handle.LinkType())
}

func (r *gopacketReader) Close() {
	r.handle.Close()
}

// OpenFile opens a pcap/pcapng capture file and returns a Source that
// yields the raw captured UDP packets, capture header included, on udpPort
// (2368 for the sensor's Data
// and Position packets, by Velodyne convention) in file order.
func OpenFile(path string, udpPort int) (*FileSource, error) {
	return newFileSource(&gopacketReader{}, path, udpPort)
}
