//go:build !pcap
// +build !pcap

package velodynepcap

import "fmt"

// OpenFile is a stub when libpcap support is disabled. Rebuild with
// -tags=pcap (and libpcap installed) to read real capture files; tests and
// callers that already have in-memory payloads can use Source directly
// without OpenFile at all.
func OpenFile(path string, udpPort int) (*FileSource, error) {
	return nil, fmt.Errorf("velodynepcap: pcap support not enabled: rebuild with -tags=pcap")
}
