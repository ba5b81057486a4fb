package velodynepcap

import (
	"io"
	"sync"
	"time"
)

// mockReader implements reader for tests: it plays back a fixed list of
// payloads without touching libpcap.
type mockReader struct {
	mu sync.Mutex

	payloads [][]byte
	index    int

	openedFile    string
	appliedFilter string
	closed        bool
	openErr       error
	filterErr     error
}

func (m *mockReader) Open(filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openedFile = filename
	return m.openErr
}

func (m *mockReader) SetBPFFilter(filter string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appliedFilter = filter
	return m.filterErr
}

func (m *mockReader) NextPacket() ([]byte, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, time.Time{}, io.ErrClosedPipe
	}
	if m.index >= len(m.payloads) {
		return nil, time.Time{}, io.EOF
	}
	p := m.payloads[m.index]
	m.index++
	return p, time.Time{}, nil
}

func (m *mockReader) LinkType() int { return 1 }

func (m *mockReader) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}
