package grammar

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"grammar-backend/internal/shared/telemetry"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func captureLogs(t *testing.T) *syncBuffer {
	t.Helper()
	buf := &syncBuffer{}
	telemetry.SetOutput(buf)
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })
	return buf
}
