package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPool(t *testing.T) {
	bp := NewBufferPool(0)
	assert.Equal(t, 4096, bp.size)

	buf := bp.Get()
	assert.Zero(t, buf.Len())
	buf.WriteString("leftover")
	bp.Put(buf)

	assert.Zero(t, bp.Get().Len(), "buffers come back empty")
	bp.Put(nil)
}

func TestDetach(t *testing.T) {
	bp := NewBufferPool(16)
	buf := bp.Get()
	buf.WriteString("keep me")

	out := Detach(buf)
	bp.Put(buf)
	buf.WriteString("overwritten")

	assert.Equal(t, []byte("keep me"), out)
}
