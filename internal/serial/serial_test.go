package serial

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritingSCWith0x81EmitsSBAndClearsSC(t *testing.T) {
	var buf bytes.Buffer
	var captured []byte
	tap := New(&buf, func(b byte) { captured = append(captured, b) })

	tap.Write(0xFF01, 'A')
	tap.Write(0xFF02, 0x81)

	assert.Equal(t, "A", buf.String())
	assert.Equal(t, []byte{'A'}, captured)
	assert.Equal(t, uint8(0), tap.Read(0xFF02))
}

func TestWritingSCWithoutTransferBitDoesNotEmit(t *testing.T) {
	var buf bytes.Buffer
	tap := New(&buf, nil)

	tap.Write(0xFF01, 'Z')
	tap.Write(0xFF02, 0x01)

	assert.Empty(t, buf.String())
	assert.Equal(t, uint8(0x01), tap.Read(0xFF02))
}

func TestReadReflectsLastWrittenSB(t *testing.T) {
	tap := New(nil, nil)
	tap.Write(0xFF01, 0x42)
	assert.Equal(t, uint8(0x42), tap.Read(0xFF01))
}
