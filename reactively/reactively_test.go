package reactively

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalMemoEffect(t *testing.T) {
	/*
	   a  b
	   | /
	   c
	*/
	a := NewSignal(2)
	b := NewSignal(3)
	c := NewMemo(func() int { return a.Read() + b.Read() })

	assert.Equal(t, 5, c.Read())
	assert.Equal(t, 1, c.ExecCount())

	a.Write(10)
	assert.Equal(t, 13, c.Read())
	assert.Equal(t, 2, c.ExecCount())
}

func TestEffectRunsOnFlush(t *testing.T) {
	a := NewSignal(1)
	seen := 0
	NewEffect(func() {
		seen = a.Read()
	})

	assert.Equal(t, 0, seen, "effect has not run until Flush")
	Flush()
	assert.Equal(t, 1, seen)

	a.Write(2)
	Flush()
	assert.Equal(t, 2, seen)
}

func TestIsolateSuppressesDependency(t *testing.T) {
	a := NewSignal(10)
	readCount := 0
	m := NewMemo(func() int {
		readCount++
		return Isolate(func() int { return a.Read() })
	})

	assert.Equal(t, 10, m.Read())
	assert.Equal(t, 1, readCount)

	a.Write(11)
	assert.Equal(t, 10, m.Read(), "isolated read registered no dependency")
	assert.Equal(t, 1, readCount)
}
