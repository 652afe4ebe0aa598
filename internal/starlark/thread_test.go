package starlark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreadPool_Reuse(t *testing.T) {
	pool := NewThreadPool(1, nil)
	assert.Equal(t, 0, pool.Size())

	a := pool.Get("a")
	b := pool.Get("b")
	assert.NotSame(t, a, b)
	assert.Equal(t, "a", a.Name)

	pool.Put(a)
	pool.Put(b)
	assert.Equal(t, 1, pool.Size(), "pool keeps at most maxSize threads")

	c := pool.Get("c")
	assert.Same(t, a, c)
	assert.Equal(t, "c", c.Name)
	assert.Equal(t, 0, pool.Size())
}
