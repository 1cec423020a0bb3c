package compiler

import "sync"

// Compiler pool for reusing compiler instances across runs
var compilerPool = sync.Pool{
	New: func() interface{} {
		return New()
	},
}

// GetCompiler retrieves a compiler from the pool. Its temporaries start at t0.
func GetCompiler() *Compiler {
	return compilerPool.Get().(*Compiler)
}

// PutCompiler returns a compiler to the pool after use
func PutCompiler(c *Compiler) {
	c.Reset()
	compilerPool.Put(c)
}

// Reset clears all per-run state, keeping slice capacity.
func (c *Compiler) Reset() {
	c.instructions = c.instructions[:0]
	c.unsupported = c.unsupported[:0]
	c.temps = 0
	c.fallbacks = 0
}
