package common

import (
	"fmt"
	"io"
	"time"
)

// RuntimeBenchmark runs functionUnderTest and prints how long it took to out.
// A nil out discards the timing line.
func RuntimeBenchmark[T any](out io.Writer, label string, functionUnderTest func() (T, error)) (T, error) {
	start := time.Now()
	result, err := functionUnderTest()
	elapsed := time.Since(start)
	if out != nil {
		fmt.Fprintf(out, "[BENCH] %s took %s\n", label, elapsed)
	}
	return result, err
}
