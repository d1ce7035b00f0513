package fimage

import (
	"image"
	"runtime"
	"sync"
)

// parallelForEachCell fans per-cell work out over the available CPUs,
// splitting the field by rows. The callback must not touch cells other than
// the one it is given.
func parallelForEachCell(size image.Point, f func(x, y int)) {
	numWorkers := runtime.NumCPU()
	if numWorkers > size.Y {
		numWorkers = size.Y
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	chunk := (size.Y + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup
	for start := 0; start < size.Y; start += chunk {
		end := start + chunk
		if end > size.Y {
			end = size.Y
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for y := start; y < end; y++ {
				for x := 0; x < size.X; x++ {
					f(x, y)
				}
			}
		}(start, end)
	}
	wg.Wait()
}
