// Copyright 2026 coilwind Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pool runs a batch of independent jobs across a bounded number of
// goroutines, in the same split-and-dispatch spirit as a SIMD tail loop:
// queue every job index on a channel, let a fixed number of workers take
// indices from it one at a time, and wait for all of them. Here the
// "lanes" are goroutines instead of vector elements (spec §5).
package pool

import "sync"

// Run executes fn(i) for every i in [0, n) across at most workers
// goroutines, blocking until every call returns. workers <= 0 means
// unbounded (one goroutine per job). Run does not propagate panics from fn;
// callers whose fn can fail should report failures through their own
// closed-over slice rather than relying on Run to surface them.
func Run(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 || workers > n {
		workers = n
	}

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}
	wg.Wait()
}
