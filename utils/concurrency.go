package utils

import (
	"context"
	"sync"

	"github.com/CPU-commits/Intranet_BAcademix/res"
	"golang.org/x/sync/semaphore"
)

// Concurrency calls do once per index in [0, count) with at most weight
// calls running. After the first setError no new call is started and that
// error is returned.
func Concurrency(
	weight int64,
	count int,
	do func(index int, setError func(errRes *res.ErrorRes)),
) *res.ErrorRes {
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr *res.ErrorRes

	sem := semaphore.NewWeighted(weight)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setError := func(errRes *res.ErrorRes) {
		if errRes == nil {
			return
		}
		once.Do(func() {
			firstErr = errRes
			cancel()
		})
	}
	for i := 0; i < count; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		if ctx.Err() != nil {
			sem.Release(1)
			break
		}
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			defer sem.Release(1)

			do(index, setError)
		}(i)
	}
	wg.Wait()
	return firstErr
}
