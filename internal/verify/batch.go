package verify

import (
	"context"
	"sync"
	"time"

	"github.com/mcpsync/mcpsync/internal/errors"
	"github.com/mcpsync/mcpsync/internal/mcp"
)

// VerifyAll checks every server concurrently and returns one result per
// input, in input order. A failing, hanging, or panicking server never
// affects the others; a panic is converted into an error result for that
// server alone.
func VerifyAll(ctx context.Context, v *Verifier, servers []*mcp.Server) []Result {
	results := make([]Result, len(servers))

	var wg sync.WaitGroup
	for i, srv := range servers {
		wg.Add(1)
		go func() {
			start := time.Now()
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = Result{
						Server:         srv,
						Status:         StatusError,
						Err:            errors.Newf("verification panicked: %v", r),
						ConnectionTime: time.Since(start),
					}
				}
			}()
			results[i] = v.Verify(ctx, srv)
		}()
	}
	wg.Wait()

	return results
}
