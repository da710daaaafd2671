// Package hasher computes xxhash64 content checksums. The engine records a
// checksum in the audit log when an operation is confirmed, and audit
// verification re-hashes the classified files concurrently to detect
// out-of-band modification.
package hasher

import (
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"
)

// DefaultWorkers is the pool size used when SumAll is given a non-positive
// worker count.
const DefaultWorkers = 4

// SumFile returns the hex-encoded xxhash64 of the file content at path.
func SumFile(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Result is the outcome of hashing one path.
type Result struct {
	Path string
	Sum  string
	Err  error
}

// SumAll hashes every path using a bounded worker pool and returns results
// in input order. Individual failures are reported per path, not globally.
func SumAll(fs afero.Fs, paths []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create hash pool: %w", err)
	}
	defer pool.Release()

	results := make([]Result, len(paths))
	var wg sync.WaitGroup
	for i, p := range paths {
		i, p := i, p
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			sum, err := SumFile(fs, p)
			results[i] = Result{Path: p, Sum: sum, Err: err}
		})
		if submitErr != nil {
			wg.Done()
			results[i] = Result{Path: p, Err: fmt.Errorf("submit hash task: %w", submitErr)}
		}
	}
	wg.Wait()
	return results, nil
}
