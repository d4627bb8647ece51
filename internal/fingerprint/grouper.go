package fingerprint

import (
	"context"
	"runtime"
	"sort"
	"strconv"
	"sync"

	"sortd/internal/scan"
)

// Group is the set of entries sharing one (size, digest) pair. Entries are
// sorted by path; the first entry is the duplicate-mode survivor.
type Group struct {
	Size    int64
	Digest  string
	Entries []scan.Entry
}

// Failure records an entry whose content could not be read. The caller
// skips it; one unreadable file never stops grouping.
type Failure struct {
	Entry scan.Entry
	Err   error
}

// Result carries every content group with more than one member plus the
// per-entry read failures.
type Result struct {
	Groups   []Group
	Failures []Failure
}

// GroupDuplicates buckets entries by size first, then confirms equality by
// digesting only the entries whose size collides. Hashing fans out over a
// bounded worker pool; workers <= 0 uses one worker per CPU. Group order
// and membership order are deterministic regardless of which worker
// finishes first.
func GroupDuplicates(ctx context.Context, entries []scan.Entry, hasher Hasher, workers int) Result {
	bySize := make(map[int64][]scan.Entry)
	for _, entry := range entries {
		bySize[entry.Size] = append(bySize[entry.Size], entry)
	}

	var candidates []scan.Entry
	for _, bucket := range bySize {
		if len(bucket) > 1 {
			candidates = append(candidates, bucket...)
		}
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	type digested struct {
		entry  scan.Entry
		digest string
		err    error
	}

	jobs := make(chan scan.Entry)
	results := make([]digested, 0, len(candidates))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				digest, err := hasher.Sum(entry.Path)
				mu.Lock()
				results = append(results, digested{entry: entry, digest: digest, err: err})
				mu.Unlock()
			}
		}()
	}

feed:
	for _, entry := range candidates {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- entry:
		}
	}
	close(jobs)
	wg.Wait()

	byContent := make(map[string]*Group)
	var out Result
	for _, r := range results {
		if r.err != nil {
			out.Failures = append(out.Failures, Failure{Entry: r.entry, Err: r.err})
			continue
		}
		key := groupKey(r.entry.Size, r.digest)
		group, ok := byContent[key]
		if !ok {
			group = &Group{Size: r.entry.Size, Digest: r.digest}
			byContent[key] = group
		}
		group.Entries = append(group.Entries, r.entry)
	}

	for _, group := range byContent {
		if len(group.Entries) < 2 {
			continue
		}
		sort.Slice(group.Entries, func(i, j int) bool {
			return group.Entries[i].Path < group.Entries[j].Path
		})
		out.Groups = append(out.Groups, *group)
	}
	sort.Slice(out.Groups, func(i, j int) bool {
		return out.Groups[i].Entries[0].Path < out.Groups[j].Entries[0].Path
	})
	sort.Slice(out.Failures, func(i, j int) bool {
		return out.Failures[i].Entry.Path < out.Failures[j].Entry.Path
	})
	return out
}

func groupKey(size int64, digest string) string {
	return digest + "/" + strconv.FormatInt(size, 10)
}
