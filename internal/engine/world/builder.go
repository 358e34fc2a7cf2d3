package world

import "sync"

type meshJob struct {
	key      ChunkKey
	snapshot *Chunk
}

type meshResult struct {
	key     ChunkKey
	mesh    *Mesh
	version uint64 // chunk content version the snapshot was taken at
}

// BuilderPool meshes chunk snapshots off the world goroutine. Jobs carry
// an immutable copy of the chunk; completed meshes are handed back over
// a channel and published by the world with a per-update budget, so a
// frame never pays for more than a bounded number of uploads.
type BuilderPool struct {
	jobs    chan meshJob
	results chan meshResult
	done    chan struct{}

	wg   sync.WaitGroup
	once sync.Once
}

// NewBuilderPool starts `workers` mesh workers with the given job queue
// depth.
func NewBuilderPool(workers, queue int) *BuilderPool {
	if workers < 1 {
		workers = 1
	}
	if queue < 1 {
		queue = workers * 4
	}
	p := &BuilderPool{
		jobs:    make(chan meshJob, queue),
		results: make(chan meshResult, queue),
		done:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *BuilderPool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		res := meshResult{
			key:     job.key,
			mesh:    job.snapshot.BuildMesh(),
			version: job.snapshot.Version(),
		}
		select {
		case p.results <- res:
		case <-p.done:
			return
		}
	}
}

// Submit enqueues a job without blocking. False means the queue is full
// and the caller should retry on a later update.
func (p *BuilderPool) Submit(job meshJob) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// TryResult pops one completed build without blocking.
func (p *BuilderPool) TryResult() (meshResult, bool) {
	select {
	case res := <-p.results:
		return res, true
	default:
		return meshResult{}, false
	}
}

// Shutdown stops accepting jobs and waits for in-flight builds. Results
// still queued are discarded with the pool.
func (p *BuilderPool) Shutdown() {
	p.once.Do(func() {
		close(p.jobs)
		close(p.done)
	})
	p.wg.Wait()
}
