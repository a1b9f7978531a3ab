package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Uploader exposes the subset of image host functionality required by the pool.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// UploadPool bounds the number of concurrent image uploads. Product creation
// submits one job per image and waits; the pool size caps how many uploads
// hit the image host at once across all requests.
type UploadPool struct {
	uploader Uploader
	workers  int
	logger   *slog.Logger

	jobs   chan uploadJob
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

type uploadJob struct {
	ctx      context.Context
	data     []byte
	filename string
	result   chan uploadResult
}

type uploadResult struct {
	url string
	err error
}

// NewUploadPool constructs the pool with the given concurrency.
func NewUploadPool(uploader Uploader, workers int, logger *slog.Logger) *UploadPool {
	if workers <= 0 {
		workers = 1
	}
	return &UploadPool{
		uploader: uploader,
		workers:  workers,
		logger:   logger,
		jobs:     make(chan uploadJob, workers*2),
	}
}

// Start launches the worker goroutines.
func (p *UploadPool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}
}

// Stop waits for all workers to finish.
func (p *UploadPool) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// Upload queues the image and waits for a worker to push it to the host.
func (p *UploadPool) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	job := uploadJob{ctx: ctx, data: data, filename: filename, result: make(chan uploadResult, 1)}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case p.jobs <- job:
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-job.result:
		return res.url, res.err
	}
}

func (p *UploadPool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			url, err := p.uploader.Upload(job.ctx, job.data, job.filename)
			if err != nil {
				p.logger.Error("image upload failed",
					slog.String("filename", job.filename),
					slog.String("error", err.Error()),
				)
			}
			job.result <- uploadResult{url: url, err: err}
		}
	}
}
