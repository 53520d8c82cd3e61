package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"lfg-site/internal/models"
)

const maxRetries = 3

// Notifier delivers a lead to the sales inbox.
type Notifier interface {
	SendLeadNotification(ctx context.Context, lead models.LeadNotification) error
}

// Pool drains lead notifications in the background so SMTP latency never
// holds up a contact response.
type Pool struct {
	queue       Queue
	notifier    Notifier
	workerCount int
	popTimeout  time.Duration
	popBackoff  time.Duration // pause after a failed Pop
	backoffBase time.Duration
	onResult    func(outcome string)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPool(queue Queue, notifier Notifier, workerCount int) *Pool {
	if workerCount <= 0 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		queue:       queue,
		notifier:    notifier,
		workerCount: workerCount,
		popTimeout:  5 * time.Second,
		popBackoff:  time.Second,
		backoffBase: time.Second,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// OnResult registers a hook called with "sent", "retried" or "failed".
func (p *Pool) OnResult(fn func(outcome string)) { p.onResult = fn }

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	slog.Info("started lead notification workers", "count", p.workerCount)
}

// Stop ends the workers after their current job.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
}

// Enqueue schedules a notification for lead.
func (p *Pool) Enqueue(ctx context.Context, lead models.LeadNotification) error {
	return p.queue.Push(ctx, models.LeadJob{ID: uuid.New(), Lead: lead})
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			slog.Debug("lead worker shutting down", "worker", id)
			return
		default:
		}

		job, err := p.queue.Pop(p.ctx, p.popTimeout)
		if err != nil {
			if p.ctx.Err() != nil {
				return
			}
			slog.Warn("lead queue pop failed", "worker", id, "error", err)
			select {
			case <-p.ctx.Done():
				return
			case <-time.After(p.popBackoff):
			}
			continue
		}
		if job == nil {
			continue // Timeout, retry
		}

		p.process(job)
	}
}

func (p *Pool) process(job *models.LeadJob) {
	ctx, cancel := context.WithTimeout(p.ctx, 30*time.Second)
	defer cancel()

	err := p.notifier.SendLeadNotification(ctx, job.Lead)
	if err == nil {
		p.report("sent")
		slog.Info("lead notification sent", "job", job.ID)
		return
	}
	p.handleFailure(job, err)
}

func (p *Pool) handleFailure(job *models.LeadJob, err error) {
	job.RetryCount++

	if job.RetryCount >= maxRetries {
		// Max retries reached
		p.report("failed")
		slog.Error("lead notification failed permanently", "job", job.ID, "attempts", job.RetryCount, "error", err)
		return
	}

	p.report("retried")
	slog.Warn("lead notification failed, retrying", "job", job.ID, "attempt", job.RetryCount, "error", err)

	// Re-queue after backoff
	retry := *job
	backoff := time.Duration(1<<uint(job.RetryCount)) * p.backoffBase
	time.AfterFunc(backoff, func() {
		if p.ctx.Err() != nil {
			return
		}
		if err := p.queue.Push(context.Background(), retry); err != nil {
			slog.Error("failed to re-queue lead notification", "job", retry.ID, "error", err)
		}
	})
}

func (p *Pool) report(outcome string) {
	if p.onResult != nil {
		p.onResult(outcome)
	}
}
