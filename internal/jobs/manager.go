package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"featureselect/internal/search"
)

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// RunFunc performs the work of a job. It should honour ctx and report
// through job.AddLog and job.SetProgress.
type RunFunc func(ctx context.Context, job *Job) (*search.Result, error)

// Job is one background search run.
type Job struct {
	ID          string
	Type        string
	Status      JobStatus
	Progress    float64
	StartTime   time.Time
	EndTime     *time.Time
	Error       error
	Result      *search.Result
	Description string
	Logs        []string
	cancelFunc  func()
	done        chan struct{}
	mu          sync.RWMutex
}

type Manager struct {
	jobs map[string]*Job
	seq  int
	mu   sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		jobs: make(map[string]*Job),
	}
}

func (m *Manager) CreateJob(jobType, description string) *Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	jobID := fmt.Sprintf("job_%s_%d", jobType, m.seq)
	job := &Job{
		ID:          jobID,
		Type:        jobType,
		Status:      JobPending,
		StartTime:   time.Now(),
		Description: description,
		Logs:        []string{},
		done:        make(chan struct{}),
	}

	m.jobs[jobID] = job
	return job
}

// Start runs fn on its own goroutine under a cancellable context derived
// from parent.
func (m *Manager) Start(parent context.Context, job *Job, fn RunFunc) {
	ctx, cancel := context.WithCancel(parent)
	job.SetCancelFunc(cancel)
	job.SetStatus(JobRunning)

	go func() {
		defer close(job.done)
		defer cancel()

		result, err := fn(ctx, job)
		switch {
		case errors.Is(err, context.Canceled):
			job.AddLog("cancelled")
			job.SetStatus(JobCancelled)
		case err != nil:
			job.AddLog(fmt.Sprintf("failed: %v", err))
			job.SetError(err)
		default:
			job.SetResult(result)
			job.SetProgress(1)
			job.SetStatus(JobCompleted)
		}
	}()
}

func (m *Manager) GetJob(jobID string) (*Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	return job, exists
}

// ListJobs returns every job ordered by creation.
func (m *Manager) ListJobs() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := make([]*Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].StartTime.Before(jobs[j].StartTime) ||
			(jobs[i].StartTime.Equal(jobs[j].StartTime) && jobs[i].ID < jobs[j].ID)
	})
	return jobs
}

func (m *Manager) CancelJob(jobID string) error {
	job, exists := m.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job %s not found", jobID)
	}

	job.mu.Lock()
	defer job.mu.Unlock()

	if job.Status != JobRunning {
		return fmt.Errorf("job %s is not running", jobID)
	}

	if job.cancelFunc != nil {
		job.cancelFunc()
	}

	return nil
}

func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	if status == JobCompleted || status == JobFailed || status == JobCancelled {
		now := time.Now()
		j.EndTime = &now
	}
}

func (j *Job) SetProgress(progress float64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress = progress
}

func (j *Job) AddLog(message string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	timestamp := time.Now().Format("15:04:05")
	j.Logs = append(j.Logs, fmt.Sprintf("[%s] %s", timestamp, message))
}

func (j *Job) SetError(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Error = err
	j.Status = JobFailed
	now := time.Now()
	j.EndTime = &now
}

func (j *Job) SetResult(result *search.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Result = result
}

func (j *Job) SetCancelFunc(cancelFunc func()) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cancelFunc = cancelFunc
}

func (j *Job) GetStatus() JobStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Status
}

func (j *Job) GetProgress() float64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Progress
}

func (j *Job) GetResult() *search.Result {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Result
}

func (j *Job) GetError() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Error
}

func (j *Job) GetLogs() []string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	logs := make([]string, len(j.Logs))
	copy(logs, j.Logs)
	return logs
}

// Done is closed once the job's goroutine has returned.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job finishes or ctx ends.
func (j *Job) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
