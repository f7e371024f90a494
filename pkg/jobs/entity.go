package jobs

import (
	"errors"
	"time"

	"github.com/artem13815/icebreaker/pkg/agent"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

var (
	ErrNotFound        = errors.New("task not found")
	ErrExpired         = errors.New("task results expired")
	ErrExists          = errors.New("task already exists")
	ErrAlreadyFinished = errors.New("task already finished")
	ErrQueueFull       = errors.New("task queue is full")
	ErrStopped         = errors.New("task runner stopped")
)

// Job: асинхронная задача генерации. Создаётся при отправке в статусе processing
// и ровно один раз переводится воркером в completed или error.
type Job struct {
	TaskID      string        `json:"task_id"`
	Status      Status        `json:"status"`
	Name        string        `json:"name"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Result      *agent.Result `json:"result,omitempty"`
	Error       string        `json:"error,omitempty"`
}

func (j Job) Finished() bool { return j.Status != StatusProcessing }

// Expired reports whether a finished job is older than retention.
func (j Job) Expired(now time.Time, retention time.Duration) bool {
	return j.CompletedAt != nil && now.Sub(*j.CompletedAt) > retention
}
