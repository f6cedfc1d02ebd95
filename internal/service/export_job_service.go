package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/jobs"
	"github.com/yunboheater/piano-studio-api/pkg/storage"
)

// ExportStatus tracks a schedule export job through its lifecycle.
type ExportStatus string

const (
	ExportStatusPending   ExportStatus = "pending"
	ExportStatusCompleted ExportStatus = "completed"
	ExportStatusFailed    ExportStatus = "failed"
)

// ExportJobView is the console-facing state of one export request. The
// download token is only set once the render completed.
type ExportJobView struct {
	ID            string       `json:"id"`
	Format        ExportFormat `json:"format"`
	Status        ExportStatus `json:"status"`
	DownloadToken string       `json:"downloadToken,omitempty"`
	ExpiresAt     *time.Time   `json:"expiresAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

type exportJob struct {
	view     ExportJobView
	filename string
}

// ExportJobService renders weekly schedules in the background and hands out
// signed download tokens. Job state is held in memory; exports are cheap to
// re-request after a restart.
type ExportJobService struct {
	renderer *ScheduleExportService
	store    *storage.LocalStorage
	signer   *storage.Signer
	queue    *jobs.Queue
	logger   *zap.Logger

	mu      sync.RWMutex
	byID    map[string]*exportJob
	fileTTL time.Duration
}

// NewExportJobService constructs ExportJobService. fileTTL bounds how long
// rendered files stay on disk before cleanup removes them.
func NewExportJobService(renderer *ScheduleExportService, store *storage.LocalStorage, signer *storage.Signer, fileTTL time.Duration, logger *zap.Logger) *ExportJobService {
	if fileTTL <= 0 {
		fileTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ExportJobService{
		renderer: renderer,
		store:    store,
		signer:   signer,
		logger:   logger,
		byID:     make(map[string]*exportJob),
		fileTTL:  fileTTL,
	}
	s.queue = jobs.NewQueue("schedule-export", s.handle, jobs.QueueConfig{Workers: 1, Logger: logger})
	return s
}

// Start launches the render worker and the periodic file cleanup.
func (s *ExportJobService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	go s.cleanupLoop(ctx)
}

// Stop drains the render worker.
func (s *ExportJobService) Stop() {
	s.queue.Stop()
}

// Request queues a schedule export and returns its pending state.
func (s *ExportJobService) Request(format ExportFormat) (*ExportJobView, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	job := &exportJob{
		view: ExportJobView{
			ID:        uuid.NewString(),
			Format:    format,
			Status:    ExportStatusPending,
			CreatedAt: time.Now().UTC(),
		},
	}
	s.mu.Lock()
	s.byID[job.view.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.view.ID, Type: string(format)}); err != nil {
		s.mu.Lock()
		delete(s.byID, job.view.ID)
		s.mu.Unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export")
	}

	view := job.view
	return &view, nil
}

// Status returns the current state of an export request.
func (s *ExportJobService) Status(id string) (*ExportJobView, error) {
	s.mu.RLock()
	job, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}
	view := job.view
	return &view, nil
}

// ResolveDownload validates a download token and opens the stored file for
// streaming. The caller closes the returned handle.
func (s *ExportJobService) ResolveDownload(token string) (*DownloadFile, error) {
	exportID, relPath, err := s.signer.Verify(token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}

	s.mu.RLock()
	job, ok := s.byID[exportID]
	s.mu.RUnlock()
	if !ok || job.filename != relPath {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}

	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export file no longer available")
	}
	return &DownloadFile{
		File:        file,
		Name:        fmt.Sprintf("schedule.%s", job.view.Format),
		ContentType: job.view.Format.ContentType(),
	}, nil
}

// handle renders one queued export, writes it to storage and signs its
// download token.
func (s *ExportJobService) handle(ctx context.Context, job jobs.Job) error {
	format := ExportFormat(job.Type)
	payload, err := s.renderer.Render(ctx, format)
	if err != nil {
		s.markFailed(job.ID)
		return err
	}

	filename := fmt.Sprintf("schedules/%s.%s", job.ID, format)
	if _, err := s.store.Save(filename, payload); err != nil {
		s.markFailed(job.ID)
		return err
	}
	token, expiresAt, err := s.signer.Sign(job.ID, filename)
	if err != nil {
		s.markFailed(job.ID)
		return err
	}

	s.mu.Lock()
	if stored, ok := s.byID[job.ID]; ok {
		stored.filename = filename
		stored.view.Status = ExportStatusCompleted
		stored.view.DownloadToken = token
		stored.view.ExpiresAt = &expiresAt
	}
	s.mu.Unlock()
	return nil
}

func (s *ExportJobService) markFailed(id string) {
	s.mu.Lock()
	if job, ok := s.byID[id]; ok {
		job.view.Status = ExportStatusFailed
	}
	s.mu.Unlock()
}

func (s *ExportJobService) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.store.CleanupOlderThan(s.fileTTL)
			if err != nil {
				s.logger.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(deleted) > 0 {
				s.logger.Info("removed stale exports", zap.Int("count", len(deleted)))
			}
		}
	}
}

// DownloadFile is an open export ready to stream to the client.
type DownloadFile struct {
	File        io.ReadCloser
	Name        string
	ContentType string
}
