// Package recognition drives a meal photo from selection through upload to
// the recognition result. One pipeline handles one photo at a time; the
// caller creates a fresh pipeline (or calls Reset) for the next one.
package recognition

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"healthdiary/internal/domain"
	apperrors "healthdiary/internal/errors"
)

// MaxPhotoSize is the largest accepted photo, matching the server limit.
const MaxPhotoSize = 10 << 20

// DefaultPollInterval is the delay between status polls. The timer is only
// re-armed after the previous response has been handled, so at most one
// poll is ever outstanding.
const DefaultPollInterval = 2500 * time.Millisecond

// State is the pipeline phase.
type State string

const (
	StateEmpty        State = "empty"
	StateFileSelected State = "file_selected"
	StateUploading    State = "uploading"
	StateProcessing   State = "processing"
	StateCompleted    State = "completed"
	StateFailed       State = "failed"
)

// Uploader is the remote surface the pipeline needs. *apiclient.Client
// implements it.
type Uploader interface {
	UploadPhoto(ctx context.Context, dayID uint, category, filename, contentType string, data []byte) (*domain.UploadResult, error)
	ProcessingStatus(ctx context.Context, mealID uint) (*domain.ProcessingStatus, error)
}

// Config configures a pipeline. Zero values get sensible defaults.
type Config struct {
	// PollInterval overrides DefaultPollInterval; tests shorten it.
	PollInterval time.Duration
	// OnCompleted runs exactly once when recognition succeeds, after the
	// pipeline has transitioned. Callers use it to refresh their meal list.
	OnCompleted func()
	Logger      *slog.Logger
}

type selectedFile struct {
	name        string
	contentType string
	data        []byte
}

// Pipeline is the photo recognition state machine.
type Pipeline struct {
	uploader     Uploader
	logger       *slog.Logger
	pollInterval time.Duration
	onCompleted  func()

	mu        sync.Mutex
	gen       uint64 // bumped on Reset/Close; in-flight results check it
	state     State
	file      *selectedFile
	mealID    uint
	items     []domain.RecognizedItem
	nutrition *domain.MealNutrition
	err       error
	cancel    context.CancelFunc
}

// New creates a pipeline in the empty state.
func New(uploader Uploader, cfg Config) *Pipeline {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		uploader:     uploader,
		logger:       logger,
		pollInterval: interval,
		onCompleted:  cfg.OnCompleted,
		state:        StateEmpty,
	}
}

// SelectFile validates and stages a photo. A rejected file leaves the
// pipeline empty with a validation error and performs no network activity.
func (p *Pipeline) SelectFile(filename, contentType string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateUploading || p.state == StateProcessing {
		return apperrors.NewValidationError("recognition already in progress")
	}

	if err := validatePhoto(contentType, int64(len(data))); err != nil {
		p.state = StateEmpty
		p.file = nil
		p.err = err
		return err
	}

	p.state = StateFileSelected
	p.file = &selectedFile{name: filename, contentType: contentType, data: data}
	p.err = nil
	return nil
}

// Upload sends the staged photo and, on acceptance, starts polling for the
// recognition result. The ctx bounds both the upload and the poll loop.
func (p *Pipeline) Upload(ctx context.Context, dayID uint, category string) error {
	p.mu.Lock()
	if p.state != StateFileSelected {
		p.mu.Unlock()
		return apperrors.NewValidationError("no file selected")
	}
	file := p.file
	gen := p.gen
	p.state = StateUploading
	p.err = nil
	p.mu.Unlock()

	result, err := p.uploader.UploadPhoto(ctx, dayID, category, file.name, file.contentType, file.data)

	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		return nil
	}
	if err != nil {
		p.state = StateFailed
		p.err = err
		p.mu.Unlock()
		return err
	}
	p.state = StateProcessing
	p.mealID = result.MealID
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	go p.pollLoop(pollCtx, gen, result.MealID)
	return nil
}

// pollLoop polls the job status until it reaches a terminal state or the
// context is cancelled. Transient poll failures are logged and retried.
func (p *Pipeline) pollLoop(ctx context.Context, gen uint64, mealID uint) {
	for {
		status, err := p.uploader.ProcessingStatus(ctx, mealID)
		if p.handlePoll(ctx, gen, status, err) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.pollInterval):
		}
	}
}

// handlePoll applies one status response and reports whether polling is
// done. Responses belonging to a superseded generation are discarded.
func (p *Pipeline) handlePoll(ctx context.Context, gen uint64, status *domain.ProcessingStatus, err error) bool {
	var notify func()

	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		return true
	}
	if err != nil {
		p.mu.Unlock()
		if ctx.Err() != nil {
			return true
		}
		p.logger.Warn("recognition status poll failed", "error", err)
		return false
	}

	done := false
	switch status.Status {
	case domain.MealStatusCompleted:
		p.state = StateCompleted
		p.items = status.RecognizedItems
		p.nutrition = status.MealData
		p.err = nil
		notify = p.onCompleted
		done = true
	case domain.MealStatusFailed:
		p.state = StateFailed
		msg := status.Error
		if msg == "" {
			msg = "food recognition failed"
		}
		p.err = apperrors.NewRecognitionError(msg)
		done = true
	}
	p.mu.Unlock()

	if notify != nil {
		notify()
	}
	return done
}

// Reset returns the pipeline to the empty state. It is refused while an
// upload is in flight; an active poll loop is cancelled and any result it
// later delivers is discarded.
func (p *Pipeline) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateUploading {
		return apperrors.NewValidationError("cannot reset while uploading")
	}
	p.teardownLocked()
	return nil
}

// Close tears the pipeline down unconditionally.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.teardownLocked()
}

func (p *Pipeline) teardownLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
	p.state = StateEmpty
	p.file = nil
	p.mealID = 0
	p.items = nil
	p.nutrition = nil
	p.err = nil
}

// State returns the current pipeline phase.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the last validation, upload or recognition error.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// MealID returns the id of the meal created for the uploaded photo, zero
// before a successful upload.
func (p *Pipeline) MealID() uint {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mealID
}

// Items returns the recognized items of a completed run.
func (p *Pipeline) Items() []domain.RecognizedItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.RecognizedItem(nil), p.items...)
}

// Nutrition returns the recognized nutrition of a completed run, nil until
// then.
func (p *Pipeline) Nutrition() *domain.MealNutrition {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.nutrition == nil {
		return nil
	}
	n := *p.nutrition
	return &n
}

// FileName returns the staged file's name, empty when none is staged.
func (p *Pipeline) FileName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return ""
	}
	return p.file.name
}

func validatePhoto(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.NewValidationError(fmt.Sprintf("unsupported media type %q, expected an image", contentType))
	}
	if size == 0 {
		return apperrors.NewValidationError("empty file")
	}
	if size > MaxPhotoSize {
		return apperrors.NewValidationError(fmt.Sprintf("file too large: %d bytes, limit is %d", size, MaxPhotoSize))
	}
	return nil
}
