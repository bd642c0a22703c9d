// Package jobs tracks recognition jobs between the upload that creates a
// meal and the terminal status the client polls for.
package jobs

import (
	"sync"
	"time"

	"healthdiary/internal/domain"
)

// Job is the transient, server-owned state of one recognition run, keyed by
// the created meal's id.
type Job struct {
	MealID    uint
	Status    domain.MealStatus
	Items     []domain.RecognizedItem
	Nutrition *domain.MealNutrition
	Error     string
	UpdatedAt time.Time
}

// Tracker stores and serves job states
type Tracker interface {
	Put(job Job)
	Get(mealID uint) (Job, bool)
	Delete(mealID uint)
}

// Manager is the in-memory tracker used by single-instance deployments
type Manager struct {
	mu   sync.RWMutex
	jobs map[uint]Job
}

// NewManager creates a new in-memory job tracker
func NewManager() *Manager {
	return &Manager{jobs: make(map[uint]Job)}
}

// Put stores or replaces the job for its meal id
func (m *Manager) Put(job Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job.UpdatedAt = time.Now()
	m.jobs[job.MealID] = job
}

// Get returns the job for a meal id
func (m *Manager) Get(mealID uint) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, exists := m.jobs[mealID]
	return job, exists
}

// Delete removes the job for a meal id
func (m *Manager) Delete(mealID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, mealID)
}
