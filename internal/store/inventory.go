package store

import (
	"errors"
	"fmt"

	"github.com/rcliao/hms/internal/model"
)

// ErrInsufficientStock is returned when a stock change would go below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// MedicationParams holds the fields for adding a medication.
type MedicationParams struct {
	ID            string // generated when empty
	Name          string
	Stock         int
	LowStockAlert int
}

// Medications stores the medication inventory.
type Medications struct{ Table[model.Medication] }

// Create adds a medication to the inventory.
func (s *Medications) Create(p MedicationParams) (*model.Medication, error) {
	if p.Stock < 0 || p.LowStockAlert < 0 {
		return nil, fmt.Errorf("medication %q: stock and alert level must not be negative", p.Name)
	}
	m := model.Medication{ID: idOr(p.ID), Name: p.Name, Stock: p.Stock, LowStockAlert: p.LowStockAlert}
	return s.create(m, m.ID)
}

// AdjustStock adds delta (which may be negative) to a medication's stock.
func (s *Medications) AdjustStock(id string, delta int) (*model.Medication, error) {
	m, err := s.db.Get(id)
	if err != nil {
		return nil, err
	}
	if m.Stock+delta < 0 {
		return nil, fmt.Errorf("medication %s: have %d, need %d: %w", m.ID, m.Stock, -delta, ErrInsufficientStock)
	}
	m.Stock += delta
	if err := s.db.Update(m); err != nil {
		return nil, err
	}
	return &m, nil
}

// LowStock returns the medications at or below their alert level.
func (s *Medications) LowStock() []model.Medication {
	return s.filter(model.Medication.IsLow)
}

// ReplenishmentParams holds the fields for a restock request.
type ReplenishmentParams struct {
	ID           string // generated when empty
	MedicationID string
	Quantity     int
	RequestedBy  string
}

// ReplenishmentRequests stores restock requests.
type ReplenishmentRequests struct{ Table[model.ReplenishmentRequest] }

// Create files a pending restock request.
func (s *ReplenishmentRequests) Create(p ReplenishmentParams) (*model.ReplenishmentRequest, error) {
	if p.Quantity <= 0 {
		return nil, fmt.Errorf("replenishment for %s: quantity must be positive", p.MedicationID)
	}
	r := model.ReplenishmentRequest{
		ID:           idOr(p.ID),
		MedicationID: p.MedicationID,
		Quantity:     p.Quantity,
		RequestedBy:  p.RequestedBy,
		Status:       model.RequestPending,
		RequestedAt:  now(),
	}
	return s.create(r, r.ID)
}

// SetStatus moves a request to status.
func (s *ReplenishmentRequests) SetStatus(id string, status model.RequestStatus) (*model.ReplenishmentRequest, error) {
	r, err := s.db.Get(id)
	if err != nil {
		return nil, err
	}
	r.Status = status
	if err := s.db.Update(r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Pending returns the requests still waiting for a decision.
func (s *ReplenishmentRequests) Pending() []model.ReplenishmentRequest {
	return s.filter(func(r model.ReplenishmentRequest) bool { return r.Status == model.RequestPending })
}
