package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/syncbridge/backend/internal/domain/payment"
)

// PaymentMappingModel is the persistence model for the payment Mapping entity
type PaymentMappingModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key"`
	OrderID   string         `gorm:"type:varchar(100);not null;index:idx_payment_mapping_order"`
	PayID     string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_payment_mapping_pay"`
	Status    payment.Status `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentMappingModel) TableName() string {
	return "payment_mappings"
}

// ToDomain converts the persistence model to a domain payment Mapping entity
func (m *PaymentMappingModel) ToDomain() *payment.Mapping {
	return &payment.Mapping{
		ID:        m.ID,
		OrderID:   m.OrderID,
		PayID:     m.PayID,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain payment Mapping entity
func (m *PaymentMappingModel) FromDomain(pm *payment.Mapping) {
	m.ID = pm.ID
	m.OrderID = pm.OrderID
	m.PayID = pm.PayID
	m.Status = pm.Status
	m.CreatedAt = pm.CreatedAt
	m.UpdatedAt = pm.UpdatedAt
}
