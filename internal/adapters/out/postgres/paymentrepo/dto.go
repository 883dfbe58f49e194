// Package paymentrepo provides data transfer objects and mapping functions
// for payment persistence. The unique index on order_id is what enforces the
// one-payment-per-order rule at the storage level.
package paymentrepo

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO represents the database structure for persisting payment records.
type PaymentDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Method           int
	Status           int
	CorrelationToken string          `gorm:"index"`
	Amount           decimal.Decimal `gorm:"type:numeric(14,2)"`
	Currency         string          `gorm:"type:varchar(3)"`
}

// TableName specifies the database table name for payment records.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts a payment domain record to its database representation.
func fromDomain(record *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:               record.ID().Bytes(),
		OrderID:          record.OrderID().Bytes(),
		Method:           int(record.Method()),
		Status:           int(record.Status()),
		CorrelationToken: record.CorrelationToken(),
		Amount:           record.Amount().Amount(),
		Currency:         record.Amount().Currency(),
	}
}

// toDomain converts a database DTO to a payment domain record.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id,
		orderID,
		payment.Method(dto.Method),
		payment.Status(dto.Status),
		dto.CorrelationToken,
		amount,
	)
}
