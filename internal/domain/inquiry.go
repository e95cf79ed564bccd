package domain

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"mangaart/internal/util"
)

// ErrInquiryImmutable is returned by the gorm hooks when something tries to
// change or remove a stored inquiry.
var ErrInquiryImmutable = errors.New("inquiries cannot be modified once stored")

// Inquiry represents a stored contact form submission
type Inquiry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;index" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	Country   string    `gorm:"not null" json:"country"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for Inquiry
func (Inquiry) TableName() string {
	return "inquiries"
}

// BeforeUpdate hook
func (i *Inquiry) BeforeUpdate(tx *gorm.DB) error {
	return ErrInquiryImmutable
}

// BeforeDelete hook
func (i *Inquiry) BeforeDelete(tx *gorm.DB) error {
	return ErrInquiryImmutable
}

// Candidate is the caller-supplied part of an inquiry, before validation.
type Candidate struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Country string `json:"country" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Normalize trims every field, lower-cases the email and rewrites
// Arabic-Indic digits in the phone number. It is idempotent.
func (c Candidate) Normalize() Candidate {
	return Candidate{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:   strings.TrimSpace(util.NormalizeDigits(c.Phone)),
		Country: strings.TrimSpace(c.Country),
		Message: strings.TrimSpace(c.Message),
	}
}

// Notification is what gets relayed to the notification channel once an
// inquiry has been stored.
type Notification struct {
	InquiryID uint
	Name      string
	Phone     string
	Country   string
	Message   string
	CreatedAt time.Time
}

// NotificationFor builds the relay payload for a stored inquiry
func NotificationFor(inquiry *Inquiry) Notification {
	return Notification{
		InquiryID: inquiry.ID,
		Name:      inquiry.Name,
		Phone:     inquiry.Phone,
		Country:   inquiry.Country,
		Message:   inquiry.Message,
		CreatedAt: inquiry.CreatedAt,
	}
}
