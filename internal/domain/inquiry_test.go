package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mangaart/pkg/errors"
)

func validCandidate() Candidate {
	return Candidate{
		Name:    "Lina",
		Email:   "lina@example.com",
		Phone:   "٠١٢٣",
		Country: "Tunisia",
		Message: "Interested in lessons",
	}
}

func fieldNames(err error) []string {
	var names []string
	for _, f := range apperrors.FieldsOf(err) {
		names = append(names, f.Field)
	}
	return names
}

func TestValidateAcceptsValidCandidate(t *testing.T) {
	inquiry, err := validCandidate().Validate()
	require.NoError(t, err)

	assert.Equal(t, "Lina", inquiry.Name)
	assert.Equal(t, "lina@example.com", inquiry.Email)
	assert.Equal(t, "0123", inquiry.Phone)
	assert.Equal(t, "Tunisia", inquiry.Country)
	assert.Equal(t, "Interested in lessons", inquiry.Message)
	assert.Zero(t, inquiry.ID)
	assert.True(t, inquiry.CreatedAt.IsZero())
}

func TestValidateRejectsEveryEmptyField(t *testing.T) {
	_, err := Candidate{}.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, []string{"name", "email", "phone", "country", "message"}, fieldNames(err))

	for _, f := range apperrors.FieldsOf(err) {
		assert.NotEmpty(t, f.Reason)
	}
}

func TestValidateTreatsWhitespaceAsEmpty(t *testing.T) {
	c := validCandidate()
	c.Name = "   "
	c.Message = "\n\t"

	_, err := c.Validate()
	require.Error(t, err)
	assert.Equal(t, []string{"name", "message"}, fieldNames(err))
}

func TestValidateRejectsOnlyBadEmail(t *testing.T) {
	c := validCandidate()
	c.Email = "not-an-email"

	_, err := c.Validate()
	require.Error(t, err)

	fields := apperrors.FieldsOf(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].Field)
	assert.Equal(t, "must be a valid email address", fields[0].Reason)
}

func TestValidateIsDeterministic(t *testing.T) {
	c := Candidate{Email: "nope"}
	_, first := c.Validate()
	_, second := c.Validate()
	assert.Equal(t, first.Error(), second.Error())
}

func TestNormalize(t *testing.T) {
	c := Candidate{
		Name:    "  Lina ",
		Email:   " Lina@Example.COM ",
		Phone:   " +٢١٦ ٥٥ ",
		Country: " Tunisia (GMT+1) ",
		Message: " hi ",
	}

	n := c.Normalize()
	assert.Equal(t, Candidate{
		Name:    "Lina",
		Email:   "lina@example.com",
		Phone:   "+216 55",
		Country: "Tunisia (GMT+1)",
		Message: "hi",
	}, n)
	assert.Equal(t, n, n.Normalize())
}

func TestNotificationFor(t *testing.T) {
	inquiry := &Inquiry{ID: 4, Name: "Lina", Email: "lina@example.com", Phone: "0123", Country: "Tunisia", Message: "hello"}
	n := NotificationFor(inquiry)

	assert.Equal(t, uint(4), n.InquiryID)
	assert.Equal(t, "Lina", n.Name)
	assert.Equal(t, "0123", n.Phone)
	assert.Equal(t, "Tunisia", n.Country)
	assert.Equal(t, "hello", n.Message)
}
