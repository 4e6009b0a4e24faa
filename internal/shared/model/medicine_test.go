package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDonateRequest() *DonateRequest {
	return &DonateRequest{
		MedicineName: "Paracetamol",
		ExpDate:      "2027-05-01",
		Address:      "12 Nile St",
		Phone:        "0100000000",
		Photo:        "photos/abc.jpg",
		Description:  "500mg, sealed box",
	}
}

func TestDonateRequest_Validate(t *testing.T) {
	m, err := validDonateRequest().Validate()
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Paracetamol", m.MedicineName)
	assert.Equal(t, time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC), m.ExpDate)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestDonateRequest_MissingField(t *testing.T) {
	mutators := []func(r *DonateRequest){
		func(r *DonateRequest) { r.MedicineName = "" },
		func(r *DonateRequest) { r.ExpDate = "" },
		func(r *DonateRequest) { r.Address = "" },
		func(r *DonateRequest) { r.Phone = "  " },
		func(r *DonateRequest) { r.Photo = "" },
		func(r *DonateRequest) { r.Description = "" },
	}
	for i, fn := range mutators {
		req := validDonateRequest()
		fn(req)
		m, err := req.Validate()
		assert.Nil(t, m, "case %d", i)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve), "case %d", i)
		assert.Equal(t, MsgFieldsRequired, ve.Message)
	}
}

func TestDonateRequest_InvalidExpDate(t *testing.T) {
	req := validDonateRequest()
	req.ExpDate = "next tuesday"

	_, err := req.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, MsgInvalidExpDate, ve.Message)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestParseExpDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2027-05-01", time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"2027-05-01T10:30:00Z", time.Date(2027, 5, 1, 10, 30, 0, 0, time.UTC)},
		{"2027-05-01T12:30:00+02:00", time.Date(2027, 5, 1, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseExpDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s → %s", tt.in, got)
	}

	_, err := ParseExpDate("01/05/2027")
	assert.Error(t, err)
}

func TestUser_PasswordHashNotSerialized(t *testing.T) {
	u := NewUser(&SignupRequest{Name: "A", Email: "a@x.com", Password: "secret"}, "$2a$10$hash")
	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hash")
	assert.NotContains(t, string(data), "secret")
	assert.Contains(t, string(data), `"email":"a@x.com"`)
}

func TestNewFeedback_KeepsRatingVerbatim(t *testing.T) {
	for _, rating := range []float64{-5, 0, 4.5, 999} {
		fb := NewFeedback(&FeedbackRequest{UserID: "u1", RatedUserID: "u2", Rating: LooseNumber(rating)})
		assert.Equal(t, rating, fb.Rating)
		assert.NotEmpty(t, fb.ID)
	}
}

func TestNewID_Monotonic(t *testing.T) {
	prev := NewID()
	for i := 0; i < 1000; i++ {
		next := NewID()
		require.Less(t, prev, next)
		prev = next
	}
}
