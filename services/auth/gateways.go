package auth

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/taxiconnect/backend/services/auth SMSGW

// SMSGW dispatches SMS messages through the messaging backbone. The
// OTP is already stored when dispatch is attempted, so a dispatch
// failure does not undo the request.
type SMSGW interface {
	SendSMS(ctx context.Context, phoneNumber, body string) error
}
