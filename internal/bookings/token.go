package bookings

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"seatly/internal/shared/apperrors"
	"seatly/internal/shared/timeslot"
)

const checkInTokenPurpose = "booking_checkin"

// minTokenTTL keeps a token issued close to (or after) the window's end
// verifiable for at least a moment; the check-in window itself still
// rejects late arrivals.
const minTokenTTL = 60 * time.Second

// CheckInClaims is the payload of a QR check-in token
type CheckInClaims struct {
	Purpose   string `json:"purpose"`
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies QR check-in tokens. Tokens are not
// single-use; replay after a successful check-in is stopped by the
// already-checked-in rule, not by revocation.
type TokenIssuer struct {
	secret        []byte
	validAfterEnd time.Duration
}

// NewTokenIssuer creates a token issuer. validAfterEnd is how long past the
// slot start a token stays verifiable, matching the check-in window's tail.
func NewTokenIssuer(secret string, validAfterEnd time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), validAfterEnd: validAfterEnd}
}

// Issue creates a signed check-in token for the booking. The token expires
// when the check-in window closes, but never sooner than minTokenTTL from
// issuance.
func (t *TokenIssuer) Issue(booking *Booking, instant timeslot.ReservationInstant, now time.Time) (string, error) {
	expiresAt := instant.Time().Add(t.validAfterEnd)
	if min := now.Add(minTokenTTL); expiresAt.Before(min) {
		expiresAt = min
	}

	claims := CheckInClaims{
		Purpose:   checkInTokenPurpose,
		BookingID: booking.ID.String(),
		UserID:    booking.UserID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    "seatly",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", apperrors.Internal("failed to sign check-in token", err)
	}
	return signed, nil
}

// Verify checks signature, purpose and expiry. Every failure maps to the
// same opaque error so callers cannot tell which check tripped.
func (t *TokenIssuer) Verify(tokenString string) (bookingID, userID uuid.UUID, err error) {
	invalid := apperrors.TokenInvalid("Invalid or expired QR token")

	claims := &CheckInClaims{}
	token, parseErr := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if parseErr != nil || !token.Valid {
		return uuid.Nil, uuid.Nil, invalid
	}
	if claims.Purpose != checkInTokenPurpose {
		return uuid.Nil, uuid.Nil, invalid
	}

	bookingID, err = uuid.Parse(claims.BookingID)
	if err != nil {
		return uuid.Nil, uuid.Nil, invalid
	}
	userID, err = uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, invalid
	}
	return bookingID, userID, nil
}

// QRCodePNG renders a check-in token as a PNG QR code
func QRCodePNG(token string, size int) ([]byte, error) {
	png, err := qrcode.Encode(token, qrcode.Medium, size)
	if err != nil {
		return nil, apperrors.Internal("failed to render QR code", err)
	}
	return png, nil
}
