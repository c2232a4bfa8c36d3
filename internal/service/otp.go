package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTPDigits is the length of a generated reset code.
const OTPDigits = 6

// GenerateOTP returns a random numeric code of OTPDigits digits.
func GenerateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < OTPDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPDigits, n), nil
}
