package mfa

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// Code generation is a static stand-in, not TOTP. Codes are 6 decimal
// digits produced from crypto/rand and compared in constant time.

const codeMax = 900000

// GenerateCode returns a random 6-digit numeric code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax))
	if err != nil {
		return "", fmt.Errorf("generate mfa code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// GenerateBackupCodes returns count one-time backup codes.
func GenerateBackupCodes(count int) ([]string, error) {
	codes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		code, err := GenerateCode()
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// StaticVerifier verifies submitted codes against a single expected code.
// It satisfies the orchestrator's CodeVerifier.
type StaticVerifier struct {
	Expected string
}

func (v StaticVerifier) VerifyCode(code string) bool {
	return subtle.ConstantTimeCompare([]byte(code), []byte(v.Expected)) == 1
}
