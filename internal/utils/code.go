package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// NewConfirmationCode returns 4 random decimal digits, cryptographically
// sourced. Uniqueness across outstanding codes is not guaranteed; the
// single-active-code policy on resend is what keeps the small space safe.
func NewConfirmationCode() (string, error) {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

// NewPlaceholderUsername builds the auto-generated username a fresh signup
// gets before profile completion, e.g. "instaclone-9f1c2d3a4b5e".
func NewPlaceholderUsername() string {
	id := uuid.New().String()
	tail := id[strings.LastIndex(id, "-")+1:]
	return fmt.Sprintf("instaclone-%s", tail)
}

// NewPlaceholderPassword is the unusable password a status=new user carries
// until change-info sets a real one.
func NewPlaceholderPassword() string {
	id := uuid.New().String()
	return fmt.Sprintf("password-%s", id[strings.LastIndex(id, "-")+1:])
}
