// Package joincode generates the short codes users exchange to self-enroll
// in a group.
package joincode

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the fixed length of every join code.
const Length = 8

// Alphabet holds the characters a join code is drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxAttempts bounds the collision retry loop. The keyspace is 62^8, so
// more than a couple of rounds means the exists check itself is broken.
const maxAttempts = 10

// ExistsFunc reports whether a candidate code is already assigned to a group.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generate produces a unique 8-character join code, retrying while the
// candidate collides with an existing group's code. The retry loop only
// reduces contention; the UNIQUE constraint on groups.join_code is the
// final arbiter under concurrent creation.
func Generate(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := random(Length)
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check join code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", fmt.Errorf("could not generate a unique join code after %d attempts", maxAttempts)
}

// random builds a code of n characters from Alphabet using crypto/rand.
func random(n int) (string, error) {
	max := big.NewInt(int64(len(Alphabet)))

	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		buf[i] = Alphabet[idx.Int64()]
	}

	return string(buf), nil
}
