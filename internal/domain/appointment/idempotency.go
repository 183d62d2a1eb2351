package appointment

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// IdempotencyKey identifica uma tentativa de reserva por
// tenant + profissional solicitado + início + cliente.
func IdempotencyKey(
	tenantID uint,
	sel ProfessionalSelector,
	start time.Time,
	clientID uint,
) string {
	raw := fmt.Sprintf("%d|%s|%s|%d",
		tenantID,
		sel,
		start.UTC().Format(time.RFC3339),
		clientID,
	)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
