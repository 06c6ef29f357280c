package upload

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// GenerateKey derives a collision-resistant storage key for an accepted file:
// "<unixMillis>_<randomFraction><ext>". The extension is carried over verbatim
// from the original filename, case included. Timestamp plus per-call
// randomness keeps concurrent calls from colliding without any shared counter.
func GenerateKey(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	frac := strconv.FormatFloat(rand.Float64(), 'f', -1, 64)
	frac = strings.TrimPrefix(frac, "0.")
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), frac, ext)
}
