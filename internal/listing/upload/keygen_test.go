package upload

import (
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var keyPattern = regexp.MustCompile(`^\d+_\d+\.jpg$`)

func TestGenerateKey_Format(t *testing.T) {
	key := GenerateKey("photo.jpg")
	assert.Regexp(t, keyPattern, key)
}

func TestGenerateKey_KeepsExtensionVerbatim(t *testing.T) {
	assert.True(t, strings.HasSuffix(GenerateKey("photo.JPG"), ".JPG"))
	assert.True(t, strings.HasSuffix(GenerateKey("photo.WebP"), ".WebP"))
}

func TestGenerateKey_UniqueUnderConcurrency(t *testing.T) {
	const n = 200

	var (
		mu   sync.Mutex
		keys = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := GenerateKey("img.png")
			mu.Lock()
			keys[key] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, keys, n, "expected every generated key to be unique")
}
