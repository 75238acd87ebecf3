// Package tokens estimates prompt sizes for logging and budgeting.
package tokens

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

// Estimate counts cl100k_base tokens. When the encoding cannot be
// loaded it falls back to a rough words*1.3 estimate rather than
// failing: callers only use this for observability.
func Estimate(text string) int {
	tkOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			tk = enc
		}
	})

	if tk == nil {
		return int(float64(len(strings.Fields(text))) * 1.3)
	}
	return len(tk.Encode(text, nil, nil))
}
