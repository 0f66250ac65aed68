// Package emoji maps symbolic keys to emoji with plain-text fallbacks.
package emoji

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":         {"❌", "[ERR]"},
	"warning":       {"⚠️", "[WRN]"},
	"info":          {"ℹ️", "[INF]"},
	"success":       {"✅", "[OK]"},
	"document":      {"📄", "[DOC]"},
	"summary":       {"📝", "[SUM]"},
	"persons":       {"👤", "[PPL]"},
	"statistics":    {"📊", "[STATS]"},
	"organizations": {"🏢", "[ORG]"},
	"financial":     {"💰", "[FIN]"},
	"sentiment":     {"⚖️", "[SNT]"},
	"contact":       {"📇", "[CON]"},
	"rocket":        {"🚀", "[RUN]"},
	"hourglass":     {"⏳", "[...]"},
	"mode":          {"🏷️", "[MODE]"},
	"help":          {"❓", "[?]"},
	"door":          {"🚪", "[EXIT]"},
	"watch":         {"👀", "[WATCH]"},
}

// Set resolves keys either to emoji or to their fallbacks. The zero value
// resolves to emoji.
type Set struct {
	disabled bool
}

// New returns a Set; with enabled false every key resolves to its fallback
func New(enabled bool) Set {
	return Set{disabled: !enabled}
}

// Enabled reports whether emoji are used
func (s Set) Enabled() bool {
	return !s.disabled
}

// Get returns emoji or fallback for key
func (s Set) Get(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if s.disabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]" // unknown key
}
