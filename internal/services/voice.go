package services

import (
	"regexp"
	"strings"
)

var (
	voicePrefix = regexp.MustCompile(`^(?:i\s+(?:want|need)\s+to\s+(?:go|travel)\s+|take\s+me\s+|mujhe\s+|मुझे\s+)`)
	voiceSuffix = regexp.MustCompile(`\s+(?:please|tak|jana\s+hai|jaana\s+hai|ki\s+bus|wali\s+bus|तक|जाना\s+है|की\s+बस)$`)

	voiceFromTo   = regexp.MustCompile(`(?:^|\s)from\s+(.+?)\s+to\s+(.+)$`)
	voiceSe       = regexp.MustCompile(`^(.+?)\s+(?:se|से)\s+(.+)$`)
	voiceTo       = regexp.MustCompile(`^(.+?)\s+to\s+(.+)$`)
	voicePatterns = []*regexp.Regexp{voiceFromTo, voiceSe, voiceTo}
)

// ParseVoiceQuery extracts source and destination from a transcribed voice
// command such as "from Thob to Basni", "Thob se Basni tak" or
// "थोब से बासनी जाना है".
func ParseVoiceQuery(transcript string) (source, destination string, ok bool) {
	t := strings.Join(strings.Fields(strings.ToLower(transcript)), " ")
	t = strings.Trim(t, ".?!।")
	t = voicePrefix.ReplaceAllString(t, "")

	for _, re := range voicePatterns {
		m := re.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		src := strings.TrimSpace(m[1])
		dst := strings.TrimSpace(m[2])
		for voiceSuffix.MatchString(dst) {
			dst = strings.TrimSpace(voiceSuffix.ReplaceAllString(dst, ""))
		}
		if src != "" && dst != "" {
			return src, dst, true
		}
	}

	return "", "", false
}
