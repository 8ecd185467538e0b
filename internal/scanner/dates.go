package scanner

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var videoDomains = []string{
	"youtube.com", "youtu.be",
	"vimeo.com",
	"tiktok.com",
	"instagram.com",
	"twitch.tv",
	"dailymotion.com",
}

// isVideoSource reports whether the URL points at a video platform.
func isVideoSource(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, domain := range videoDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}

type datePattern struct {
	re      *regexp.Regexp
	layouts []string
}

var datePatterns = []datePattern{
	{regexp.MustCompile(`(?i)\d{4}[-/]\d{1,2}[-/]\d{1,2}`), []string{"2006-1-2", "2006/1/2"}},
	{regexp.MustCompile(`(?i)\d{1,2}[-/]\d{1,2}[-/]\d{4}`), []string{"1-2-2006", "1/2/2006"}},
	{regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`), []string{"January 2, 2006", "January 2 2006"}},
	{regexp.MustCompile(`(?i)\d{1,2}\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}`), []string{"2 January 2006"}},
	{regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+\d{1,2},?\s+\d{4}`), []string{"Jan 2, 2006", "Jan 2 2006"}},
}

var (
	urlDateRe = regexp.MustCompile(`/(\d{4})/(\d{1,2})/(\d{1,2})/`)
	yearRe    = regexp.MustCompile(`\b(20\d{2})\b`)
)

// extractAndValidateDate digs a publication date out of free text since search
// results rarely carry one. It tries textual date patterns in the description,
// then the /YYYY/MM/DD/ URL convention, then falls back to a year-token scan.
// Returns the date (RFC 3339, empty when undetermined) and whether the item
// should be skipped as older than the threshold. Undatable items are kept.
func extractAndValidateDate(title, rawURL, description string, threshold time.Time) (string, bool) {
	for _, p := range datePatterns {
		match := p.re.FindString(description)
		if match == "" {
			continue
		}
		for _, layout := range p.layouts {
			parsed, err := time.Parse(layout, match)
			if err != nil {
				continue
			}
			if parsed.Before(threshold) {
				return "", true
			}
			return parsed.Format(time.RFC3339), false
		}
	}

	if groups := urlDateRe.FindStringSubmatch(rawURL); groups != nil {
		year, _ := strconv.Atoi(groups[1])
		month, _ := strconv.Atoi(groups[2])
		day, _ := strconv.Atoi(groups[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			if parsed.Before(threshold) {
				return "", true
			}
			return parsed.Format(time.RFC3339), false
		}
	}

	// No parsable date. If every year token in the text is at least two
	// years stale, treat the item as old content.
	years := yearRe.FindAllString(title+" "+description, -1)
	if len(years) > 0 {
		maxYear := 0
		for _, y := range years {
			if n, err := strconv.Atoi(y); err == nil && n > maxYear {
				maxYear = n
			}
		}
		if maxYear < time.Now().Year()-1 {
			return "", true
		}
	}

	return "", false
}
