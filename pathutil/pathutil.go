// Package pathutil provides the pure string helpers used while assembling
// route paths and while inferring version and category labels from source
// locations. All functions are stateless.
package pathutil

import (
	"regexp"
	"strings"
)

const uncategorized = "Uncategorized"

var (
	paramToken  = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)
	versionTag  = regexp.MustCompile(`^v[0-9]+$`)
	pathSplitRE = regexp.MustCompile(`[/\\]+`)
)

// noiseSegments are directory names that carry no category information.
var noiseSegments = map[string]struct{}{
	"src":         {},
	"app":         {},
	"apps":        {},
	"api":         {},
	"dist":        {},
	"lib":         {},
	"modules":     {},
	"controllers": {},
	"controller":  {},
	"routes":      {},
}

// Join combines path segments into a single path. Leading and trailing
// separators are stripped from every segment, empty segments are dropped and
// the remainder is joined with a single "/". The result carries no leading
// separator.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.Trim(seg, "/")
		if seg == "" {
			continue
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, "/")
}

// ConvertParams rewrites ":name" route tokens to the "{name}" parameter
// syntax used by specification paths. Non-token text is left untouched.
func ConvertParams(path string) string {
	return paramToken.ReplaceAllString(path, "{$1}")
}

// FirstVersionTag scans the location's segments left to right and returns the
// first one matching "v<digits>", lowercased. It returns "" when no segment
// matches. Forward and backward slashes are treated alike.
func FirstVersionTag(location string) string {
	for _, seg := range splitLocation(location) {
		seg = strings.ToLower(seg)
		if versionTag.MatchString(seg) {
			return seg
		}
	}
	return ""
}

// Humanize turns a kebab-case segment into a spaced, title-cased label
// ("user-profile" -> "User Profile").
func Humanize(segment string) string {
	words := strings.Split(segment, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// CategoryFromPath derives a category label from a source location. Noise
// segments, version tags and the filename are dropped, immediately
// consecutive duplicates collapse into one, and the survivors are humanized
// and joined with " - ". When no directory segment survives, the humanized
// file stem is used instead; a fully empty location yields "Uncategorized".
func CategoryFromPath(location string) string {
	segs := splitLocation(location)
	if len(segs) == 0 {
		return uncategorized
	}

	var file string
	if last := segs[len(segs)-1]; strings.Contains(last, ".") {
		file = last
		segs = segs[:len(segs)-1]
	}

	var kept []string
	for _, seg := range segs {
		lower := strings.ToLower(seg)
		if _, noisy := noiseSegments[lower]; noisy {
			continue
		}
		if versionTag.MatchString(lower) {
			continue
		}
		if len(kept) > 0 && strings.EqualFold(kept[len(kept)-1], seg) {
			continue
		}
		kept = append(kept, seg)
	}

	if len(kept) == 0 {
		if stem := fileStem(file); stem != "" {
			return Humanize(stem)
		}
		return uncategorized
	}

	for i, seg := range kept {
		kept[i] = Humanize(seg)
	}
	return strings.Join(kept, " - ")
}

// fileStem strips the extension qualifiers from a filename
// ("auth.controller.ts" -> "auth").
func fileStem(file string) string {
	if file == "" {
		return ""
	}
	if i := strings.Index(file, "."); i >= 0 {
		return file[:i]
	}
	return file
}

func splitLocation(location string) []string {
	var segs []string
	for _, seg := range pathSplitRE.Split(location, -1) {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
