package analyzer

import (
	"strings"
	"unicode"

	"github.com/oasforge/oasforge/logger"
	"github.com/oasforge/oasforge/models"
	"github.com/oasforge/oasforge/pathutil"
)

// groupSuffix is the trailing word stripped from a group name when it is
// formatted into a category label ("AdminAuthModule" -> "Admin Auth").
const groupSuffix = "Module"

// categoryResolver implements the ordered category-inference chain: group
// membership first, source-path heuristics second, "Uncategorized" last.
type categoryResolver struct {
	groups []models.ServiceGroupDescriptor
	log    logger.Logger
}

func newCategoryResolver(groups []models.ServiceGroupDescriptor, log logger.Logger) *categoryResolver {
	return &categoryResolver{groups: groups, log: log}
}

// resolve returns the category label for a service. The first declared group
// whose member list contains the service wins; otherwise the label is derived
// from the source path.
func (r *categoryResolver) resolve(serviceName, sourcePath string) string {
	if label, ok := r.fromGroup(serviceName); ok {
		return label
	}

	r.log.Debug().
		Str("service", serviceName).
		Msg("No group declares service, falling back to path-based category")

	return pathutil.CategoryFromPath(sourcePath)
}

func (r *categoryResolver) fromGroup(serviceName string) (string, bool) {
	for i := range r.groups {
		group := &r.groups[i]
		for _, member := range group.Services {
			if member == serviceName {
				return formatGroupName(group.Name), true
			}
		}
	}
	return "", false
}

// formatGroupName strips the trailing group-suffix word and inserts spaces at
// internal capitalization boundaries.
func formatGroupName(name string) string {
	name = strings.TrimSuffix(name, groupSuffix)
	if name == "" {
		return name
	}

	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
