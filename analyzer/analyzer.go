// Package analyzer turns a classified declaration graph into service
// descriptors: it resolves declared types into finite descriptor trees, maps
// validation annotations to schema constraints, extracts route metadata and
// infers category and version labels.
package analyzer

import (
	"strings"

	"github.com/oasforge/oasforge/decl"
	"github.com/oasforge/oasforge/logger"
	"github.com/oasforge/oasforge/models"
	"github.com/oasforge/oasforge/pathutil"
)

// DefaultMaxDepth bounds recursive type expansion. Structures nested deeper
// degrade to unknown descriptors at the boundary.
const DefaultMaxDepth = 5

// Analyzer extracts service metadata from a declaration registry. It holds
// no per-call state: every top-level type resolution builds a fresh traversal
// context, so concurrent Analyze calls over the same registry are safe.
type Analyzer struct {
	reg             *decl.Registry
	log             logger.Logger
	maxDepth        int
	categoryMapping map[string]string
}

// New creates an analyzer over a declaration registry with the default
// expansion depth.
func New(reg *decl.Registry, log logger.Logger) *Analyzer {
	return NewWithDepth(reg, log, DefaultMaxDepth)
}

// NewWithDepth is New with an explicit recursion bound.
func NewWithDepth(reg *decl.Registry, log logger.Logger, maxDepth int) *Analyzer {
	if log == nil {
		log = logger.Nop()
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Analyzer{reg: reg, log: log, maxDepth: maxDepth}
}

// SetCategoryMapping installs the configured category rename table applied as
// a final pass over resolved category labels.
func (a *Analyzer) SetCategoryMapping(mapping map[string]string) {
	a.categoryMapping = mapping
}

// Analyze extracts one ServiceDescriptor per classified service declaration,
// in declaration order.
func (a *Analyzer) Analyze() []models.ServiceDescriptor {
	groups := a.groupDescriptors()
	resolver := newCategoryResolver(groups, a.log)

	services := a.reg.Services()
	out := make([]models.ServiceDescriptor, 0, len(services))

	for _, svc := range services {
		desc := models.ServiceDescriptor{
			Name:        svc.Class.Name,
			BasePath:    svc.BasePath,
			SourcePath:  svc.Path,
			Description: summarize(svc.Class.Doc),
			Routes:      a.extractRoutes(svc.Class, svc.BasePath),
			Guards:      classGuards(svc.Class),
			Version:     pathutil.FirstVersionTag(svc.Path),
		}

		category := resolver.resolve(svc.Class.Name, svc.Path)
		if renamed, ok := a.categoryMapping[category]; ok {
			category = renamed
		}
		desc.Category = category

		out = append(out, desc)
	}

	return out
}

// Groups returns the service-group descriptors of the analyzed graph.
func (a *Analyzer) Groups() []models.ServiceGroupDescriptor {
	return a.groupDescriptors()
}

func (a *Analyzer) groupDescriptors() []models.ServiceGroupDescriptor {
	groups := a.reg.Groups()
	out := make([]models.ServiceGroupDescriptor, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.ServiceGroupDescriptor{
			Name:       g.Name,
			SourcePath: g.Path,
			Services:   g.Services,
			Imports:    g.Imports,
		})
	}
	return out
}

// summarize trims a declaration's leading documentation text down to its
// first non-empty line.
func summarize(doc string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return ""
	}
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
