package analyzer

import (
	"strings"

	"github.com/oasforge/oasforge/decl"
	"github.com/oasforge/oasforge/models"
	"github.com/oasforge/oasforge/pathutil"
)

// httpMethodAnnotations maps recognized HTTP-method decorators to the wire
// method name.
var httpMethodAnnotations = map[string]string{
	"Get":    "GET",
	"Post":   "POST",
	"Put":    "PUT",
	"Patch":  "PATCH",
	"Delete": "DELETE",
}

// paramBindings maps recognized parameter-binding decorators to the
// specification location.
var paramBindings = map[string]models.ParamLocation{
	"Param":   models.InPath,
	"Query":   models.InQuery,
	"Headers": models.InHeader,
	"Body":    models.InBody,
}

// Decorators controlling route access metadata.
const (
	annotationGuards   = "UseGuards"
	annotationPublic   = "Public"
	annotationSkipAuth = "SkipAuth"
)

// extractRoutes walks a service class and produces one RouteDescriptor per
// handler carrying exactly one recognized HTTP-method decorator. Handlers
// without one are skipped.
func (a *Analyzer) extractRoutes(class *decl.Class, basePath string) []models.RouteDescriptor {
	routes := make([]models.RouteDescriptor, 0, len(class.Methods))

	for i := range class.Methods {
		method := &class.Methods[i]
		if route, ok := a.extractRoute(method, basePath); ok {
			routes = append(routes, route)
		}
	}

	return routes
}

func (a *Analyzer) extractRoute(method *decl.Method, basePath string) (models.RouteDescriptor, bool) {
	httpMethod, routePath, ok := routeBinding(method.Decorators)
	if !ok {
		return models.RouteDescriptor{}, false
	}

	route := models.RouteDescriptor{
		Name:        method.Name,
		Method:      httpMethod,
		Path:        routePath,
		FullPath:    pathutil.Join(basePath, routePath),
		Description: summarize(method.Doc),
	}

	for i := range method.Decorators {
		dec := &method.Decorators[i]
		switch dec.Name {
		case annotationGuards:
			route.Guards = append(route.Guards, trimmedArgs(dec.Args)...)
		case annotationPublic, annotationSkipAuth:
			route.Public = true
		}
	}

	for i := range method.Params {
		a.bindParam(&method.Params[i], &route)
	}

	route.Response = a.resolveResponse(method.Return)

	return route, true
}

// routeBinding returns the method and path of the single recognized
// HTTP-method decorator. Zero or multiple method decorators disqualify the
// handler.
func routeBinding(decorators []decl.Decorator) (method, path string, ok bool) {
	count := 0
	for i := range decorators {
		dec := &decorators[i]
		m, recognized := httpMethodAnnotations[dec.Name]
		if !recognized {
			continue
		}
		count++
		method = m
		path = ""
		if len(dec.Args) > 0 {
			path = strings.Trim(dec.Args[0], `"'`)
		}
	}
	return method, path, count == 1
}

// bindParam turns one bound handler argument into a parameter descriptor or,
// for object-shaped body bindings, the request body.
func (a *Analyzer) bindParam(param *decl.Param, route *models.RouteDescriptor) {
	for i := range param.Decorators {
		dec := &param.Decorators[i]
		location, recognized := paramBindings[dec.Name]
		if !recognized {
			continue
		}

		if location == models.InBody {
			a.bindBody(param, route)
			return
		}

		name := param.Name
		if len(dec.Args) > 0 {
			name = strings.Trim(dec.Args[0], `"'`)
		}

		route.Parameters = append(route.Parameters, models.ParameterDescriptor{
			Name:     name,
			In:       location,
			Type:     a.ResolveType(param.Type),
			Required: location == models.InPath || !param.Optional,
		})
		return
	}
}

// bindBody attaches the request body when the bound type resolves to an
// object shape. Primitive and primitive-union bodies are skipped: they have
// no named schema to reference. For a union of object shapes only the first
// object branch is used; merging union members is out of scope.
func (a *Analyzer) bindBody(param *decl.Param, route *models.RouteDescriptor) {
	resolved := a.ResolveType(param.Type)

	switch resolved.Kind {
	case models.KindObject:
		route.RequestBody = resolved
	case models.KindUnion:
		for _, member := range resolved.UnionMembers {
			candidate := a.ResolveType(&decl.TypeRef{Kind: decl.RefNamed, Name: member})
			if candidate.IsObject() {
				route.RequestBody = candidate
				return
			}
		}
	}
}

// resolveResponse resolves the declared return type after one deferred-value
// unwrap and one nullable-union unwrap. Void, absent, primitive and
// unresolvable returns produce no response descriptor.
func (a *Analyzer) resolveResponse(ret *decl.TypeRef) *models.TypeDescriptor {
	if ret == nil {
		return nil
	}

	if ret.Kind == decl.RefPromise {
		ret = ret.Elem
		if ret == nil {
			return nil
		}
	}

	if ret.Kind == decl.RefUnion {
		if inner := stripNullable(ret); inner != nil {
			ret = inner
		}
	}

	resolved := a.ResolveType(ret)
	switch resolved.Kind {
	case models.KindPrimitive, models.KindUnknown:
		return nil
	}
	return resolved
}

// stripNullable unwraps "T | null" and "T | undefined" unions to T. Unions
// with more than one substantive member stay as they are.
func stripNullable(union *decl.TypeRef) *decl.TypeRef {
	var substantive []*decl.TypeRef
	for i := range union.Members {
		member := &union.Members[i]
		name := strings.ToLower(member.Name)
		if member.Kind == decl.RefNamed && (name == "null" || name == "undefined" || name == "void") {
			continue
		}
		substantive = append(substantive, member)
	}
	if len(substantive) == 1 {
		return substantive[0]
	}
	return nil
}

func trimmedArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		arg = strings.Trim(strings.TrimSpace(arg), `"'`)
		if arg != "" {
			out = append(out, arg)
		}
	}
	return out
}

func classGuards(class *decl.Class) []string {
	var guards []string
	for i := range class.Decorators {
		dec := &class.Decorators[i]
		if dec.Name == annotationGuards {
			guards = append(guards, trimmedArgs(dec.Args)...)
		}
	}
	return guards
}
