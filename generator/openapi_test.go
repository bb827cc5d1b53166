package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasforge/oasforge/config"
	"github.com/oasforge/oasforge/logger"
	"github.com/oasforge/oasforge/models"
)

func testConfig() *config.Config {
	return &config.Config{Title: "Test API", Version: "1.0.0"}
}

func userDto() *models.TypeDescriptor {
	return &models.TypeDescriptor{
		Kind: models.KindObject,
		Name: "UserDto",
		Properties: []models.PropertyDescriptor{
			{Name: "id", Type: &models.TypeDescriptor{Kind: models.KindPrimitive, Name: "string", Format: "uuid"}, Required: true},
			{Name: "email", Type: &models.TypeDescriptor{Kind: models.KindPrimitive, Name: "string"}, Required: true},
			{Name: "nickname", Type: &models.TypeDescriptor{Kind: models.KindPrimitive, Name: "string"}},
		},
	}
}

func userService() models.ServiceDescriptor {
	return models.ServiceDescriptor{
		Name:     "UsersController",
		BasePath: "users",
		Category: "Users",
		Routes: []models.RouteDescriptor{
			{
				Name:     "findOne",
				Method:   "GET",
				Path:     ":id",
				FullPath: "users/:id",
				Parameters: []models.ParameterDescriptor{{
					Name:     "id",
					In:       models.InPath,
					Required: true,
					Type:     &models.TypeDescriptor{Kind: models.KindPrimitive, Name: "string"},
				}},
				Response: userDto(),
			},
			{
				Name:        "create",
				Method:      "POST",
				FullPath:    "users",
				RequestBody: userDto(),
				Response:    userDto(),
			},
		},
	}
}

func TestSynthesizeDocumentShape(t *testing.T) {
	s := New(testConfig(), logger.Nop())

	doc, err := s.Synthesize([]models.ServiceDescriptor{userService()})
	require.NoError(t, err)

	assert.Equal(t, "3.0.1", doc.OpenAPI)
	assert.Equal(t, "Test API", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)

	require.Contains(t, doc.Paths, "users/{id}")
	require.Contains(t, doc.Paths, "users")

	get := doc.Paths["users/{id}"]["get"]
	require.NotNil(t, get)
	assert.Equal(t, "findOne", get.OperationID)
	assert.Equal(t, "GET /users/:id", get.Summary, "summary falls back to method and path")
	assert.Equal(t, []string{"Users"}, get.Tags)
	require.Contains(t, get.Responses, "200")

	post := doc.Paths["users"]["post"]
	require.NotNil(t, post)
	require.Contains(t, post.Responses, "201", "POST responds with 201")
	require.NotNil(t, post.RequestBody)
	assert.True(t, post.RequestBody.Required)
	assert.Equal(t, "#/components/schemas/UserDto", post.RequestBody.Content["application/json"].Schema.Ref)

	schema, ok := doc.Components.Schemas["UserDto"]
	require.True(t, ok)
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"email", "id"}, schema.Required, "required list is sorted")
	assert.Len(t, schema.Properties, 3)
}

func TestSynthesizeDuplicateRoute(t *testing.T) {
	svc := userService()
	svc.Routes = append(svc.Routes, svc.Routes[0])

	s := New(testConfig(), logger.Nop())
	_, err := s.Synthesize([]models.ServiceDescriptor{svc})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate route")
}

func TestSynthesizeVersionedPaths(t *testing.T) {
	cfg := testConfig()
	cfg.Versioning = config.VersioningConfig{Enabled: true, Strategy: "uri", Prefix: "api", Fallback: "v1"}

	route := func() models.RouteDescriptor {
		return models.RouteDescriptor{Name: "profile", Method: "GET", FullPath: "admin/profile"}
	}

	services := []models.ServiceDescriptor{
		{Name: "ProfileV1Controller", Category: "Admin", Version: "v1", Routes: []models.RouteDescriptor{route()}},
		{Name: "ProfileV2Controller", Category: "Admin", Version: "v2", Routes: []models.RouteDescriptor{route()}},
	}

	s := New(cfg, logger.Nop())
	doc, err := s.Synthesize(services)
	require.NoError(t, err)

	// Same declared path, two versions: both survive under distinct keys.
	assert.Contains(t, doc.Paths, "api/v1/admin/profile")
	assert.Contains(t, doc.Paths, "api/v2/admin/profile")

	require.Len(t, doc.Servers, 2)
	assert.Equal(t, Server{URL: "/api/v1", Description: "API V1"}, doc.Servers[0])
	assert.Equal(t, Server{URL: "/api/v2", Description: "API V2"}, doc.Servers[1])
}

func TestSynthesizeVersionFallback(t *testing.T) {
	cfg := testConfig()
	cfg.Versioning = config.VersioningConfig{Enabled: true, Strategy: "uri", Prefix: "api", Fallback: "v1"}

	svc := userService()
	svc.Version = ""

	s := New(cfg, logger.Nop())
	doc, err := s.Synthesize([]models.ServiceDescriptor{svc})
	require.NoError(t, err)

	assert.Contains(t, doc.Paths, "api/v1/users/{id}")
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "/api/v1", doc.Servers[0].URL)
}

func TestSynthesizeGlobalPrefixWhenVersioningDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.GlobalPrefix = "api"

	svc := userService()
	svc.Version = "v3" // ignored without versioning

	s := New(cfg, logger.Nop())
	doc, err := s.Synthesize([]models.ServiceDescriptor{svc})
	require.NoError(t, err)

	assert.Contains(t, doc.Paths, "api/users/{id}")
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "/api", doc.Servers[0].URL)
}

func TestSynthesizeConfiguredServersAppended(t *testing.T) {
	cfg := testConfig()
	cfg.Servers = []config.ServerEntry{{URL: "https://staging.example.com", Description: "Staging"}}

	s := New(cfg, logger.Nop())
	doc, err := s.Synthesize([]models.ServiceDescriptor{userService()})
	require.NoError(t, err)

	require.Len(t, doc.Servers, 2)
	assert.Equal(t, "https://staging.example.com", doc.Servers[1].URL)
}

func TestSynthesizeSecurity(t *testing.T) {
	cfg := testConfig()
	cfg.IncludeSecurity = true

	svc := models.ServiceDescriptor{
		Name:     "AuthController",
		Category: "Auth",
		Routes: []models.RouteDescriptor{
			{Name: "login", Method: "POST", FullPath: "auth/login", Public: true},
			{Name: "profile", Method: "GET", FullPath: "auth/profile"},
		},
	}

	s := New(cfg, logger.Nop())
	doc, err := s.Synthesize([]models.ServiceDescriptor{svc})
	require.NoError(t, err)

	scheme, ok := doc.Components.SecuritySchemes["bearer"]
	require.True(t, ok)
	assert.Equal(t, "http", scheme.Type)
	assert.Equal(t, "bearer", scheme.Scheme)
	assert.Equal(t, "JWT", scheme.BearerFormat)

	assert.Empty(t, doc.Paths["auth/login"]["post"].Security, "public routes carry no requirement")
	require.Len(t, doc.Paths["auth/profile"]["get"].Security, 1)
	assert.Contains(t, doc.Paths["auth/profile"]["get"].Security[0], "bearer")
}

func TestSynthesizeTagsSortedAndDeduplicated(t *testing.T) {
	services := []models.ServiceDescriptor{
		{Name: "B", Category: "Zeta", Routes: []models.RouteDescriptor{{Name: "b", Method: "GET", FullPath: "b"}}},
		{Name: "A", Category: "Alpha", Routes: []models.RouteDescriptor{{Name: "a", Method: "GET", FullPath: "a"}}},
		{Name: "C", Category: "Zeta", Routes: []models.RouteDescriptor{{Name: "c", Method: "GET", FullPath: "c"}}},
	}

	s := New(testConfig(), logger.Nop())
	doc, err := s.Synthesize(services)
	require.NoError(t, err)

	require.Len(t, doc.Tags, 2)
	assert.Equal(t, "Alpha", doc.Tags[0].Name)
	assert.Equal(t, "Zeta", doc.Tags[1].Name)
}

func TestSynthesizeAnonymousObjectsShareComponents(t *testing.T) {
	anon := func() *models.TypeDescriptor {
		return &models.TypeDescriptor{
			Kind: models.KindObject,
			Properties: []models.PropertyDescriptor{
				{Name: "ok", Type: &models.TypeDescriptor{Kind: models.KindPrimitive, Name: "boolean"}, Required: true},
			},
		}
	}

	svc := models.ServiceDescriptor{
		Name:     "StatusController",
		Category: "Status",
		Routes: []models.RouteDescriptor{
			{Name: "ping", Method: "GET", FullPath: "ping", Response: anon()},
			{Name: "ready", Method: "GET", FullPath: "ready", Response: anon()},
		},
	}

	s := New(testConfig(), logger.Nop())
	doc, err := s.Synthesize([]models.ServiceDescriptor{svc})
	require.NoError(t, err)

	// Structurally identical anonymous shapes share one synthetic component.
	require.Contains(t, doc.Components.Schemas, "InlineObject1")
	assert.NotContains(t, doc.Components.Schemas, "InlineObject2")

	ref := doc.Paths["ping"]["get"].Responses["200"].Content["application/json"].Schema.Ref
	assert.Equal(t, "#/components/schemas/InlineObject1", ref)
	assert.Equal(t, ref, doc.Paths["ready"]["get"].Responses["200"].Content["application/json"].Schema.Ref)
}

func TestSynthesizeConstraintsApplied(t *testing.T) {
	dto := &models.TypeDescriptor{
		Kind: models.KindObject,
		Name: "SignupDto",
		Properties: []models.PropertyDescriptor{{
			Name:     "password",
			Required: true,
			Type:     &models.TypeDescriptor{Kind: models.KindPrimitive, Name: "string"},
			Constraints: []models.ConstraintDescriptor{{
				Kind: "MinLength",
				Constraints: []models.SchemaConstraint{
					{Name: "minLength", Value: int64(8)},
				},
			}},
		}},
	}

	svc := models.ServiceDescriptor{
		Name:     "AuthController",
		Category: "Auth",
		Routes:   []models.RouteDescriptor{{Name: "signup", Method: "POST", FullPath: "signup", RequestBody: dto}},
	}

	s := New(testConfig(), logger.Nop())
	doc, err := s.Synthesize([]models.ServiceDescriptor{svc})
	require.NoError(t, err)

	schema := doc.Components.Schemas["SignupDto"]
	require.NotNil(t, schema)
	assert.Equal(t, int64(8), schema.Properties["password"].MinLength)
}

func TestSynthesizeDeterministicOutput(t *testing.T) {
	s := New(testConfig(), logger.Nop())

	first, err := s.Synthesize([]models.ServiceDescriptor{userService()})
	require.NoError(t, err)
	second, err := s.Synthesize([]models.ServiceDescriptor{userService()})
	require.NoError(t, err)

	firstJSON, err := first.JSON()
	require.NoError(t, err)
	secondJSON, err := second.JSON()
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)

	firstYAML, err := first.YAML()
	require.NoError(t, err)
	secondYAML, err := second.YAML()
	require.NoError(t, err)
	assert.Equal(t, firstYAML, secondYAML)
}
