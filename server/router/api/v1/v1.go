// Package v1 exposes the tuning REST API: profile registration and deletion
// plus the matching query, all wrapped in the {code, data} response envelope.
package v1

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/younghak9905/2-hertz-ai/internal/profile"
	"github.com/younghak9905/2-hertz-ai/store"
	"github.com/younghak9905/2-hertz-ai/tuning"
)

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store
	Tuning  *tuning.Service

	validate *validator.Validate
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, tuningService *tuning.Service) *APIV1Service {
	return &APIV1Service{
		Profile:  profile,
		Store:    store,
		Tuning:   tuningService,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the v1 API onto the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/users", s.registerUser)
	g.DELETE("/users/:userId", s.deleteUser)
	g.GET("/tuning", s.getTuningMatches)
}

// response is the envelope every endpoint answers with.
type response struct {
	Code string `json:"code"`
	Data any    `json:"data"`
}

// Response codes kept wire-compatible with the service being replaced.
const (
	codeRegisterCreated          = "EMBEDDING_REGISTER_CREATED"
	codeRegisterDuplicate        = "EMBEDDING_CONFLICT_DUPLICATE_ID"
	codeRegisterValidationFailed = "EMBEDDING_REGISTER_VALIDATION_FAILED"
	codeRegisterServerError      = "EMBEDDING_REGISTER_SERVER_ERROR"
	codeDeleteSuccess            = "EMBEDDING_DELETE_SUCCESS"
	codeDeleteNotFoundUser       = "EMBEDDING_DELETE_NOT_FOUND_USER"
	codeDeleteServerError        = "EMBEDDING_DELETE_SERVER_ERROR"
	codeTuningSuccess            = "TUNING_SUCCESS"
	codeTuningNoMatch            = "TUNING_SUCCESS_BUT_NO_MATCH"
	codeTuningNotFoundUser       = "TUNING_NOT_FOUND_USER"
	codeTuningServerError        = "TUNING_INTERNAL_SERVER_ERROR"
)
