package v1

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/younghak9905/2-hertz-ai/matching"
	"github.com/younghak9905/2-hertz-ai/tuning"
)

// registerUserRequest mirrors the registration payload of the service being
// replaced: numeric user id, canonical enum codes, tag code lists. Hobbies is
// the one tag list allowed to be empty.
type registerUserRequest struct {
	UserID      int64  `json:"userId" validate:"required,gte=1"`
	EmailDomain string `json:"emailDomain" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=MALE FEMALE"`
	AgeGroup    string `json:"ageGroup" validate:"required"`
	MBTI        string `json:"MBTI" validate:"required,len=4"`
	Religion    string `json:"religion" validate:"required"`
	Smoking     string `json:"smoking" validate:"required"`
	Drinking    string `json:"drinking" validate:"required"`

	Personality      []string `json:"personality" validate:"required,min=1"`
	PreferredPeople  []string `json:"preferredPeople" validate:"required,min=1"`
	CurrentInterests []string `json:"currentInterests" validate:"required,min=1"`
	FavoriteFoods    []string `json:"favoriteFoods" validate:"required,min=1"`
	LikedSports      []string `json:"likedSports" validate:"required,min=1"`
	Pets             []string `json:"pets" validate:"required,min=1"`
	SelfDevelopment  []string `json:"selfDevelopment" validate:"required,min=1"`
	Hobbies          []string `json:"hobbies"`
}

func (r *registerUserRequest) toProfile() *matching.Profile {
	return &matching.Profile{
		UserID:           strconv.FormatInt(r.UserID, 10),
		EmailDomain:      r.EmailDomain,
		Gender:           r.Gender,
		AgeGroup:         r.AgeGroup,
		MBTI:             r.MBTI,
		Religion:         r.Religion,
		Smoking:          r.Smoking,
		Drinking:         r.Drinking,
		Personality:      r.Personality,
		PreferredPeople:  r.PreferredPeople,
		CurrentInterests: r.CurrentInterests,
		FavoriteFoods:    r.FavoriteFoods,
		LikedSports:      r.LikedSports,
		Pets:             r.Pets,
		SelfDevelopment:  r.SelfDevelopment,
		Hobbies:          r.Hobbies,
	}
}

func (s *APIV1Service) registerUser(c echo.Context) error {
	req := &registerUserRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, response{Code: codeRegisterValidationFailed})
	}
	if err := s.validate.Struct(req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, response{Code: codeRegisterValidationFailed})
	}

	err := s.Tuning.Register(c.Request().Context(), req.toProfile())
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, response{Code: codeRegisterCreated})
	case errors.Is(err, tuning.ErrDuplicateUser):
		return c.JSON(http.StatusConflict, response{Code: codeRegisterDuplicate})
	default:
		slog.Error("registration failed", "userId", req.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, response{Code: codeRegisterServerError})
	}
}

func (s *APIV1Service) deleteUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID < 1 {
		return c.JSON(http.StatusNotFound, response{Code: codeDeleteNotFoundUser})
	}

	err = s.Tuning.Delete(c.Request().Context(), strconv.FormatInt(userID, 10))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, response{Code: codeDeleteSuccess})
	case errors.Is(err, tuning.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, response{Code: codeDeleteNotFoundUser})
	default:
		slog.Error("deletion failed", "userId", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, response{Code: codeDeleteServerError})
	}
}
