package v1

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/younghak9905/2-hertz-ai/store"
	"github.com/younghak9905/2-hertz-ai/tuning"
)

// tuningMatchingList is the TUNING_SUCCESS payload: candidate ids in score
// order, best first.
type tuningMatchingList struct {
	UserIDList []int64 `json:"userIdList"`
}

func (s *APIV1Service) getTuningMatches(c echo.Context) error {
	userID, err := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
	if err != nil || userID < 1 {
		return c.JSON(http.StatusNotFound, response{Code: codeTuningNotFoundUser})
	}

	category, err := store.ParseCategory(c.QueryParam("category"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response{Code: codeTuningServerError})
	}

	matches, err := s.Tuning.GetMatches(c.Request().Context(), strconv.FormatInt(userID, 10), category)
	switch {
	case err == nil:
	case errors.Is(err, tuning.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, response{Code: codeTuningNotFoundUser})
	case errors.Is(err, tuning.ErrNoSimilarity):
		return c.JSON(http.StatusOK, response{Code: codeTuningNoMatch})
	default:
		slog.Error("tuning query failed", "userId", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, response{Code: codeTuningServerError})
	}

	ids := make([]int64, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.ParseInt(m.UserID, 10, 64)
		if err != nil {
			// Non-numeric ids never enter through the API; skip rather
			// than fail the whole query.
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return c.JSON(http.StatusOK, response{Code: codeTuningNoMatch})
	}
	return c.JSON(http.StatusOK, response{Code: codeTuningSuccess, Data: tuningMatchingList{UserIDList: ids}})
}
