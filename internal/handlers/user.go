package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/temidayo/shareboard/internal/apperrors"
	"github.com/temidayo/shareboard/internal/handlers/render"
	"github.com/temidayo/shareboard/internal/logger"
)

func handleCreateUser(s userService, l logger.Logger) http.Handler {
	type request struct {
		Name     string `json:"name" validate:"required"`
		UserName string `json:"userName" validate:"required,min=3"`
	}

	type response struct {
		Success bool `json:"success"`
		User    struct {
			ID        uuid.UUID `json:"id"`
			Name      string    `json:"name"`
			UserName  string    `json:"userName"`
			CreatedAt time.Time `json:"createdAt"`
		} `json:"user"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := s.CreateUser(r.Context(), req.Name, req.UserName)

		switch {
		case err == nil:
			res := response{Success: true}
			res.User.ID = user.ID
			res.User.Name = user.Name
			res.User.UserName = user.UserName
			res.User.CreatedAt = user.CreatedAt
			render.JSONWithStatus(w, res, http.StatusCreated)
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			render.Fail(w, "Username already taken", http.StatusConflict)
		default:
			l.Error("Failed to create user", "error", err)
			render.Fail(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
