package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cinelog/cinelog/lib/auth"
	"github.com/cinelog/cinelog/lib/store"
	"github.com/cinelog/cinelog/lib/validation"
	"github.com/cinelog/cinelog/models"
)

type credentials struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	AvatarURL string `json:"avatarUrl"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register serves POST /api/register.
func Register(s store.Store, a *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		if fields, err := validation.ValidateCredentials(body); err != nil {
			serverError(w, r, err)
			return
		} else if fields != nil {
			validation.WriteFieldErrors(w, fields)
			return
		}

		var input credentials
		if err := json.Unmarshal(body, &input); err != nil {
			validation.WriteError(w, errors.New("invalid request body"), http.StatusBadRequest)
			return
		}

		if _, err := s.GetUserByUsername(r.Context(), input.Username); err == nil {
			validation.WriteFieldErrors(w, validation.FieldErrors{"username": "already taken"})
			return
		} else if !errors.Is(err, store.ErrNotFound) {
			serverError(w, r, err)
			return
		}

		hash, err := a.HashPassword(input.Password)
		if err != nil {
			serverError(w, r, err)
			return
		}

		user := models.User{
			Username:  input.Username,
			Password:  hash,
			AvatarURL: input.AvatarURL,
		}
		if err := s.CreateUser(r.Context(), &user); err != nil {
			serverError(w, r, err)
			return
		}

		token, err := a.GenerateToken(user.ID)
		if err != nil {
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, authResponse{User: &user, Token: token})
	}
}

// Login serves POST /api/login. Wrong username and wrong password are
// indistinguishable to the caller.
func Login(s store.Store, a *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}

		var input credentials
		if err := json.Unmarshal(body, &input); err != nil || input.Username == "" || input.Password == "" {
			validation.WriteError(w, errors.New("username and password are required"), http.StatusBadRequest)
			return
		}

		user, err := s.GetUserByUsername(r.Context(), input.Username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				validation.WriteError(w, errors.New("invalid credentials"), http.StatusUnauthorized)
				return
			}
			serverError(w, r, err)
			return
		}
		if !a.CheckPassword(user.Password, input.Password) {
			validation.WriteError(w, errors.New("invalid credentials"), http.StatusUnauthorized)
			return
		}

		token, err := a.GenerateToken(user.ID)
		if err != nil {
			serverError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, authResponse{User: user, Token: token})
	}
}
