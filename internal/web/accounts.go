package web

import (
	"errors"
	"net/http"
	"polling_system/internal/services"
	"polling_system/internal/sessions"
	"polling_system/internal/storage"
)

const invalidLoginMessage = "Please enter a correct username and password."

type registerForm struct {
	Username string
	Email    string
}

type registerView struct {
	page
	Form  registerForm
	Error string
}

type loginView struct {
	page
	Username string
	Next     string
	Error    string
}

type profileView struct {
	page
	Username string
	Email    string
	Avatar   string
	Error    string
}

func (s *Server) registerForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "register.html", registerView{page: s.page(r, "Register")})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		s.renderRegister(w, r, registerForm{}, err.Error())
		return
	}

	form := registerForm{
		Username: r.PostForm.Get("username"),
		Email:    r.PostForm.Get("email"),
	}

	avatar, err := s.saveUpload(r, "avatar", storage.AvatarsDir)
	if errors.Is(err, storage.ErrNotImage) {
		s.renderRegister(w, r, form, err.Error())
		return
	} else if err != nil {
		s.serverError(w, r, err)
		return
	}

	user, err := s.users.Register(r.Context(), services.RegisterRequest{
		Username:  form.Username,
		Email:     form.Email,
		Password1: r.PostForm.Get("password1"),
		Password2: r.PostForm.Get("password2"),
		Avatar:    avatar,
	})
	if err != nil {
		s.removeUpload(avatar)

		if services.IsValidationError(err) {
			s.renderRegister(w, r, form, err.Error())
			return
		}
		s.serverError(w, r, err)
		return
	}

	if err := s.startSession(w, r, user.ID); err != nil {
		s.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) renderRegister(w http.ResponseWriter, r *http.Request, form registerForm, message string) {
	s.render(w, http.StatusOK, "register.html", registerView{
		page:  s.page(r, "Register"),
		Form:  form,
		Error: capitalize(message),
	})
}

func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login.html", loginView{
		page: s.page(r, "Log in"),
		Next: safeRedirect(r.URL.Query().Get("next")),
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, r, "", "/", invalidLoginMessage)
		return
	}

	username := r.PostForm.Get("username")
	next := safeRedirect(r.PostForm.Get("next"))

	user, err := s.users.Authenticate(r.Context(), username, r.PostForm.Get("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		s.renderLogin(w, r, username, next, invalidLoginMessage)
		return
	} else if err != nil {
		s.serverError(w, r, err)
		return
	}

	if err := s.startSession(w, r, user.ID); err != nil {
		s.serverError(w, r, err)
		return
	}

	s.logger.Infow("user logged in", "userID", user.ID)

	http.Redirect(w, r, next, http.StatusFound)
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, username, next, message string) {
	s.render(w, http.StatusOK, "login.html", loginView{
		page:     s.page(r, "Log in"),
		Username: username,
		Next:     next,
		Error:    message,
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.endSession(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) profileForm(w http.ResponseWriter, r *http.Request) {
	user := sessions.CurrentUser(r.Context())
	s.renderProfile(w, r, user.Username, user.Email, "")
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	user := sessions.CurrentUser(r.Context())

	if err := s.parseForm(w, r); err != nil {
		s.renderProfile(w, r, user.Username, user.Email, err.Error())
		return
	}

	username := r.PostForm.Get("username")
	email := r.PostForm.Get("email")

	avatar, err := s.saveUpload(r, "avatar", storage.AvatarsDir)
	if errors.Is(err, storage.ErrNotImage) {
		s.renderProfile(w, r, username, email, err.Error())
		return
	} else if err != nil {
		s.serverError(w, r, err)
		return
	}

	_, err = s.users.UpdateProfile(r.Context(), user, services.UpdateProfileRequest{
		Username: username,
		Email:    email,
		Avatar:   avatar,
	})
	if err != nil {
		s.removeUpload(avatar)

		if services.IsValidationError(err) {
			s.renderProfile(w, r, username, email, err.Error())
			return
		}
		s.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusFound)
}

func (s *Server) renderProfile(w http.ResponseWriter, r *http.Request, username, email, message string) {
	view := profileView{
		page:     s.page(r, "Profile"),
		Username: username,
		Email:    email,
		Error:    capitalize(message),
	}

	profile, err := s.users.GetProfile(r.Context(), sessions.CurrentUser(r.Context()))
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		s.serverError(w, r, err)
		return
	}
	if profile.HasAvatar() {
		view.Avatar = profile.Avatar
	}

	s.render(w, http.StatusOK, "profile.html", view)
}

func (s *Server) deleteProfileConfirm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "delete_profile_confirm.html", s.page(r, "Delete profile"))
}

func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Delete(r.Context(), sessions.CurrentUser(r.Context())); err != nil {
		s.serverError(w, r, err)
		return
	}

	s.endSession(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}
