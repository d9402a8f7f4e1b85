package web

import (
	"net/http"

	"github.com/utafrali/BlogGo/internal/api"
	"github.com/utafrali/BlogGo/pkg/validator"
)

type authPage struct {
	basePage
	Email    string
	Username string
	Next     string
	Fields   map[string]string
}

// LoginForm renders the login page. An already-authenticated session goes
// straight home.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.store.Snapshot().Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render.Render(w, http.StatusOK, "login.html", authPage{
		basePage: h.base(r, "Log In"),
		Next:     r.URL.Query().Get("next"),
	})
}

// LoginSubmit authenticates and redirects to where the guard sent the
// visitor from, defaulting to home.
func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	req := api.LoginRequest{Email: email, Password: password}
	if err := validator.Validate(req); err != nil {
		view := authPage{basePage: h.base(r, "Log In"), Email: email, Next: r.FormValue("next")}
		view.Error = "Please enter a valid email and password."
		view.Fields = validationFields(err)
		h.render.Render(w, http.StatusBadRequest, "login.html", view)
		return
	}

	if _, err := h.store.Login(r.Context(), email, password); err != nil {
		view := authPage{basePage: h.base(r, "Log In"), Email: email, Next: r.FormValue("next")}
		view.Error = "Invalid email or password."
		h.render.Render(w, http.StatusUnauthorized, "login.html", view)
		return
	}
	http.Redirect(w, r, loginReturnTarget(r), http.StatusSeeOther)
}

// loginReturnTarget reads the post-login destination from the form. Only
// local paths are honored; anything else falls back to home.
func loginReturnTarget(r *http.Request) string {
	next := r.FormValue("next")
	if len(next) > 1 && next[0] == '/' && next[1] != '/' {
		return next
	}
	return "/"
}

// RegisterForm renders the signup page.
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if h.store.Snapshot().Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render.Render(w, http.StatusOK, "register.html", authPage{basePage: h.base(r, "Sign Up")})
}

// RegisterSubmit creates the account and starts its first session.
func (h *Handler) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	req := api.RegisterRequest{Username: username, Email: email, Password: password}
	if err := validator.Validate(req); err != nil {
		view := authPage{basePage: h.base(r, "Sign Up"), Email: email, Username: username}
		view.Error = err.Error()
		view.Fields = validationFields(err)
		h.render.Render(w, http.StatusBadRequest, "register.html", view)
		return
	}

	if _, err := h.store.Register(r.Context(), username, email, password); err != nil {
		view := authPage{basePage: h.base(r, "Sign Up"), Email: email, Username: username}
		view.Error = userMessage(err)
		h.render.Render(w, http.StatusBadRequest, "register.html", view)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session and returns home. The server notification is
// fire-and-forget inside the store.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Logout(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type profilePage struct {
	basePage
	Fields map[string]string
	Saved  bool
}

// ProfileForm renders the profile editor for the current user.
func (h *Handler) ProfileForm(w http.ResponseWriter, r *http.Request) {
	view := profilePage{basePage: h.base(r, "Your Profile")}
	view.Saved = r.URL.Query().Get("saved") == "1"
	h.render.Render(w, http.StatusOK, "profile.html", view)
}

// ProfileSubmit saves profile edits through the session store, which owns
// the held identity.
func (h *Handler) ProfileSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	bio := r.FormValue("bio")

	req := api.UpdateProfileRequest{}
	if username != "" {
		req.Username = &username
	}
	req.Bio = &bio

	if err := validator.Validate(req); err != nil {
		view := profilePage{basePage: h.base(r, "Your Profile")}
		view.Error = err.Error()
		view.Fields = validationFields(err)
		h.render.Render(w, http.StatusBadRequest, "profile.html", view)
		return
	}

	if _, err := h.store.UpdateProfile(r.Context(), req); err != nil {
		view := profilePage{basePage: h.base(r, "Your Profile")}
		view.Error = userMessage(err)
		h.render.Render(w, http.StatusBadGateway, "profile.html", view)
		return
	}
	http.Redirect(w, r, "/profile?saved=1", http.StatusSeeOther)
}

const maxProfilePictureSize = 5 << 20

// ProfilePicture uploads a new profile picture. Size and type limits match
// what the server enforces, so a too-large file is rejected here instead of
// after a full round trip.
func (h *Handler) ProfilePicture(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxProfilePictureSize+4096)
	file, header, err := r.FormFile("profile_picture")
	if err != nil {
		view := profilePage{basePage: h.base(r, "Your Profile")}
		view.Error = "Please choose an image up to 5 MB."
		h.render.Render(w, http.StatusBadRequest, "profile.html", view)
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	if header.Size > maxProfilePictureSize || (contentType != "image/jpeg" && contentType != "image/png") {
		view := profilePage{basePage: h.base(r, "Your Profile")}
		view.Error = "Profile pictures must be JPG or PNG and at most 5 MB."
		h.render.Render(w, http.StatusBadRequest, "profile.html", view)
		return
	}

	if _, err := h.store.UploadProfilePicture(r.Context(), header.Filename, file); err != nil {
		view := profilePage{basePage: h.base(r, "Your Profile")}
		view.Error = userMessage(err)
		h.render.Render(w, http.StatusBadGateway, "profile.html", view)
		return
	}
	http.Redirect(w, r, "/profile?saved=1", http.StatusSeeOther)
}
