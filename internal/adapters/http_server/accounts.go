package httpserver

import "net/http"

type signUpReq struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=128"`
	Name     string `json:"name" validate:"required,max=100"`
}

type signInReq struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

type resetReq struct {
	Email string `json:"email" validate:"required,max=254"`
}

type profileReq struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (h *Handlers) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpReq
	if !h.decode(w, r, &req) {
		return
	}
	s, err := h.Accounts.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *Handlers) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInReq
	if !h.decode(w, r, &req) {
		return
	}
	s, err := h.Accounts.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// passwordReset answers the same way whether or not the account exists.
func (h *Handlers) passwordReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.Accounts.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"status": "If an account exists for this email, a reset link has been sent",
	})
}

func (h *Handlers) getMe(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	u, err := h.Accounts.Profile(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) patchMe(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req profileReq
	if !h.decode(w, r, &req) {
		return
	}
	u, err := h.Accounts.UpdateName(r.Context(), p, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) completeOnboarding(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	u, err := h.Accounts.CompleteOnboarding(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
