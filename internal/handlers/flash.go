package handlers

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookie = "flash"

// Flash is a one-shot toast carried across a redirect. Kind is "success"
// or "error"; the page script auto-dismisses it after three seconds.
type Flash struct {
	Kind    string
	Message string
}

// SetFlash stores the toast for the next page render.
func SetFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// PopFlash reads and clears the pending toast, if any.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(raw, "|")
	if !ok {
		return &Flash{Kind: "success", Message: raw}
	}
	return &Flash{Kind: kind, Message: msg}
}
