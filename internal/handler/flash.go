package handler

import (
	"net/http"
	"time"

	"github.com/mudancafacil/mf-webclient-go/internal/infra/cache"

	"github.com/google/uuid"
)

const flashCookie = "mf_flash"

// Flashes hands one-shot notifications across redirects. The message lives
// in a TTL cache keyed by a random id; the cookie only carries the id.
type Flashes struct {
	store *cache.InMemory[string]
}

// NewFlashes creates a flash store whose messages expire after ttl.
func NewFlashes(ttl time.Duration) *Flashes {
	return &Flashes{store: cache.New[string](ttl)}
}

// Set queues a message for the next page render.
func (f *Flashes) Set(w http.ResponseWriter, message string) {
	id := uuid.NewString()
	f.store.Set(id, message)
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Take consumes the pending message, if any. The cookie and the cached entry
// are cleared so the message shows once.
func (f *Flashes) Take(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	message, _ := f.store.Pop(c.Value)
	return message
}
