package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"whatyaneed_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Options - параметры cookie сессии
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session - состояние сессии текущего запроса
type Session struct {
	ID   string
	User *User

	// CookieSent - клиент прислал cookie, даже если хранилище его не знает
	// (сессия истекла или id подделан)
	CookieSent bool
}

// HasUser - к сессии привязан пользователь
func (s *Session) HasUser() bool {
	return s != nil && s.User != nil
}

// Binding - подтвержденная хранилищем привязка пользователя к сессии
type Binding struct {
	SessionID string
	User      User
	ExpiresAt time.Time
}

// Manager связывает cookie запроса с хранилищем сессий
type Manager struct {
	store Store
	opts  Options
	now   func() time.Time
}

func NewManager(store Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "sessionId"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{store: store, opts: opts, now: time.Now}
}

// Load читает cookie и достает сессию из хранилища. Живая сессия продлевается
// на полный TTL (cookie тоже). Неизвестный id дает анонимную сессию
// с CookieSent = true.
func (m *Manager) Load(c *gin.Context) (*Session, error) {
	id, err := c.Cookie(m.opts.CookieName)
	if err != nil || id == "" {
		return &Session{}, nil
	}

	ctx := c.Request.Context()
	user, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return &Session{CookieSent: true}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := m.store.Touch(ctx, id, m.opts.TTL); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	m.writeCookie(c, id, int(m.opts.TTL.Seconds()))

	return &Session{ID: id, User: user, CookieSent: true}, nil
}

// Bind создает новую сессию для пользователя. Старая сессия запроса (если была)
// уничтожается, так что id после логина всегда свежий. Cookie ставится только
// после того, как хранилище подтвердило запись.
func (m *Manager) Bind(c *gin.Context, current *Session, user User) (*Binding, error) {
	ctx := c.Request.Context()

	if current != nil && current.ID != "" {
		if err := m.store.Destroy(ctx, current.ID); err != nil {
			return nil, fmt.Errorf("destroy previous session: %w", err)
		}
	}

	id := uuid.NewString()
	if err := m.store.Bind(ctx, id, user, m.opts.TTL); err != nil {
		return nil, err
	}

	m.writeCookie(c, id, int(m.opts.TTL.Seconds()))
	if current != nil {
		current.ID = id
		current.User = &user
	}

	return &Binding{SessionID: id, User: user, ExpiresAt: m.now().Add(m.opts.TTL)}, nil
}

// Rebind обновляет снимок в существующей сессии (после изменения профиля/роли)
func (m *Manager) Rebind(ctx context.Context, current *Session, user User) error {
	if current == nil || current.ID == "" {
		return ErrNotFound
	}
	if err := m.store.Bind(ctx, current.ID, user, m.opts.TTL); err != nil {
		return err
	}
	current.User = &user
	return nil
}

// Destroy удаляет сессию и сбрасывает cookie. Без сессии - no-op.
func (m *Manager) Destroy(c *gin.Context, current *Session) error {
	if current != nil && current.ID != "" {
		if err := m.store.Destroy(c.Request.Context(), current.ID); err != nil {
			return err
		}
		current.ID = ""
		current.User = nil
	}
	m.writeCookie(c, "", -1)
	return nil
}

func (m *Manager) writeCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, value, maxAge, "/", "", m.opts.Secure, true)
}

// Current возвращает сессию, загруженную SessionMiddleware.
// Если middleware не отработал, возвращает пустую сессию.
func Current(c *gin.Context) *Session {
	if v, ok := c.Get(string(contextkeys.SessionContextKey)); ok {
		if s, ok := v.(*Session); ok && s != nil {
			return s
		}
	}
	return &Session{}
}

// CurrentUser - снимок пользователя текущего запроса или nil
func CurrentUser(c *gin.Context) *User {
	return Current(c).User
}
