package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - ключ, по которому хранится *gorm.DB запроса
	DBContextKey = contextKey("db")

	// SessionContextKey - ключ для *session.Session текущего запроса
	SessionContextKey = contextKey("session")
)
