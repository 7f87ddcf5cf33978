package models

// AllModels - порядок важен для AutoMigrate (внешние ключи)
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Request{},
		&HelpOffer{},
		&Notification{},
	}
}
