package domain

// Models lists every table migrated at startup.
func Models() []any {
	return []any{&User{}, &Product{}, &CartItem{}, &Order{}, &Review{}, &Notification{}}
}
