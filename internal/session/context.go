package session

import "context"

type ctxKey int

const (
	ownerKey ctxKey = iota
	anonymousKey
)

// WithOwner кладет идентификатор владельца данных в контекст запроса.
// anonymous = true, если владелец определен по X-Client-ID, а не по токену.
func WithOwner(ctx context.Context, owner string, anonymous bool) context.Context {
	ctx = context.WithValue(ctx, ownerKey, owner)
	return context.WithValue(ctx, anonymousKey, anonymous)
}

// OwnerFromContext владелец из контекста, "" если не задан
func OwnerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(ownerKey).(string)
	return owner
}

// IsAnonymous запрос без токена
func IsAnonymous(ctx context.Context) bool {
	anonymous, ok := ctx.Value(anonymousKey).(bool)
	return !ok || anonymous
}
