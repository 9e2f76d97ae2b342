package clients

import "context"

// Credentials are the caller's headers forwarded to the marketplace backend,
// which owns authentication.
type Credentials struct {
	Authorization string
	Cookie        string
}

type credentialsKey struct{}

func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

func CredentialsFrom(ctx context.Context) Credentials {
	creds, _ := ctx.Value(credentialsKey{}).(Credentials)
	return creds
}
