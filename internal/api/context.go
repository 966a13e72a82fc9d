// ABOUTME: Request context key types and constants for the api package.
// ABOUTME: Used by middleware to inject auth state and by handlers to read it.
package api

type contextKey int

const (
	ctxUserID        contextKey = iota // uuid.UUID — authenticated actor
	ctxRoles                           // []authz.Role — validated role names from the session
	ctxChapterID                       // uuid.UUID — actor's home chapter
	ctxLevel                           // authz.Level — highest level among the actor's roles
	ctxInstitutionID                   // uuid.UUID — set only for external coordinator actors
)
