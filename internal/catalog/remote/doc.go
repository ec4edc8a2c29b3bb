// Package remote provides an HTTP-backed catalog index.
//
// The client satisfies catalog.Index against a search service that already
// ranks entries server-side. Transient failures (network errors, 5xx)
// retry with exponential backoff until the caller's context expires;
// 4xx responses fail immediately since retrying cannot help.
package remote
