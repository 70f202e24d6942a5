// Package clientip resolves the address of the client behind an HTTP request
// and carries it through the request context into logs.
//
// Forwarding headers are ignored unless explicitly trusted:
//
//	r := clientip.New("CF-Connecting-IP", "X-Forwarded-For")
//	router.Use(r.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
package clientip
