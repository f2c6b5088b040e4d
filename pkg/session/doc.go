// Package session keeps anonymous visitor sessions on the server.
//
// A Manager pairs a Transport, which carries the session token, with a Store,
// which holds the session. CookieTransport keeps the token in an encrypted
// cookie and HeaderTransport in a request header; CompositeTransport accepts
// either. MemoryStore serves a single process and RedisStore a shared
// deployment. Save slides the idle expiry, capped by the absolute lifetime.
//
//	m := session.New(
//		session.WithCookieManager(cookies),
//		session.WithStore(session.NewRedisStore(client)),
//	)
//	sess, err := m.Ensure(ctx, w, r)
//	...
//	err = m.Save(ctx, sess)
//
// # Flash data
//
// Flash stores a value for the current and the next request. The owner of
// the request lifecycle calls AgeFlashData once per request, just before
// Save. Keep extends flashed values by one request, typically
// across a redirect, and Forget drops a value early. Bookkeeping lives in the
// session data under "_flash.new" and "_flash.old".
package session
