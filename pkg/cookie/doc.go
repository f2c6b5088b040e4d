// Package cookie reads and writes HTTP cookies with shared defaults.
//
// Plain cookies go through Set and Get. SetEncrypted and GetEncrypted seal the
// value with AES-256-GCM, keyed by a SHA-256 digest of the secret. The session
// cookie transport stores its token this way.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")}, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//	_ = m.SetEncrypted(w, "sid", token, cookie.WithMaxAge(3600))
//	token, err := m.GetEncrypted(r, "sid")
//
// Passing several secrets rotates them: the first one encrypts, all of them
// are tried on decrypt.
package cookie
