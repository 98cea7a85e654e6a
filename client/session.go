package client

import "time"

// Session is the in-memory representation of the authenticated identity,
// derived from the current token and never mutated in place. A nil *Session
// means logged out.
type Session struct {
	ID       string
	Username string
	Role     string
	Email    string
}

// SessionListener is notified with the current session (possibly nil) after
// every committed token change.
type SessionListener func(*Session)

// Session returns the current session snapshot, or nil when logged out.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Ready reports whether the initial session derivation has completed.
func (c *Client) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Bootstrap derives the session from any previously persisted token. Call it
// once at application start; the route guard reports Loading until then.
func (c *Client) Bootstrap() error {
	c.mu.Lock()
	err := c.deriveLocked()
	c.ready = true
	listeners, session := c.snapshotListenersLocked()
	c.mu.Unlock()

	notify(listeners, session)
	return err
}

// Subscribe registers a listener for session changes and returns an
// unsubscribe function. Components rendering session-dependent state register
// here instead of polling the store.
func (c *Client) Subscribe(listener SessionListener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = listener

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// deriveLocked recomputes the session from the token store. A malformed or
// expired token is cleared so the store never holds a token the session layer
// already rejected. Caller holds c.mu.
func (c *Client) deriveLocked() error {
	token, err := c.store.Get()
	if err != nil {
		c.session = nil
		return err
	}
	if token == "" {
		c.session = nil
		return nil
	}

	claims, err := DecodeToken(token)
	if err != nil {
		c.session = nil
		return c.store.Clear()
	}
	if claims.Expired(c.now()) {
		c.session = nil
		return c.store.Clear()
	}

	c.session = &Session{
		ID:       claims.Subject,
		Username: claims.Subject,
		Role:     claims.UserType,
		Email:    claims.Email,
	}
	return nil
}

// commitToken persists a new token value (or clears it when empty), bumps the
// generation and re-derives the session. Returns the listeners to notify.
func (c *Client) commitTokenLocked(token string) error {
	c.generation++
	var err error
	if token == "" {
		err = c.store.Clear()
	} else {
		err = c.store.Set(token)
	}
	if err != nil {
		return err
	}
	return c.deriveLocked()
}

func (c *Client) snapshotListenersLocked() ([]SessionListener, *Session) {
	listeners := make([]SessionListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	return listeners, c.session
}

func notify(listeners []SessionListener, session *Session) {
	for _, l := range listeners {
		l(session)
	}
}

func defaultNow() time.Time {
	return time.Now()
}
