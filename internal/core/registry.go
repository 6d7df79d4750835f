package core

import "sync"

// Registry is the single consistency domain for nickname identity and
// channel membership. One mutex covers both mappings, so the forward
// (nickname -> channel) and inverse (channel -> member set) views can never
// be observed out of step, and a check-then-insert on a nickname cannot
// interleave with another session's handshake.
//
// Registry methods only mutate maps under the lock; they never perform I/O.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session            // nickname -> live session
	members  map[string]map[string]struct{} // channel -> member nicknames
	channels map[string]string              // nickname -> current channel
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		members:  make(map[string]map[string]struct{}),
		channels: make(map[string]string),
	}
}

// Register atomically reserves nick for s. Returns ErrNicknameTaken if the
// nickname is currently held; the registry is left unchanged in that case.
// The new session belongs to no channel until Join is called.
func (r *Registry) Register(nick string, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.sessions[nick]; taken {
		return ErrNicknameTaken
	}
	r.sessions[nick] = s
	return nil
}

// Unregister removes nick from the identity map and from whatever channel it
// occupies, as one atomic step. The session pointer must match the one that
// registered the nickname, so a rejected or already-replaced session cannot
// evict the current holder. Idempotent: reports the channel the nickname
// occupied and whether anything was removed.
func (r *Registry) Unregister(nick string, s *Session) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.sessions[nick]
	if !ok || cur != s {
		return "", false
	}
	delete(r.sessions, nick)

	ch, inChannel := r.channels[nick]
	if inChannel {
		delete(r.channels, nick)
		r.removeMember(ch, nick)
	}
	return ch, true
}

// Lookup returns the live session holding nick.
func (r *Registry) Lookup(nick string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[nick]
	return s, ok
}

// Join moves nick into channel, updating both mappings as one atomic step,
// and returns the channel it left (empty on first join). Returns
// ErrAlreadyInChannel when the target equals the current channel and
// ErrNotRegistered when no live session holds the nickname.
func (r *Registry) Join(nick, channel string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[nick]; !ok {
		return "", ErrNotRegistered
	}

	prev, inChannel := r.channels[nick]
	if inChannel && prev == channel {
		return prev, ErrAlreadyInChannel
	}
	if inChannel {
		r.removeMember(prev, nick)
	}

	set, ok := r.members[channel]
	if !ok {
		set = make(map[string]struct{})
		r.members[channel] = set
	}
	set[nick] = struct{}{}
	r.channels[nick] = channel
	return prev, nil
}

// Members returns a point-in-time snapshot of the sessions in channel.
// Callers perform any network writes after this returns, never under the
// registry lock.
func (r *Registry) Members(channel string) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.members[channel]
	out := make([]*Session, 0, len(set))
	for nick := range set {
		if s, ok := r.sessions[nick]; ok {
			out = append(out, s)
		}
	}
	return out
}

// CurrentChannel returns the channel nick currently occupies.
func (r *Registry) CurrentChannel(nick string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.channels[nick]
	return ch, ok
}

// removeMember deletes nick from channel's set and garbage-collects the
// entry once empty. Caller holds r.mu.
func (r *Registry) removeMember(channel, nick string) {
	set, ok := r.members[channel]
	if !ok {
		return
	}
	delete(set, nick)
	if len(set) == 0 {
		delete(r.members, channel)
	}
}
