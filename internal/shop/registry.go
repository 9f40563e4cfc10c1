package shop

import (
	"context"
	"sync"
)

// Registry hands out one container per session id. A container is
// created on login, or lazily rebuilt when a request arrives for a sid
// whose session the gateway still binds to a user (the "prior session
// exists at process start" path).
type Registry struct {
	gw Gateway

	mu     sync.Mutex
	stores map[string]*Store
}

func NewRegistry(gw Gateway) *Registry {
	return &Registry{gw: gw, stores: make(map[string]*Store)}
}

// Login builds (or reuses) the sid's container and signs it in.
func (r *Registry) Login(ctx context.Context, sid, email, password string) (*Store, error) {
	st := r.obtain(sid)
	if err := st.Login(ctx, email, password); err != nil {
		return nil, err
	}
	return st, nil
}

// Register signs a new account up; no container exists until login.
func (r *Registry) Register(ctx context.Context, email, password string) error {
	return r.gw.Auth.SignUp(ctx, email, password)
}

// Attach returns the sid's live container, restoring one from the bound
// session if needed. Returns the gateway's no-session error when the
// sid is anonymous.
func (r *Registry) Attach(ctx context.Context, sid string) (*Store, error) {
	r.mu.Lock()
	if st, ok := r.stores[sid]; ok && st.User() != nil {
		r.mu.Unlock()
		return st, nil
	}
	r.mu.Unlock()

	st := r.obtain(sid)
	if err := st.Restore(ctx); err != nil {
		// An anonymous sid must not pin a container, or every sprayed
		// cookie value grows the map forever.
		r.mu.Lock()
		if cur, ok := r.stores[sid]; ok && cur == st && cur.User() == nil {
			delete(r.stores, sid)
		}
		r.mu.Unlock()
		return nil, err
	}
	return st, nil
}

// Size reports how many containers are live.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Drop forgets the sid's container after logout.
func (r *Registry) Drop(sid string) {
	r.mu.Lock()
	delete(r.stores, sid)
	r.mu.Unlock()
}

func (r *Registry) obtain(sid string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.stores[sid]; ok {
		return st
	}
	st := New(r.gw, sid)
	r.stores[sid] = st
	return st
}
