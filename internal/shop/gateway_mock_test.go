package shop_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"tokokita/internal/domain"
	"tokokita/internal/shop"
)

// mockGW backs every gateway interface through small wrapper types. It
// records call order and can be told to fail specific methods.
type mockGW struct {
	mu     sync.Mutex
	calls  []string
	fail   map[string]error
	failAt map[string]int
	seen   map[string]int

	user     domain.User
	profile  domain.Profile
	products map[string]domain.Product
	cartRows map[string]domain.CartLine
	favRows  map[string]bool
	placed   []placedOrder

	cartList  []domain.CartLine
	orderList []domain.Order
}

type placedOrder struct {
	userID  string
	order   domain.Order
	cleared []string
}

func newMockGW() *mockGW {
	return &mockGW{
		fail:     map[string]error{},
		failAt:   map[string]int{},
		seen:     map[string]int{},
		user:     domain.User{ID: "u-1", Email: "sari@tokokita.test"},
		profile:  domain.Profile{ID: "u-1", FullName: "Sari", Role: "user"},
		products: map[string]domain.Product{},
		cartRows: map[string]domain.CartLine{},
		favRows:  map[string]bool{},
	}
}

func (g *mockGW) record(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, name)
	g.seen[name]++
	if g.failAt[name] == g.seen[name] {
		return fmt.Errorf("%s: injected failure", name)
	}
	return g.fail[name]
}

func (g *mockGW) failOn(name string) {
	g.mu.Lock()
	g.fail[name] = fmt.Errorf("%s: injected failure", name)
	g.mu.Unlock()
}

// failNth fails only the nth call of the named method (1-based).
func (g *mockGW) failNth(name string, n int) {
	g.mu.Lock()
	g.failAt[name] = n
	g.mu.Unlock()
}

func (g *mockGW) callLog() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.calls))
	copy(out, g.calls)
	return out
}

func (g *mockGW) callCount(name string) int {
	n := 0
	for _, c := range g.callLog() {
		if c == name {
			n++
		}
	}
	return n
}

func (g *mockGW) gateway() shop.Gateway {
	return shop.Gateway{
		Products:  mockProducts{g},
		Cart:      mockCart{g},
		Favorites: mockFavs{g},
		Orders:    mockOrders{g},
		Profiles:  mockProfiles{g},
		Auth:      mockAuth{g},
		Blobs:     mockBlobs{g},
	}
}

type mockProducts struct{ g *mockGW }

func (m mockProducts) List(ctx context.Context) ([]domain.Product, error) {
	if err := m.g.record("Products.List"); err != nil {
		return nil, err
	}
	m.g.mu.Lock()
	defer m.g.mu.Unlock()
	var out []domain.Product
	for _, p := range m.g.products {
		out = append(out, p)
	}
	return out, nil
}

func (m mockProducts) Get(ctx context.Context, id string) (domain.Product, error) {
	if err := m.g.record("Products.Get"); err != nil {
		return domain.Product{}, err
	}
	m.g.mu.Lock()
	defer m.g.mu.Unlock()
	p, ok := m.g.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s not found", id)
	}
	return p, nil
}

func (m mockProducts) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if err := m.g.record("Products.GetByIDs"); err != nil {
		return nil, err
	}
	m.g.mu.Lock()
	defer m.g.mu.Unlock()
	var out []domain.Product
	for _, id := range ids {
		if p, ok := m.g.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m mockProducts) Insert(ctx context.Context, p domain.Product) error {
	if err := m.g.record("Products.Insert"); err != nil {
		return err
	}
	m.g.mu.Lock()
	m.g.products[p.ID] = p
	m.g.mu.Unlock()
	return nil
}

func (m mockProducts) Update(ctx context.Context, p domain.Product) error {
	if err := m.g.record("Products.Update"); err != nil {
		return err
	}
	m.g.mu.Lock()
	m.g.products[p.ID] = p
	m.g.mu.Unlock()
	return nil
}

func (m mockProducts) Delete(ctx context.Context, id string) error {
	if err := m.g.record("Products.Delete"); err != nil {
		return err
	}
	m.g.mu.Lock()
	delete(m.g.products, id)
	m.g.mu.Unlock()
	return nil
}

type mockCart struct{ g *mockGW }

func (m mockCart) ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	if err := m.g.record("Cart.ListByUser"); err != nil {
		return nil, err
	}
	return m.g.cartList, nil
}

func (m mockCart) Upsert(ctx context.Context, userID string, line domain.CartLine) error {
	if err := m.g.record("Cart.Upsert"); err != nil {
		return err
	}
	m.g.mu.Lock()
	m.g.cartRows[line.Product.ID] = line
	m.g.mu.Unlock()
	return nil
}

func (m mockCart) SetQuantity(ctx context.Context, userID, productID string, qty int) error {
	if err := m.g.record("Cart.SetQuantity"); err != nil {
		return err
	}
	m.g.mu.Lock()
	if l, ok := m.g.cartRows[productID]; ok {
		l.Quantity = qty
		m.g.cartRows[productID] = l
	}
	m.g.mu.Unlock()
	return nil
}

func (m mockCart) Delete(ctx context.Context, userID, productID string) error {
	if err := m.g.record("Cart.Delete"); err != nil {
		return err
	}
	m.g.mu.Lock()
	delete(m.g.cartRows, productID)
	m.g.mu.Unlock()
	return nil
}

type mockFavs struct{ g *mockGW }

func (m mockFavs) ListProductIDs(ctx context.Context, userID string) ([]string, error) {
	if err := m.g.record("Favorites.ListProductIDs"); err != nil {
		return nil, err
	}
	m.g.mu.Lock()
	defer m.g.mu.Unlock()
	var out []string
	for id, ok := range m.g.favRows {
		if ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m mockFavs) Insert(ctx context.Context, userID, productID string) error {
	if err := m.g.record("Favorites.Insert"); err != nil {
		return err
	}
	m.g.mu.Lock()
	m.g.favRows[productID] = true
	m.g.mu.Unlock()
	return nil
}

func (m mockFavs) Delete(ctx context.Context, userID, productID string) error {
	if err := m.g.record("Favorites.Delete"); err != nil {
		return err
	}
	m.g.mu.Lock()
	delete(m.g.favRows, productID)
	m.g.mu.Unlock()
	return nil
}

type mockOrders struct{ g *mockGW }

func (m mockOrders) Place(ctx context.Context, userID string, o domain.Order, clearProductIDs []string) error {
	if err := m.g.record("Orders.Place"); err != nil {
		return err
	}
	m.g.mu.Lock()
	m.g.placed = append(m.g.placed, placedOrder{userID: userID, order: o, cleared: clearProductIDs})
	for _, id := range clearProductIDs {
		delete(m.g.cartRows, id)
	}
	m.g.mu.Unlock()
	return nil
}

func (m mockOrders) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if err := m.g.record("Orders.ListByUser"); err != nil {
		return nil, err
	}
	return m.g.orderList, nil
}

type mockProfiles struct{ g *mockGW }

func (m mockProfiles) Get(ctx context.Context, userID string) (domain.Profile, error) {
	if err := m.g.record("Profiles.Get"); err != nil {
		return domain.Profile{}, err
	}
	return m.g.profile, nil
}

func (m mockProfiles) Upsert(ctx context.Context, userID, fullName, address string) error {
	if err := m.g.record("Profiles.Upsert"); err != nil {
		return err
	}
	m.g.mu.Lock()
	m.g.profile.FullName = fullName
	m.g.profile.Address = address
	m.g.mu.Unlock()
	return nil
}

type mockAuth struct{ g *mockGW }

func (m mockAuth) SignIn(ctx context.Context, email, password, sid string) (*domain.User, error) {
	if err := m.g.record("Auth.SignIn"); err != nil {
		return nil, err
	}
	u := m.g.user
	return &u, nil
}

func (m mockAuth) SignUp(ctx context.Context, email, password string) error {
	return m.g.record("Auth.SignUp")
}

func (m mockAuth) SignOut(ctx context.Context, sid string) error {
	return m.g.record("Auth.SignOut")
}

func (m mockAuth) SessionUser(ctx context.Context, sid string) (*domain.User, error) {
	if err := m.g.record("Auth.SessionUser"); err != nil {
		return nil, err
	}
	u := m.g.user
	return &u, nil
}

type mockBlobs struct{ g *mockGW }

func (m mockBlobs) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := m.g.record("Blobs.Upload"); err != nil {
		return "", err
	}
	return "https://cdn.tokokita.test/media/" + name, nil
}

// signedInStore logs a fresh container in against the mock gateway.
func signedInStore(t *testing.T, g *mockGW) *shop.Store {
	t.Helper()
	st := shop.New(g.gateway(), "sid-test")
	require.NoError(t, st.Login(context.Background(), g.user.Email, "Passw0rd!"))
	return st
}

func product(id string, price int64) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, Price: price, Stock: 10}
}
