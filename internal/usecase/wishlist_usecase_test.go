package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"nothingelse-storefront/internal/domain"
	"nothingelse-storefront/internal/localstore"
	"nothingelse-storefront/internal/notify"
	"nothingelse-storefront/internal/remote"
	"nothingelse-storefront/internal/repository"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuth is a controllable AuthState.
type stubAuth struct {
	mu            sync.Mutex
	authenticated bool
	listeners     []func(bool)
}

func (s *stubAuth) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *stubAuth) OnChange(fn func(bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *stubAuth) setAuthenticated(v bool) {
	s.mu.Lock()
	s.authenticated = v
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(v)
	}
}

// fakeWishlistBackend is an in-memory stand-in for the wishlist endpoints.
type fakeWishlistBackend struct {
	mu      sync.Mutex
	items   []domain.WishlistItem
	shareID string
	hits    int
}

func (b *fakeWishlistBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /wishlist", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.hits++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": b.items, "shareId": b.shareID,
		})
	})

	mux.HandleFunc("POST /wishlist", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Items []domain.WishlistItem `json:"items"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.hits++
		b.items = body.Items
		w.Write([]byte(`{}`))
	})

	mux.HandleFunc("POST /wishlist/share", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.shareID = "share-123"
		json.NewEncoder(w).Encode(map[string]string{"shareId": b.shareID})
	})

	mux.HandleFunc("GET /wishlist/shared/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if r.PathValue("id") != b.shareID || b.shareID == "" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "wishlist not found"})
			return
		}
		json.NewEncoder(w).Encode(domain.SharedWishlist{OwnerName: "Ada", Items: b.items})
	})

	return mux
}

type wishlistFixture struct {
	wishlist *WishlistUsecase
	auth     *stubAuth
	backend  *fakeWishlistBackend
	store    localstore.Store
	recorder *notify.Recorder
}

func newWishlistFixture(t *testing.T, authenticated bool) *wishlistFixture {
	t.Helper()
	backend := &fakeWishlistBackend{}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	store := localstore.NewMemoryStore()
	api, err := remote.New(server.URL, store, nil, 5*time.Second)
	require.NoError(t, err)

	auth := &stubAuth{authenticated: authenticated}
	recorder := notify.NewRecorder()
	wishlist := NewWishlistUsecase(
		auth,
		api,
		repository.NewRemoteWishlistStore(api),
		repository.NewLocalWishlistStore(store),
		recorder,
		"https://shop.example.com",
	)
	require.NoError(t, wishlist.Load(context.Background()))

	return &wishlistFixture{
		wishlist: wishlist,
		auth:     auth,
		backend:  backend,
		store:    store,
		recorder: recorder,
	}
}

func TestWishlist_GuestAddPersistsLocally(t *testing.T) {
	f := newWishlistFixture(t, false)

	f.wishlist.AddItem(context.Background(), testProduct("prod-1", "Poster", 20, nil))

	require.True(t, f.wishlist.IsInWishlist("prod-1"))

	raw, ok := f.store.Get(localstore.KeyWishlist)
	require.True(t, ok)
	var saved []domain.WishlistItem
	require.NoError(t, json.Unmarshal([]byte(raw), &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, "prod-1", saved[0].ProductID)
	assert.False(t, saved[0].AddedAt.IsZero())

	f.backend.mu.Lock()
	defer f.backend.mu.Unlock()
	assert.Zero(t, f.backend.hits, "guest wishlist must never touch the backend")
}

func TestWishlist_AddIsIdempotent(t *testing.T) {
	f := newWishlistFixture(t, false)
	product := testProduct("prod-1", "Poster", 20, nil)

	f.wishlist.AddItem(context.Background(), product)
	f.wishlist.AddItem(context.Background(), product)

	assert.Len(t, f.wishlist.Items(), 1, "duplicate add must not grow the list")

	last, ok := f.recorder.Last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelInfo, last.Level)
	assert.Contains(t, last.Message, "already in wishlist")
}

func TestWishlist_AuthenticatedSavesRemotely(t *testing.T) {
	f := newWishlistFixture(t, true)

	f.wishlist.AddItem(context.Background(), testProduct("prod-9", "Print", 30, pricePtr(25)))

	f.backend.mu.Lock()
	defer f.backend.mu.Unlock()
	require.Len(t, f.backend.items, 1)
	assert.Equal(t, "prod-9", f.backend.items[0].ProductID)

	// Nothing lands under the guest key.
	_, ok := f.store.Get(localstore.KeyWishlist)
	assert.False(t, ok)
}

func TestWishlist_AuthChangeSwitchesBackend(t *testing.T) {
	f := newWishlistFixture(t, false)
	ctx := context.Background()

	// Guest saves one item locally.
	f.wishlist.AddItem(ctx, testProduct("guest-1", "Guest Pick", 10, nil))
	require.True(t, f.wishlist.IsInWishlist("guest-1"))

	// The account wishlist already holds a different item.
	f.backend.mu.Lock()
	f.backend.items = []domain.WishlistItem{{ProductID: "acct-1", Name: "Account Pick", Price: 99}}
	f.backend.mu.Unlock()

	// Login: the account list replaces the guest list, no merging.
	f.auth.setAuthenticated(true)
	assert.False(t, f.wishlist.IsInWishlist("guest-1"))
	assert.True(t, f.wishlist.IsInWishlist("acct-1"))

	// Logout: the guest list is back, untouched.
	f.auth.setAuthenticated(false)
	assert.True(t, f.wishlist.IsInWishlist("guest-1"))
	assert.False(t, f.wishlist.IsInWishlist("acct-1"))
}

func TestWishlist_ShareLink(t *testing.T) {
	t.Run("guest fails fast", func(t *testing.T) {
		f := newWishlistFixture(t, false)

		_, err := f.wishlist.GenerateShareLink(context.Background())
		require.ErrorIs(t, err, ErrNotAuthenticated)

		last, ok := f.recorder.Last()
		require.True(t, ok)
		assert.Equal(t, notify.LevelError, last.Level)
	})

	t.Run("authenticated round trip", func(t *testing.T) {
		f := newWishlistFixture(t, true)
		ctx := context.Background()

		f.wishlist.AddItem(ctx, testProduct("prod-1", "Poster", 20, nil))

		link, err := f.wishlist.GenerateShareLink(ctx)
		require.NoError(t, err)
		assert.Equal(t, "https://shop.example.com/wishlist/shared/share-123", link)
		assert.Equal(t, "share-123", f.wishlist.ShareID())

		// Anyone holding the id can resolve the snapshot anonymously.
		shared, err := f.wishlist.GetSharedWishlist(ctx, "share-123")
		require.NoError(t, err)
		require.NotNil(t, shared)
		assert.Equal(t, "Ada", shared.OwnerName)
		require.Len(t, shared.Items, 1)
		assert.Equal(t, "prod-1", shared.Items[0].ProductID)
	})

	t.Run("unknown share id reads as not found", func(t *testing.T) {
		f := newWishlistFixture(t, true)

		shared, err := f.wishlist.GetSharedWishlist(context.Background(), "no-such-id")
		require.NoError(t, err)
		assert.Nil(t, shared)
	})
}

// failingSaveStore loads fine but refuses every save.
type failingSaveStore struct{}

func (failingSaveStore) Load(ctx context.Context) ([]domain.WishlistItem, string, error) {
	return nil, "", nil
}

func (failingSaveStore) Save(ctx context.Context, items []domain.WishlistItem) error {
	return errors.New("backend down")
}

func TestWishlist_RemoteSaveFailureIsSwallowed(t *testing.T) {
	auth := &stubAuth{authenticated: true}
	wishlist := NewWishlistUsecase(
		auth, nil, failingSaveStore{},
		repository.NewLocalWishlistStore(localstore.NewMemoryStore()),
		notify.NewRecorder(), "https://shop.example.com",
	)
	ctx := context.Background()
	require.NoError(t, wishlist.Load(ctx))

	// The optimistic update stands even though the save failed.
	wishlist.AddItem(ctx, testProduct("prod-1", "Poster", 20, nil))
	assert.True(t, wishlist.IsInWishlist("prod-1"))
}

// gateStore blocks its first Load until released, so a test can overlap
// two loads deterministically.
type gateStore struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
	first   []domain.WishlistItem
	second  []domain.WishlistItem
}

func (s *gateStore) Load(ctx context.Context) ([]domain.WishlistItem, string, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()

	if call == 1 {
		close(s.started)
		<-s.release
		return s.first, "", nil
	}
	return s.second, "", nil
}

func (s *gateStore) Save(ctx context.Context, items []domain.WishlistItem) error {
	return nil
}

func TestWishlist_StaleLoadIsDiscarded(t *testing.T) {
	store := &gateStore{
		started: make(chan struct{}),
		release: make(chan struct{}),
		first:   []domain.WishlistItem{{ProductID: "stale"}},
		second:  []domain.WishlistItem{{ProductID: "fresh"}},
	}
	auth := &stubAuth{authenticated: true}
	wishlist := NewWishlistUsecase(
		auth, nil, store,
		repository.NewLocalWishlistStore(localstore.NewMemoryStore()),
		notify.NewRecorder(), "https://shop.example.com",
	)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- wishlist.Load(ctx)
	}()

	// The first load is in flight; a second one starts and finishes.
	<-store.started
	require.NoError(t, wishlist.Load(ctx))
	assert.True(t, wishlist.IsInWishlist("fresh"))

	// Now the slow first response lands. It must be discarded.
	close(store.release)
	require.NoError(t, <-done)

	assert.True(t, wishlist.IsInWishlist("fresh"))
	assert.False(t, wishlist.IsInWishlist("stale"), "a stale response must not clobber newer state")
}
