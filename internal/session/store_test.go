package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/go-storefront/internal/model"
)

type memStorage map[string]string

func (m memStorage) Get(key string) (string, error) { return m[key], nil }
func (m memStorage) Set(key, value string) error    { m[key] = value; return nil }
func (m memStorage) Delete(key string) error        { delete(m, key); return nil }

func TestStore_InitializeRestoresSession(t *testing.T) {
	storage := memStorage{
		tokenKey: "abc",
		userKey:  `{"id":1,"username":"alice"}`,
	}
	store := NewStore(storage)
	store.Initialize()

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "abc", store.Token())
	user, ok := store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)
}

func TestStore_InitializeCorruptUserDemotesToLoggedOut(t *testing.T) {
	storage := memStorage{
		tokenKey: "abc",
		userKey:  "not-json",
	}
	store := NewStore(storage)
	store.Initialize()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Empty(t, storage[tokenKey])
	assert.Empty(t, storage[userKey])
}

func TestStore_InitializeMissingTokenStaysLoggedOut(t *testing.T) {
	storage := memStorage{userKey: `{"id":1,"username":"alice"}`}
	store := NewStore(storage)
	store.Initialize()

	assert.False(t, store.IsAuthenticated())
}

func TestStore_InitializeExpiredJWTLogsOut(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)

	storage := memStorage{
		tokenKey: token,
		userKey:  `{"id":1,"username":"alice"}`,
	}
	store := NewStore(storage)
	store.Initialize()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, storage[tokenKey])
}

func TestStore_LoginOverwritesAndClosesModal(t *testing.T) {
	storage := memStorage{}
	store := NewStore(storage)
	store.OpenAuthModal()
	require.True(t, store.AuthModalVisible())

	store.Login("tok", model.User{ID: 2, Username: "bob"})

	assert.True(t, store.IsAuthenticated())
	assert.False(t, store.AuthModalVisible())
	assert.Equal(t, "tok", storage[tokenKey])
	assert.Contains(t, storage[userKey], `"bob"`)
}

func TestStore_Logout(t *testing.T) {
	storage := memStorage{}
	store := NewStore(storage)
	store.Login("tok", model.User{ID: 2, Username: "bob"})

	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	_, ok := store.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, storage[tokenKey])
	assert.Empty(t, storage[userKey])
}

func TestStore_ModalToggle(t *testing.T) {
	store := NewStore(memStorage{})
	store.OpenAuthModal()
	assert.True(t, store.AuthModalVisible())
	store.CloseAuthModal()
	assert.False(t, store.AuthModalVisible())
}

func TestFileStorage_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	storage, err := NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, storage.Set("token", "abc"))
	require.NoError(t, storage.Set("user", `{"id":1}`))

	reopened, err := NewFileStorage(path)
	require.NoError(t, err)
	got, err := reopened.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, reopened.Delete("token"))
	got, err = reopened.Get("token")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStorage_CorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not-json"), 0o600))

	storage, err := NewFileStorage(path)
	require.NoError(t, err)
	got, err := storage.Get("token")
	require.NoError(t, err)
	assert.Empty(t, got)
}
