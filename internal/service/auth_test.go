package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/go-storefront/internal/api"
	"github.com/flicky/go-storefront/internal/dto"
	"github.com/flicky/go-storefront/internal/model"
)

type recordingSession struct {
	loggedIn  bool
	loggedOut bool
	token     string
	user      model.User
}

func (r *recordingSession) Login(token string, user model.User) {
	r.loggedIn = true
	r.token = token
	r.user = user
}

func (r *recordingSession) Logout() { r.loggedOut = true }

func TestAuthLogin_StoresSession(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": {"token": "tok-1", "user": {"id": 1, "username": "alice"}}}`))
	}))
	sess := &recordingSession{}
	svc := NewAuthService(client, sess)

	result := svc.Login(context.Background(), "alice", "secret")

	require.True(t, result.Success)
	assert.True(t, sess.loggedIn)
	assert.Equal(t, "tok-1", sess.token)
	assert.Equal(t, "alice", sess.user.Username)
	require.NotNil(t, result.User)
	assert.Equal(t, "alice", result.User.Username)
}

func TestAuthLogin_UnauthorizedMeansUnknownUser(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusNotFound} {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		sess := &recordingSession{}
		svc := NewAuthService(client, sess)

		result := svc.Login(context.Background(), "alice", "secret")

		assert.False(t, result.Success)
		assert.Equal(t, msgUserNotFound, result.Message)
		assert.False(t, sess.loggedIn)
	}
}

func TestAuthLogin_BadRequest(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	svc := NewAuthService(client, &recordingSession{})

	result := svc.Login(context.Background(), "alice", "")
	assert.Equal(t, msgInvalidData, result.Message)
}

func TestAuthLogin_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client := api.NewClient(server.URL, time.Second, staticToken(""), testLogger())
	server.Close()
	svc := NewAuthService(client, &recordingSession{})

	result := svc.Login(context.Background(), "alice", "secret")
	assert.False(t, result.Success)
	assert.Equal(t, msgNetwork, result.Message)
}

func TestAuthLogin_ServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	svc := NewAuthService(client, &recordingSession{})

	result := svc.Login(context.Background(), "alice", "secret")
	assert.Equal(t, msgLoginRetry, result.Message)
}

func TestAuthRegister_LogsInWhenCredentialsReturned(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": {"token": "tok-2", "user": {"id": 9, "username": "carol"}}}`))
	}))
	sess := &recordingSession{}
	svc := NewAuthService(client, sess)

	result := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "carol", Email: "carol@example.com", Password: "password1",
	})

	require.True(t, result.Success)
	assert.True(t, sess.loggedIn)
	assert.Equal(t, "tok-2", sess.token)
}

func TestAuthMe_UnauthorizedLogsOut(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	sess := &recordingSession{}
	svc := NewAuthService(client, sess)

	result := svc.Me(context.Background())

	assert.False(t, result.Success)
	assert.True(t, sess.loggedOut)
}

func TestAuthMe_ValidToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": {"id": 1, "username": "alice"}}`))
	}))
	sess := &recordingSession{}
	svc := NewAuthService(client, sess)

	result := svc.Me(context.Background())

	require.True(t, result.Success)
	require.NotNil(t, result.User)
	assert.Equal(t, "alice", result.User.Username)
	assert.False(t, sess.loggedOut)
}
