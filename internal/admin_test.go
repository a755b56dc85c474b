package internal

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roulette-lab/auth"
	"roulette-lab/mocks"
	"roulette-lab/repositories"
	"roulette-lab/runtime"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type adminFixture struct {
	handler       http.Handler
	directory     *runtime.Directory
	repository    *mocks.MockIOutcomeRepository
	authenticator *auth.Authenticator
}

func newAdminFixture(t *testing.T) adminFixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)

	directory := runtime.NewDirectory(log, runtime.Settings{})
	repository := mocks.NewMockIOutcomeRepository(ctrl)
	authenticator := auth.NewAuthenticator([]byte("test-signing-key"), time.Hour)

	hash, err := auth.HashSecret("letmein")
	require.NoError(t, err)

	server := NewAdminServer(log, directory, repository, authenticator, hash)
	return adminFixture{
		handler:       server.Handler(),
		directory:     directory,
		repository:    repository,
		authenticator: authenticator,
	}
}

func (f adminFixture) token(t *testing.T) string {
	t.Helper()
	token, err := f.authenticator.GenerateToken("admin")
	require.NoError(t, err)
	return token
}

func TestAdmin_AuthExchangesSecretForToken(t *testing.T) {
	req := require.New(t)
	fixture := newAdminFixture(t)

	body, _ := json.Marshal(map[string]string{"secret": "letmein"})
	r := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader(body))
	w := httptest.NewRecorder()
	fixture.handler.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)
	var reply map[string]string
	req.NoError(json.Unmarshal(w.Body.Bytes(), &reply))
	req.NotEmpty(reply["token"])

	_, err := fixture.authenticator.ValidateToken(reply["token"])
	req.NoError(err)
}

func TestAdmin_AuthRejectsWrongSecret(t *testing.T) {
	req := require.New(t)
	fixture := newAdminFixture(t)

	body, _ := json.Marshal(map[string]string{"secret": "guess"})
	r := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader(body))
	w := httptest.NewRecorder()
	fixture.handler.ServeHTTP(w, r)

	req.Equal(http.StatusUnauthorized, w.Code)
}

func TestAdmin_InspectRequiresToken(t *testing.T) {
	req := require.New(t)
	fixture := newAdminFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/inspect?session=s1", nil)
	w := httptest.NewRecorder()
	fixture.handler.ServeHTTP(w, r)
	req.Equal(http.StatusUnauthorized, w.Code)

	r = httptest.NewRequest(http.MethodGet, "/inspect?session=s1", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	fixture.handler.ServeHTTP(w, r)
	req.Equal(http.StatusUnauthorized, w.Code)
}

func TestAdmin_InspectReturnsLookaheadQueue(t *testing.T) {
	req := require.New(t)
	fixture := newAdminFixture(t)
	fixture.directory.JoinSolo("session-1")

	r := httptest.NewRequest(http.MethodGet, "/inspect?session=session-1", nil)
	r.Header.Set("Authorization", "Bearer "+fixture.token(t))
	w := httptest.NewRecorder()
	fixture.handler.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)
	var reply struct {
		Session  string `json:"session"`
		Upcoming []struct {
			Value int    `json:"value"`
			Color string `json:"color"`
		} `json:"upcoming"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &reply))
	req.Equal("session-1", reply.Session)
	req.Len(reply.Upcoming, 10)
}

func TestAdmin_InspectUnknownSession(t *testing.T) {
	req := require.New(t)
	fixture := newAdminFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/inspect?session=ghost", nil)
	r.Header.Set("Authorization", "Bearer "+fixture.token(t))
	w := httptest.NewRecorder()
	fixture.handler.ServeHTTP(w, r)

	req.Equal(http.StatusNotFound, w.Code)
}

func TestAdmin_HistoryDelegatesToRepository(t *testing.T) {
	req := require.New(t)
	fixture := newAdminFixture(t)

	fixture.repository.EXPECT().History("session-1").Return([]repositories.SpinRecord{
		{SessionID: "session-1", Value: 7, Color: "red"},
	}, nil)

	r := httptest.NewRequest(http.MethodGet, "/history?session=session-1", nil)
	r.Header.Set("Authorization", "Bearer "+fixture.token(t))
	w := httptest.NewRecorder()
	fixture.handler.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Body.String(), `"value":7`)
}

func TestAdmin_TablesListsLiveTables(t *testing.T) {
	req := require.New(t)
	fixture := newAdminFixture(t)

	_, _, err := fixture.directory.JoinTable("conn-1", "Alice")
	req.NoError(err)

	r := httptest.NewRequest(http.MethodGet, "/tables", nil)
	r.Header.Set("Authorization", "Bearer "+fixture.token(t))
	w := httptest.NewRecorder()
	fixture.handler.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Body.String(), "table-1")
	req.Contains(w.Body.String(), "Alice")
}
