package web

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"polling_system/internal/db/models"
	mock_services "polling_system/internal/services/mocks"
	"polling_system/internal/sessions"
	mock_sessions "polling_system/internal/sessions/mocks"
	"polling_system/internal/storage"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const testCookieName = "polls_session"

var (
	testNow   = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	testUser  = &models.User{ID: 5, Username: "alice", Email: "alice@example.com"}
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
)

type testServer struct {
	router   http.Handler
	polls    *mock_services.MockPollService
	voting   *mock_services.MockVotingService
	users    *mock_services.MockUserService
	sessions *mock_sessions.MockStore
	fs       afero.Fs
}

func newTestServer(t *testing.T) *testServer {
	ctrl := gomock.NewController(t)

	ts := &testServer{
		polls:    mock_services.NewMockPollService(ctrl),
		voting:   mock_services.NewMockVotingService(ctrl),
		users:    mock_services.NewMockUserService(ctrl),
		sessions: mock_sessions.NewMockStore(ctrl),
		fs:       afero.NewMemMapFs(),
	}

	logger := zap.NewNop().Sugar()

	server, err := NewServer(Config{
		SiteName:       "Polls",
		CookieName:     testCookieName,
		SessionTTL:     time.Hour,
		MaxUploadBytes: 1 << 20,
		Location:       time.UTC,
	}, ts.polls, ts.voting, ts.users, ts.sessions, storage.NewStore(ts.fs, logger), logger)
	require.NoError(t, err)

	server.now = func() time.Time { return testNow }
	ts.router = server.Router()

	return ts
}

// login makes requests carrying the returned cookie resolve to user.
func (ts *testServer) login(user *models.User) *http.Cookie {
	ts.sessions.EXPECT().Lookup(gomock.Any(), "token").Return(user.ID, nil).AnyTimes()
	ts.users.EXPECT().Get(gomock.Any(), user.ID).Return(user, nil).AnyTimes()

	return &http.Cookie{Name: testCookieName, Value: "token"}
}

func (ts *testServer) do(request *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	ts.router.ServeHTTP(recorder, request)
	return recorder
}

func formRequest(target string, form url.Values) *http.Request {
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func multipartRequest(t *testing.T, target string, form url.Values, fileField string, content []byte) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for key, values := range form {
		for _, value := range values {
			require.NoError(t, writer.WriteField(key, value))
		}
	}

	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, "upload.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, target, &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request
}

func sessionCookie(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == testCookieName {
			return cookie
		}
	}
	return nil
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.do(httptest.NewRequest(http.MethodGet, "/healthcheck", nil), nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "I'm alive", recorder.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.do(httptest.NewRequest(http.MethodGet, "/no/such/page", nil), nil)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Not found")
}

func TestLoadUser_UnknownSession(t *testing.T) {
	ts := newTestServer(t)

	ts.sessions.EXPECT().Lookup(gomock.Any(), "stale").Return(int64(0), sessions.ErrNotFound)
	ts.polls.EXPECT().ListActive(gomock.Any(), testNow).Return(nil, nil)

	recorder := ts.do(httptest.NewRequest(http.MethodGet, "/", nil), &http.Cookie{Name: testCookieName, Value: "stale"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `href="/login"`)
}

func TestSafeRedirect(t *testing.T) {
	assert.Equal(t, "/create", safeRedirect("/create"))
	assert.Equal(t, "/", safeRedirect(""))
	assert.Equal(t, "/", safeRedirect("https://example.com"))
	assert.Equal(t, "/", safeRedirect("//example.com"))
	assert.Equal(t, "/", safeRedirect("/\\example.com"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Avatar is required", capitalize("avatar is required"))
	assert.Equal(t, "", capitalize(""))
}
