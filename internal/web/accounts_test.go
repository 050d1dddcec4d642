package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"polling_system/internal/db/models"
	"polling_system/internal/services"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func registrationValues() url.Values {
	return url.Values{
		"username":  {"bob"},
		"email":     {"bob@example.com"},
		"password1": {"correct horse"},
		"password2": {"correct horse"},
	}
}

func TestRegister_Success(t *testing.T) {
	ts := newTestServer(t)

	var avatar string
	ts.users.EXPECT().Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request services.RegisterRequest) (*models.User, error) {
			assert.Equal(t, "bob", request.Username)
			assert.Equal(t, "bob@example.com", request.Email)
			assert.Equal(t, "correct horse", request.Password1)
			assert.Equal(t, "correct horse", request.Password2)
			avatar = request.Avatar
			return &models.User{ID: 7, Username: "bob"}, nil
		})
	ts.sessions.EXPECT().Create(gomock.Any(), int64(7)).Return("new-token", nil)

	recorder := ts.do(multipartRequest(t, "/register", registrationValues(), "avatar", pngHeader), nil)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))

	cookie := sessionCookie(recorder)
	require.NotNil(t, cookie)
	assert.Equal(t, "new-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)

	require.True(t, strings.HasPrefix(avatar, "avatars/"))
	exists, err := afero.Exists(ts.fs, "/"+avatar)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegister_ValidationErrorRemovesAvatar(t *testing.T) {
	ts := newTestServer(t)

	var avatar string
	ts.users.EXPECT().Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request services.RegisterRequest) (*models.User, error) {
			avatar = request.Avatar
			return nil, services.ErrPasswordMismatch
		})

	recorder := ts.do(multipartRequest(t, "/register", registrationValues(), "avatar", pngHeader), nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "password fields didn")
	assert.Contains(t, body, `value="bob@example.com"`)
	assert.Nil(t, sessionCookie(recorder))

	require.NotEmpty(t, avatar)
	exists, err := afero.Exists(ts.fs, "/"+avatar)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegister_MissingAvatar(t *testing.T) {
	ts := newTestServer(t)

	ts.users.EXPECT().Register(gomock.Any(), services.RegisterRequest{
		Username:  "bob",
		Email:     "bob@example.com",
		Password1: "correct horse",
		Password2: "correct horse",
	}).Return(nil, services.ErrAvatarRequired)

	recorder := ts.do(multipartRequest(t, "/register", registrationValues(), "", nil), nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Avatar is required")
}

func TestLoginForm_KeepsNext(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.do(httptest.NewRequest(http.MethodGet, "/login?next=%2F3", nil), nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `name="next" value="/3"`)
}

func TestLogin_Success(t *testing.T) {
	ts := newTestServer(t)

	ts.users.EXPECT().Authenticate(gomock.Any(), "alice", "secret123").Return(testUser, nil)
	ts.sessions.EXPECT().Create(gomock.Any(), testUser.ID).Return("new-token", nil)

	recorder := ts.do(formRequest("/login", url.Values{
		"username": {"alice"},
		"password": {"secret123"},
		"next":     {"/create"},
	}), nil)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/create", recorder.Header().Get("Location"))

	cookie := sessionCookie(recorder)
	require.NotNil(t, cookie)
	assert.Equal(t, "new-token", cookie.Value)
}

func TestLogin_IgnoresExternalNext(t *testing.T) {
	ts := newTestServer(t)

	ts.users.EXPECT().Authenticate(gomock.Any(), "alice", "secret123").Return(testUser, nil)
	ts.sessions.EXPECT().Create(gomock.Any(), testUser.ID).Return("new-token", nil)

	recorder := ts.do(formRequest("/login", url.Values{
		"username": {"alice"},
		"password": {"secret123"},
		"next":     {"https://evil.example.com/"},
	}), nil)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := newTestServer(t)

	ts.users.EXPECT().Authenticate(gomock.Any(), "alice", "wrong").Return(nil, services.ErrInvalidCredentials)

	recorder := ts.do(formRequest("/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	}), nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "Please enter a correct username and password.")
	assert.Contains(t, body, `value="alice"`)
	assert.Nil(t, sessionCookie(recorder))
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(testUser)

	ts.sessions.EXPECT().Destroy(gomock.Any(), "token").Return(nil)

	recorder := ts.do(httptest.NewRequest(http.MethodPost, "/logout", nil), cookie)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))

	expired := sessionCookie(recorder)
	require.NotNil(t, expired)
	assert.Empty(t, expired.Value)
	assert.Less(t, expired.MaxAge, 0)
}

func TestProfileForm(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(testUser)

	ts.users.EXPECT().GetProfile(gomock.Any(), testUser).
		Return(&models.Profile{UserID: testUser.ID, Avatar: "avatars/alice.png"}, nil)

	recorder := ts.do(httptest.NewRequest(http.MethodGet, "/profile", nil), cookie)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `src="/media/avatars/alice.png"`)
	assert.Contains(t, body, `value="alice@example.com"`)
}

func TestProfileForm_Anonymous(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.do(httptest.NewRequest(http.MethodGet, "/profile", nil), nil)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/login?next=%2Fprofile", recorder.Header().Get("Location"))
}

func TestUpdateProfile_Success(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(testUser)

	ts.users.EXPECT().UpdateProfile(gomock.Any(), testUser, services.UpdateProfileRequest{
		Username: "alice2",
		Email:    "alice2@example.com",
	}).Return(&models.User{ID: testUser.ID, Username: "alice2"}, nil)

	recorder := ts.do(formRequest("/profile", url.Values{
		"username": {"alice2"},
		"email":    {"alice2@example.com"},
	}), cookie)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/profile", recorder.Header().Get("Location"))
}

func TestUpdateProfile_ValidationError(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(testUser)

	ts.users.EXPECT().UpdateProfile(gomock.Any(), testUser, gomock.Any()).Return(nil, services.ErrEmailInvalid)
	ts.users.EXPECT().GetProfile(gomock.Any(), testUser).Return(nil, services.ErrNotFound)

	recorder := ts.do(formRequest("/profile", url.Values{
		"username": {"alice"},
		"email":    {"not-an-email"},
	}), cookie)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "Enter a valid email address")
	assert.Contains(t, body, `value="not-an-email"`)
	assert.NotContains(t, body, "<img")
}

func TestDeleteProfileConfirm(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(testUser)

	recorder := ts.do(httptest.NewRequest(http.MethodGet, "/profile/delete", nil), cookie)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Yes, delete")
}

func TestDeleteProfile(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(testUser)

	gomock.InOrder(
		ts.users.EXPECT().Delete(gomock.Any(), testUser).Return(nil),
		ts.sessions.EXPECT().Destroy(gomock.Any(), "token").Return(nil),
	)

	recorder := ts.do(httptest.NewRequest(http.MethodPost, "/profile/delete", nil), cookie)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))

	expired := sessionCookie(recorder)
	require.NotNil(t, expired)
	assert.Empty(t, expired.Value)
}

func TestMedia_ServesUploads(t *testing.T) {
	ts := newTestServer(t)

	require.NoError(t, afero.WriteFile(ts.fs, "/avatars/alice.png", pngHeader, 0o644))

	recorder := ts.do(httptest.NewRequest(http.MethodGet, "/media/avatars/alice.png", nil), nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, pngHeader, recorder.Body.Bytes())
}
