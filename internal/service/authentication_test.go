package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	getProfileByUserID = defaultGetProfileByUserID
	createProfile = defaultCreateProfile
	updateProfile = defaultUpdateProfile
}

var (
	defaultGetProfileByUserID = getProfileByUserID
	defaultCreateProfile      = createProfile
	defaultUpdateProfile      = updateProfile
)

func TestIssueAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)

	_, err := IssueAccessToken("", CustomClaims{}, time.Minute)
	require.Error(t, err)

	_, err = IssueAccessToken("s", CustomClaims{}, time.Minute)
	require.ErrorContains(t, err, "subject")

	fixed := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	tok, err := IssueAccessToken("s", CustomClaims{
		Name:             "ECarry",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user_1"},
	}, time.Hour)
	require.NoError(t, err)

	claims := &CustomClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("s"), nil }, jwt.WithTimeFunc(func() time.Time { return fixed }))
	require.NoError(t, err)
	require.Equal(t, "user_1", claims.UserID())
	require.Equal(t, "ECarry", claims.Name)
	require.Equal(t, fixed.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestVerifyAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)

	_, err := VerifyAccessToken("", "abc")
	require.Error(t, err)

	_, err = VerifyAccessToken("s", "invalid")
	require.Error(t, err)

	tokNone, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "x"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = VerifyAccessToken("s", tokNone)
	require.Error(t, err)

	other, _ := IssueAccessToken("other", CustomClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}, time.Minute)
	_, err = VerifyAccessToken("s", other)
	require.Error(t, err)

	expired, _ := IssueAccessToken("s", CustomClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}, -time.Minute)
	_, err = VerifyAccessToken("s", expired)
	require.Error(t, err)

	noSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"name": "x"}).SignedString([]byte("s"))
	_, err = VerifyAccessToken("s", noSub)
	require.ErrorContains(t, err, "subject")

	parseWithClaims = func(s string, c jwt.Claims, k jwt.Keyfunc, opts ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Claims: jwt.MapClaims{}, Valid: false}, nil
	}
	_, err = VerifyAccessToken("s", "whatever")
	require.ErrorContains(t, err, "invalid token")

	parseWithClaims = jwt.ParseWithClaims
	tok, _ := IssueAccessToken("s", CustomClaims{Email: "a@b.c", RegisteredClaims: jwt.RegisteredClaims{Subject: "user_3"}}, time.Minute)
	claims, err := VerifyAccessToken("s", tok)
	require.NoError(t, err)
	require.Equal(t, "user_3", claims.UserID())
	require.Equal(t, "a@b.c", claims.Email)
}
