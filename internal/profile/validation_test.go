package profile

import (
	"errors"
	"strings"
	"testing"

	"ecarry-photography/internal/api"

	"github.com/stretchr/testify/require"
)

func TestValidateNameLength(t *testing.T) {
	for n := 0; n <= 40; n++ {
		name := strings.Repeat("a", n)
		v, err := Validate(Values{Name: name})
		if n >= NameMinLength && n <= NameMaxLength {
			require.NoError(t, err, "length %d", n)
			require.Equal(t, name, v.Name)
			continue
		}
		var violations Violations
		require.True(t, errors.As(err, &violations), "length %d", n)
		require.Len(t, violations, 1)
		require.Equal(t, "name", violations[0].Field)
		if n < NameMinLength {
			require.Equal(t, "Username must be at least 2 characters.", violations[0].Message)
		} else {
			require.Equal(t, "Username must not be longer than 30 characters.", violations[0].Message)
		}
	}
}

func TestValidateScenarios(t *testing.T) {
	_, err := Validate(Values{Name: "ab"})
	require.NoError(t, err)

	_, err = Validate(Values{Name: "a"})
	require.ErrorContains(t, err, "at least 2 characters")

	_, err = Validate(Values{Name: strings.Repeat("x", 31)})
	require.ErrorContains(t, err, "not longer than 30 characters")

	v, err := Validate(Values{Name: "ECarry", ImageURL: ""})
	require.NoError(t, err)
	require.Empty(t, v.ImageURL)

	// 以字元數計算，不是位元組
	_, err = Validate(Values{Name: "攝影"})
	require.NoError(t, err)
}

func TestViolations(t *testing.T) {
	v := Violations{{Field: "name", Message: "m1"}, {Field: "imageUrl", Message: "m2"}}
	require.Equal(t, "name: m1; imageUrl: m2", v.Error())
	require.Equal(t, "m2", v.For("imageUrl"))
	require.Empty(t, v.For("email"))

	_, ok := ViolationsFrom(errors.New("other"))
	require.False(t, ok)
	got, ok := ViolationsFrom(v)
	require.True(t, ok)
	require.Equal(t, v, got)
}

func TestEchoValidator(t *testing.T) {
	cv := NewEchoValidator()
	name := "ok"
	require.NoError(t, cv.Validate(&api.UpdateProfileRequest{Name: &name}))

	err := cv.Validate(&api.UpdateProfileRequest{})
	var violations Violations
	require.True(t, errors.As(err, &violations))
	require.Equal(t, "Username is required.", violations.For("name"))

	short := "a"
	err = cv.Validate(&api.UpdateProfileRequest{Name: &short})
	require.True(t, errors.As(err, &violations))
	require.Equal(t, "Username must be at least 2 characters.", violations.For("name"))

	type other struct {
		Email string `json:"email" validate:"email"`
	}
	err = cv.Validate(&other{Email: "bad"})
	require.True(t, errors.As(err, &violations))
	require.Equal(t, "email is invalid.", violations.For("email"))
}
