package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_UnmarshalJSON_IDVariants(t *testing.T) {
	var a User
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"665f","username":"neo","email":"neo@zion.io","followers":3}`), &a))
	assert.Equal(t, "665f", a.ID)
	assert.Equal(t, "neo", a.Username)
	assert.Equal(t, "neo@zion.io", a.Email)

	var b User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"42","_id":"ignored","name":"Trinity"}`), &b))
	assert.Equal(t, "42", b.ID)
	assert.Equal(t, "Trinity", b.Name)

	var c User
	require.Error(t, json.Unmarshal([]byte(`[1,2]`), &c))
}

func TestUser_DisplayName(t *testing.T) {
	var nilUser *User
	assert.Equal(t, "", nilUser.DisplayName())
	assert.Equal(t, "Ann", (&User{Name: "Ann", Username: "ann1"}).DisplayName())
	assert.Equal(t, "ann1", (&User{Username: "ann1", Email: "a@x"}).DisplayName())
	assert.Equal(t, "a@x", (&User{Email: "a@x"}).DisplayName())
}

func TestLoginResponse_MissingToken(t *testing.T) {
	var r LoginResponse
	require.NoError(t, json.Unmarshal([]byte(`{"user":{"_id":"1"}}`), &r))
	assert.Empty(t, r.Token)
	require.NotNil(t, r.User)
	assert.Equal(t, "1", r.User.ID)
}

func TestDraft_Defaults(t *testing.T) {
	d := NewDraft()
	assert.True(t, d.Published)
	assert.False(t, d.HasText())
}

func TestDraft_HasText(t *testing.T) {
	assert.True(t, Draft{Title: "t"}.HasText())
	assert.True(t, Draft{Summary: "s"}.HasText())
	assert.True(t, Draft{Content: "<p>c</p>"}.HasText())
	assert.False(t, Draft{Tags: "go, web", Published: true}.HasText())
}

func TestDraft_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(Draft{Title: "T", Content: "C", Summary: "S", Tags: "a,b", Published: false})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"T","content":"C","summary":"S","tags":"a,b","published":false}`, string(b))
}

func TestListOptions_Normalized(t *testing.T) {
	assert.Equal(t, ListOptions{Page: 1, Limit: 10}, ListOptions{}.Normalized())
	assert.Equal(t, ListOptions{Page: 2, Limit: 5, Search: "foo"}, ListOptions{Page: 2, Limit: 5, Search: "foo"}.Normalized())
	assert.Equal(t, ListOptions{Page: 1, Limit: 10}, ListOptions{Page: -3, Limit: -1}.Normalized())
}

func TestSession_LoggedIn(t *testing.T) {
	assert.False(t, Session{}.LoggedIn())
	assert.True(t, Session{Token: "t"}.LoggedIn())
}
