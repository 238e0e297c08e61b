package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Vextroyer/mange/internal/database"
	"github.com/Vextroyer/mange/internal/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled connection would get its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return New(db, zerolog.Nop())
}

func TestCreateCompany_Defaults(t *testing.T) {
	c := newTestClient(t)

	company := models.Company{Name: "blobcorp", Limit: 100}
	require.NoError(t, c.CreateCompany(&company))
	require.NotZero(t, company.ID)

	got, err := Find[models.Company](c, Filter{"name": "blobcorp"}).One()
	require.NoError(t, err)
	assert.EqualValues(t, 15, got.ExtraPercent)
	assert.EqualValues(t, 20, got.Extra)
}

func TestCreateCompany_DuplicateName(t *testing.T) {
	c := newTestClient(t)

	require.NoError(t, c.CreateCompany(&models.Company{Name: "blobcorp", Limit: 100}))
	err := c.CreateCompany(&models.Company{Name: "blobcorp", Limit: 200})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestCreateCompany_MissingName(t *testing.T) {
	c := newTestClient(t)

	err := c.CreateCompany(&models.Company{Limit: 100})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestQueryOne(t *testing.T) {
	c := newTestClient(t)

	require.NoError(t, c.CreateCompany(&models.Company{Name: "a", Type: "shop", Limit: 1}))
	require.NoError(t, c.CreateCompany(&models.Company{Name: "b", Type: "shop", Limit: 1}))

	_, err := Find[models.Company](c, Filter{"name": "nope"}).One()
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Find[models.Company](c, Filter{"type": "shop"}).One()
	assert.ErrorIs(t, err, ErrMultipleResults)

	got, err := Find[models.Company](c, Filter{"name": "a"}).One()
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
}

func TestQueryAll_Empty(t *testing.T) {
	c := newTestClient(t)

	got, err := Find[models.Company](c, Filter{"name": "nope"}).All()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdate(t *testing.T) {
	c := newTestClient(t)

	company := models.Company{Name: "blobcorp", Limit: 100}
	require.NoError(t, c.CreateCompany(&company))

	require.NoError(t, c.Update(&company, map[string]any{"reading": int64(50)}))

	got, err := Find[models.Company](c, Filter{"id": company.ID}).One()
	require.NoError(t, err)
	assert.EqualValues(t, 50, got.Reading)
}

func TestGetOrCreate(t *testing.T) {
	c := newTestClient(t)

	first, err := GetOrCreate[models.Group](c, Filter{"name": "Admin"})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := GetOrCreate[models.Group](c, Filter{"name": "Admin"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	groups, err := Find[models.Group](c, Filter{"name": "Admin"}).All()
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestCreateUser_IssuesOneToken(t *testing.T) {
	c := newTestClient(t)

	user, err := c.CreateUser("blob", "doko", nil)
	require.NoError(t, err)
	require.NotNil(t, user.Token)
	assert.NotEmpty(t, user.Token.Value)
	// The stored password is a hash, never the plaintext.
	assert.NotEqual(t, "doko", user.PasswordHash)

	tokens, err := Find[models.Token](c, Filter{"user_id": user.ID}).All()
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t)

	user, err := c.CreateUser("blob", "doko", nil)
	require.NoError(t, err)

	token, err := c.Login("blob", "doko")
	require.NoError(t, err)
	assert.Equal(t, user.Token.Value, token)

	_, err = c.Login("blob", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, err = c.Login("nobody", "doko")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestUserFromToken(t *testing.T) {
	c := newTestClient(t)

	group := models.Group{Name: "Admin"}
	require.NoError(t, c.CreateGroup(&group))
	user, err := c.CreateUser("blob", "doko", &group.ID)
	require.NoError(t, err)

	got, err := c.UserFromToken(user.Token.Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	require.NotNil(t, got.Group)
	assert.Equal(t, "Admin", got.Group.Name)

	_, err = c.UserFromToken("bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdatePassword(t *testing.T) {
	c := newTestClient(t)

	user, err := c.CreateUser("blob", "doko", nil)
	require.NoError(t, err)

	require.NoError(t, c.UpdatePassword(user, "fresh"))

	_, err = c.Login("blob", "doko")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	token, err := c.Login("blob", "fresh")
	require.NoError(t, err)
	assert.Equal(t, user.Token.Value, token)
}
