package auth

import (
	"testing"

	"github.com/shamiri-institute/supervisor-core/internal/models"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/jwt"
	"github.com/shamiri-institute/supervisor-core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func seedSupervisor(t *testing.T, db *gorm.DB, email, password string) *models.SupervisorModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	sup := models.SupervisorModel{
		Name:     "Achieng Odhiambo",
		Email:    email,
		Password: string(hash),
	}
	require.NoError(t, db.Create(&sup).Error)
	return &sup
}

func TestLoginSuccess(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)
	sup := seedSupervisor(t, db, "achieng@example.org", "correct horse battery")

	token, got, err := svc.Login("achieng@example.org", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, sup.ID, got.ID)
	require.NotNil(t, got.LastLoginTime)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, sup.ID, claims.SupervisorID)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)
	seedSupervisor(t, db, "achieng@example.org", "correct horse battery")

	_, _, err := svc.Login("achieng@example.org", "wrong")
	assert.ErrorIs(t, err, errInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)

	_, _, err := svc.Login("nobody@example.org", "whatever")
	assert.ErrorIs(t, err, errInvalidCredentials)
}
