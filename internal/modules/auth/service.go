package auth

import (
	"errors"
	"time"

	"github.com/shamiri-institute/supervisor-core/internal/models"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 7 * 24 * time.Hour

var errInvalidCredentials = errors.New("invalid email or password")

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Login verifies the supervisor's credentials and issues a JWT.
func (s *Service) Login(email, password string) (string, *models.SupervisorModel, error) {
	var supervisor models.SupervisorModel
	if err := s.db.First(&supervisor, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(supervisor.Password), []byte(password)); err != nil {
		return "", nil, errInvalidCredentials
	}

	token, err := jwt.Sign(supervisor.ID, tokenTTL)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	s.db.Model(&supervisor).Update("last_login_time", now)
	supervisor.LastLoginTime = &now

	return token, &supervisor, nil
}

// GetSupervisor loads a supervisor by ID.
func (s *Service) GetSupervisor(id string) (*models.SupervisorModel, error) {
	var supervisor models.SupervisorModel
	if err := s.db.First(&supervisor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supervisor, nil
}
