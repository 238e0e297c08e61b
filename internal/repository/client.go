package repository

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Vextroyer/mange/internal/models"
)

// Client mediates every read and write against the store. It is an explicit
// handle: construct one at startup and pass it to whatever needs it.
//
// Commit policy: every Create* call commits on its own. The one operation
// that needs two writes to land together (bill liquidation) goes through
// Transaction.
type Client struct {
	db  *gorm.DB
	log zerolog.Logger
}

func New(db *gorm.DB, log zerolog.Logger) *Client {
	return &Client{db: db, log: log}
}

// Transaction runs fn against a derived Client whose writes commit or roll
// back as one unit.
func (c *Client) Transaction(fn func(tx *Client) error) error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Client{db: tx, log: c.log})
	})
}

func (c *Client) create(entity string, record any) error {
	c.log.Debug().Str("entity", entity).Msg("create")
	return translate(c.db.Create(record).Error)
}

func (c *Client) CreateCompany(company *models.Company) error {
	if company.Name == "" {
		return fmt.Errorf("%w: company name is required", ErrValidation)
	}
	return c.create("company", company)
}

// CreateBill persists a liquidation record. Bills are append-only; there is
// deliberately no update or delete counterpart.
func (c *Client) CreateBill(bill *models.Bill) error {
	if bill.CompanyID == 0 {
		return fmt.Errorf("%w: bill requires a company", ErrValidation)
	}
	return c.create("bill", bill)
}

func (c *Client) CreateArea(area *models.Area) error {
	if area.Name == "" {
		return fmt.Errorf("%w: area name is required", ErrValidation)
	}
	if area.CompanyID == 0 {
		return fmt.Errorf("%w: area requires a company", ErrValidation)
	}
	return c.create("area", area)
}

func (c *Client) CreateEquipment(eq *models.Equipment) error {
	if eq.Model == "" {
		return fmt.Errorf("%w: equipment model is required", ErrValidation)
	}
	return c.create("equipment", eq)
}

func (c *Client) CreateGroup(group *models.Group) error {
	if group.Name == "" {
		return fmt.Errorf("%w: group name is required", ErrValidation)
	}
	return c.create("group", group)
}

// CreateUser hashes the password and creates the user together with its
// session token. The token is issued here and only here.
func (c *Client) CreateUser(name, password string, groupID *uint) (*models.User, error) {
	if name == "" || password == "" {
		return nil, fmt.Errorf("%w: user name and password are required", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		PasswordHash: string(hash),
		GroupID:      groupID,
	}
	err = c.Transaction(func(tx *Client) error {
		if err := tx.create("user", user); err != nil {
			return err
		}
		token := &models.Token{Value: uuid.NewString(), UserID: user.ID}
		if err := tx.create("token", token); err != nil {
			return err
		}
		user.Token = token
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update mutates the named fields on an already-fetched record. Last writer
// wins; there is no optimistic concurrency control.
func (c *Client) Update(record any, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	c.log.Debug().Int("fields", len(fields)).Msg("update")
	return translate(c.db.Model(record).Updates(fields).Error)
}

// UpdatePassword rehashes and stores a new password for the user.
func (c *Client) UpdatePassword(user *models.User, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return c.Update(user, map[string]any{"password_hash": string(hash)})
}

func (c *Client) Delete(record any) error {
	return translate(c.db.Delete(record).Error)
}

// GetOrCreate returns the first row matching the filter, creating one from
// the filter values when nothing matches.
func GetOrCreate[T any](c *Client, filter Filter) (*T, error) {
	var obj T
	if err := c.db.Where(map[string]any(filter)).FirstOrCreate(&obj).Error; err != nil {
		return nil, translate(err)
	}
	return &obj, nil
}

// Login verifies name and password and returns the user's token value. The
// error is identical for an unknown user and a wrong password.
func (c *Client) Login(name, password string) (string, error) {
	var user models.User
	err := c.db.Preload("Token").Where("name = ?", name).First(&user).Error
	if err != nil {
		if translate(err) == ErrNotFound {
			return "", ErrAuthenticationFailed
		}
		return "", translate(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrAuthenticationFailed
	}
	if user.Token == nil {
		return "", fmt.Errorf("%w: no token issued for user", ErrAuthenticationFailed)
	}
	c.log.Info().Str("user", name).Msg("login")
	return user.Token.Value, nil
}

// UserFromToken resolves a token value back to its user, group preloaded.
func (c *Client) UserFromToken(value string) (*models.User, error) {
	var token models.Token
	err := c.db.Preload("User.Group").Where("value = ?", value).First(&token).Error
	if err != nil {
		if translate(err) == ErrNotFound {
			return nil, ErrInvalidToken
		}
		return nil, translate(err)
	}
	if token.User == nil {
		return nil, ErrInvalidToken
	}
	return token.User, nil
}
