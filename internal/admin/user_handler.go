package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Vextroyer/mange/internal/httputil"
	"github.com/Vextroyer/mange/internal/models"
	"github.com/Vextroyer/mange/internal/repository"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	GroupID  *uint  `json:"group_id"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	GroupID  *uint   `json:"group_id"`
}

type UserResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	GroupID *uint  `json:"group_id"`
}

func userResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, GroupID: u.GroupID}
}

// CreateUserHandler creates a user and its session token. The token value is
// returned once, here; afterwards it can only be obtained through login.
func CreateUserHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.GroupID != nil {
			if _, err := repository.Find[models.Group](repo, repository.Filter{"id": *body.GroupID}).One(); err != nil {
				return err
			}
		}

		user, err := repo.CreateUser(body.Name, body.Password, body.GroupID)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"group_id": user.GroupID,
			"token":    user.Token.Value, // issued once, at creation
		})
	}
}

func ListUsersHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := repository.Find[models.User](repo, nil).Order("id").All()
		if err != nil {
			return err
		}
		res := make([]UserResponse, 0, len(users))
		for i := range users {
			res = append(res, userResponse(&users[i]))
		}
		return c.JSON(res)
	}
}

func GetUserHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		user, err := repository.Find[models.User](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		return c.JSON(userResponse(user))
	}
}

func UpdateUserHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		user, err := repository.Find[models.User](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		fields := map[string]any{}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "user name must not be empty")
			}
			fields["name"] = name
		}
		if body.GroupID != nil {
			if _, err := repository.Find[models.Group](repo, repository.Filter{"id": *body.GroupID}).One(); err != nil {
				return err
			}
			fields["group_id"] = *body.GroupID
		}
		if err := repo.Update(user, fields); err != nil {
			return err
		}
		if body.Password != nil {
			if err := repo.UpdatePassword(user, *body.Password); err != nil {
				return err
			}
		}

		user, err = repository.Find[models.User](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		return c.JSON(userResponse(user))
	}
}

func DeleteUserHandler(repo *repository.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c)
		if err != nil {
			return err
		}
		user, err := repository.Find[models.User](repo, repository.Filter{"id": id}).One()
		if err != nil {
			return err
		}
		// Remove the session token together with the user.
		if token, err := repository.Find[models.Token](repo, repository.Filter{"user_id": id}).One(); err == nil {
			if err := repo.Delete(token); err != nil {
				return err
			}
		}
		if err := repo.Delete(user); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
