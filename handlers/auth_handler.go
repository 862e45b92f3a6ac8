package handlers

import (
	"strings"

	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/fenilmodi00/ipo-tracker/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const sessionUserKey = "user_id"

type AuthHandler struct {
	Users    *services.UserService
	Sessions *session.Store
}

func NewAuthHandler(users *services.UserService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions}
}

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var creds credentials
	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Username and password are required",
		})
	}

	existing, err := h.Users.GetUserByUsername(c.Context(), creds.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Username already exists",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{Username: creds.Username, Password: string(hash)}
	if err := h.Users.CreateUser(c.Context(), user); err != nil {
		return err
	}

	// Registration logs the new user in.
	if err := h.logIn(c, user.ID); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var creds credentials
	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	user, err := h.Users.GetUserByUsername(c.Context(), strings.TrimSpace(creds.Username))
	if err != nil {
		return err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid username or password",
		})
	}

	if err := h.logIn(c, user.ID); err != nil {
		return err
	}

	logrus.WithField("username", user.Username).Info("User logged in")

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			return err
		}
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	userID, ok := h.sessionUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Authentication required",
		})
	}

	user, err := h.Users.GetUser(c.Context(), userID)
	if err != nil {
		return err
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Authentication required",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// RequireAuth rejects requests without an authenticated session before any
// body parsing or persistence work happens.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	if _, ok := h.sessionUserID(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Authentication required",
		})
	}
	return c.Next()
}

func (h *AuthHandler) logIn(c *fiber.Ctx, userID uint) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionUserKey, userID)
	return sess.Save()
}

func (h *AuthHandler) sessionUserID(c *fiber.Ctx) (uint, bool) {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Get(sessionUserKey).(uint)
	return id, ok
}
