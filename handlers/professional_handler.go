package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/wanjiru84/pro_marketplace/database"
	"github.com/wanjiru84/pro_marketplace/models"
	"gorm.io/gorm"
)

type ProfessionalApplicationRequest struct {
	Headline string `json:"headline" validate:"required"`
	Bio      string `json:"bio" validate:"required"`
	Location string `json:"location" validate:"required"`
}

func ApplyToBeAProfessional(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req ProfessionalApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existingProfessional models.Professional
	err := database.DB.Where("user_id = ?", userID).First(&existingProfessional).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You already have a professional profile."})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	newProfile := models.Professional{
		UserID:   userID,
		Headline: &req.Headline,
		Bio:      &req.Bio,
		Location: req.Location,
	}

	if err := database.DB.Create(&newProfile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create profile"})
	}

	return c.Status(fiber.StatusCreated).JSON(newProfile)
}

// UpdateProfessionalProfileRequest is the allow-list of client-writable
// profile fields. Rating and the active/deleted flags are
// system-managed and deliberately absent.
type UpdateProfessionalProfileRequest struct {
	Headline    *string `json:"headline"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	IsAvailable *bool   `json:"is_available"`
}

func UpdateProfessionalProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	professional, err := professionalForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Professional profile not found"})
	}

	var req UpdateProfessionalProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Headline != nil {
		professional.Headline = req.Headline
	}
	if req.Bio != nil {
		professional.Bio = req.Bio
	}
	if req.Location != nil {
		professional.Location = *req.Location
	}
	if req.IsAvailable != nil {
		professional.IsAvailable = *req.IsAvailable
	}

	if err := database.DB.Save(professional).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(professional)
}

type CreateServiceRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3"`
}

func CreateService(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	professional, err := professionalForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Professional profile not found"})
	}

	newService := models.Service{
		ProfessionalID: professional.ID,
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		Currency:       req.Currency,
	}
	if err := database.DB.Create(&newService).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create service"})
	}

	return c.Status(fiber.StatusCreated).JSON(newService)
}

func GetMyServices(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	professional, err := professionalForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Professional profile not found"})
	}

	var servicesList []models.Service
	database.DB.Where("professional_id = ?", professional.ID).Find(&servicesList)

	return c.JSON(servicesList)
}
