package handlers

import (
	"errors"
	"fmt"
	"html"
	"log"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/repository"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/services"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/pkg/utils"
)

const verificationTokenTTL = 48 * time.Hour

type AuthHandler struct {
	db               *pgxpool.Pool
	userRepo         *repository.UserRepository
	profileRepo      *repository.ProfileRepository
	verificationRepo *repository.VerificationRepository
	emailService     services.EmailService
	jwtSecret        string
	publicBaseURL    string
}

func NewAuthHandler(
	db *pgxpool.Pool,
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	verificationRepo *repository.VerificationRepository,
	emailService services.EmailService,
	jwtSecret string,
	publicBaseURL string,
) *AuthHandler {
	return &AuthHandler{
		db:               db,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		verificationRepo: verificationRepo,
		emailService:     emailService,
		jwtSecret:        jwtSecret,
		publicBaseURL:    publicBaseURL,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates the user and their client profile in one transaction,
// then sends a verification link. No token is issued; the account stays
// unusable until the link is clicked.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}
	req.Email = strings.ToLower(parsedEmail.Address)
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Password must be at least 8 characters"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Full name is required"})
	}

	existing, err := h.userRepo.GetByEmail(c.Context(), req.Email)
	if err == nil && existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to check email"})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to hash password"})
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashed,
	}
	tx, err := h.db.Begin(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to start registration transaction"})
	}
	defer func() {
		_ = tx.Rollback(c.Context())
	}()

	txUserRepo := repository.NewUserRepository(tx)
	txProfileRepo := repository.NewProfileRepository(tx)
	txVerificationRepo := repository.NewVerificationRepository(tx)

	if err := txUserRepo.CreateUser(c.Context(), user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create user"})
	}

	if _, err := txProfileRepo.Create(c.Context(), repository.CreateProfileInput{
		UserID:   user.ID,
		FullName: req.FullName,
		Email:    user.Email,
		Role:     "client",
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create profile"})
	}

	token := uuid.NewString()
	if _, err := txVerificationRepo.Create(c.Context(), token, user.ID, time.Now().Add(verificationTokenTTL)); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create verification token"})
	}

	if err := tx.Commit(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to finalize registration"})
	}

	// The account exists either way; a failed delivery just means the user
	// asks for a resend.
	if err := h.emailService.Send(c.Context(), services.EmailMessage{
		To:      []string{user.Email},
		Subject: "Verify your Elite Fitness Coaching account",
		HTML:    verificationEmailHTML(req.FullName, h.verificationLink(token)),
	}); err != nil {
		log.Printf("register: verification email to %s failed: %v", user.Email, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created. Check your email for a verification link.",
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// VerifyEmail consumes a single-use token from the emailed link and renders
// a small confirmation page, since the click lands in a browser.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return c.Status(fiber.StatusBadRequest).
			Type("html").
			SendString(verificationPageHTML("Verification failed", "The verification link is missing its token."))
	}

	verification, err := h.verificationRepo.Consume(c.Context(), token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusBadRequest).
				Type("html").
				SendString(verificationPageHTML("Verification failed", "This link is invalid, expired, or already used."))
		}
		return c.Status(fiber.StatusInternalServerError).
			Type("html").
			SendString(verificationPageHTML("Verification failed", "Something went wrong. Please try again later."))
	}

	if err := h.userRepo.MarkEmailVerified(c.Context(), verification.UserID); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			Type("html").
			SendString(verificationPageHTML("Verification failed", "Something went wrong. Please try again later."))
	}

	return c.Type("html").
		SendString(verificationPageHTML("Email verified", "Your account is ready. You can close this tab and sign in."))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}
	req.Email = strings.ToLower(parsedEmail.Address)

	user, err := h.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"error": "Invalid email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to lookup user"})
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"error": "Invalid email or password"})
	}

	if !user.EmailVerified {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"error": "Email not verified. Check your inbox for the verification link."})
	}

	role := h.lookupRole(c, user.ID)

	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), role, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  role,
		},
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := h.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	// A missing or unreadable profile degrades to the client dashboard
	// instead of locking the user out.
	role := "client"
	var profile *models.Profile
	if p, err := h.profileRepo.GetByUserID(c.Context(), userID); err == nil {
		profile = p
		role = p.Role
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":             user.ID,
			"email":          user.Email,
			"email_verified": user.EmailVerified,
			"role":           role,
		},
		"profile": profile,
	})
}

// lookupRole resolves the dashboard role from the profile row, defaulting to
// the least-privileged role when the profile cannot be read.
func (h *AuthHandler) lookupRole(c *fiber.Ctx, userID int64) string {
	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return "client"
	}
	return profile.Role
}

func (h *AuthHandler) verificationLink(token string) string {
	return fmt.Sprintf("%s/api/auth/verify?token=%s", h.publicBaseURL, token)
}

func verificationEmailHTML(fullName, link string) string {
	return fmt.Sprintf(
		`<h2>Welcome, %s</h2><p>Confirm your email to activate your Elite Fitness Coaching account:</p><p><a href="%s">Verify my email</a></p><p style="color:#666">This link expires in 48 hours.</p>`,
		html.EscapeString(fullName),
		link,
	)
}

func verificationPageHTML(heading, body string) string {
	return fmt.Sprintf(
		`<!DOCTYPE html><html><head><title>%s</title></head><body style="font-family:sans-serif;max-width:32rem;margin:4rem auto"><h1>%s</h1><p>%s</p></body></html>`,
		html.EscapeString(heading),
		html.EscapeString(heading),
		html.EscapeString(body),
	)
}
