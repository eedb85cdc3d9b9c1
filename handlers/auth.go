package handlers

import (
	"database/sql"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"grammar_master_backend/mailer"
	"grammar_master_backend/middleware"
	"grammar_master_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// otpTTL is the lifetime of one-time codes sent by email.
const otpTTL = 10 * time.Minute

type AuthHandler struct {
	db        *sql.DB
	mailer    mailer.Mailer
	jwtSecret []byte
}

func NewAuthHandler(db *sql.DB, mail mailer.Mailer, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{db: db, mailer: mail, jwtSecret: jwtSecret}
}

// Register creates an unverified account holding a pending OTP and
// emails the code. The users row is the single authoritative location
// for verification state.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var existingUsername, existingEmail string
	err := h.db.QueryRow(
		"SELECT username, email FROM users WHERE username = $1 OR email = $2",
		req.Username, req.Email,
	).Scan(&existingUsername, &existingEmail)
	if err == nil {
		if existingUsername == req.Username {
			c.JSON(http.StatusConflict, gin.H{"message": "Username already exists"})
		} else {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already exists"})
		}
		return
	} else if err != sql.ErrNoRows {
		log.Printf("Error checking existing user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
		return
	}

	hashedPassword, err := middleware.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
		return
	}

	otp := generateOTP()
	expiresAt := time.Now().Add(otpTTL)

	_, err = h.db.Exec(
		"INSERT INTO users (full_name, email, username, password_hash, is_verified, otp_code, otp_expires_at) VALUES ($1, $2, $3, $4, FALSE, $5, $6)",
		req.FullName, req.Email, req.Username, hashedPassword, otp, expiresAt,
	)
	if err != nil {
		// unique constraint race between the existence check and insert
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"message": "Username or email already exists"})
			return
		}
		log.Printf("Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
		return
	}

	h.mailer.SendVerificationCode(req.Email, req.FullName, otp)

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to your email. Please verify to complete registration."})
}

// VerifyOTP moves an account from Pending to Verified.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var userID int
	var otpCode sql.NullString
	var otpExpiresAt sql.NullTime
	err := h.db.QueryRow(
		"SELECT id, otp_code, otp_expires_at FROM users WHERE email = $1 AND is_verified = FALSE",
		req.Email,
	).Scan(&userID, &otpCode, &otpExpiresAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired OTP"})
		return
	} else if err != nil {
		log.Printf("Error fetching pending user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during verification"})
		return
	}

	if !otpCode.Valid || otpCode.String != req.OTP || !otpExpiresAt.Valid || !otpExpiresAt.Time.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired OTP"})
		return
	}

	_, err = h.db.Exec(
		"UPDATE users SET is_verified = TRUE, otp_code = NULL, otp_expires_at = NULL WHERE id = $1",
		userID,
	)
	if err != nil {
		log.Printf("Error verifying user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during verification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified and registration complete!"})
}

// ResendOTP issues a fresh code for an unverified account.
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req models.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var userID int
	var fullName string
	var isVerified bool
	err := h.db.QueryRow(
		"SELECT id, full_name, is_verified FROM users WHERE email = $1",
		req.Email,
	).Scan(&userID, &fullName, &isVerified)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if isVerified {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Account already verified"})
		return
	}

	otp := generateOTP()
	if _, err = h.db.Exec(
		"UPDATE users SET otp_code = $1, otp_expires_at = $2 WHERE id = $3",
		otp, time.Now().Add(otpTTL), userID,
	); err != nil {
		log.Printf("Error storing OTP for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.mailer.SendVerificationCode(req.Email, fullName, otp)

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to your email."})
}

// ForgotPassword issues a reset code to a verified account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var userID int
	var fullName string
	err := h.db.QueryRow(
		"SELECT id, full_name FROM users WHERE email = $1 AND is_verified = TRUE",
		req.Email,
	).Scan(&userID, &fullName)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	otp := generateOTP()
	if _, err = h.db.Exec(
		"UPDATE users SET otp_code = $1, otp_expires_at = $2 WHERE id = $3",
		otp, time.Now().Add(otpTTL), userID,
	); err != nil {
		log.Printf("Error storing reset code for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.mailer.SendPasswordReset(req.Email, fullName, otp)

	c.JSON(http.StatusOK, gin.H{"message": "Password reset code sent to your email."})
}

// ResetPassword checks the reset code and replaces the stored hash.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var userID int
	var otpCode sql.NullString
	var otpExpiresAt sql.NullTime
	err := h.db.QueryRow(
		"SELECT id, otp_code, otp_expires_at FROM users WHERE email = $1",
		req.Email,
	).Scan(&userID, &otpCode, &otpExpiresAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired OTP"})
		return
	} else if err != nil {
		log.Printf("Error fetching user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if !otpCode.Valid || otpCode.String != req.OTP || !otpExpiresAt.Valid || !otpExpiresAt.Time.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired OTP"})
		return
	}

	hashedPassword, err := middleware.HashPassword(req.NewPassword)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if _, err = h.db.Exec(
		"UPDATE users SET password_hash = $1, otp_code = NULL, otp_expires_at = NULL WHERE id = $2",
		hashedPassword, userID,
	); err != nil {
		log.Printf("Error resetting password for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// Login verifies credentials and issues a 12h bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var userID int
	var username, hashedPassword string
	var isVerified bool
	var classID sql.NullInt64
	err := h.db.QueryRow(
		"SELECT id, username, password_hash, is_verified, class_id FROM users WHERE username = $1",
		req.Username,
	).Scan(&userID, &username, &hashedPassword, &isVerified, &classID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Account not found"})
		return
	} else if err != nil {
		log.Printf("Error querying user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if !middleware.VerifyPassword(hashedPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if !isVerified {
		c.JSON(http.StatusForbidden, gin.H{"message": "Account not verified"})
		return
	}

	token, err := middleware.GenerateToken(h.jwtSecret, userID, username, nullableID(classID))
	if err != nil {
		log.Printf("Error generating token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{Token: token})
}

// generateOTP returns a random 6-digit numeric code
func generateOTP() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}
