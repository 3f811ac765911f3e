package api

import "github.com/chattr-app/authflow/session"

// LoginRequest is the input for [Client.Login]. Type carries the wire value
// of the classified identifier kind (email | username | phone_number).
type LoginRequest struct {
	Identifier string
	Type       string
	Password   string
}

// ResetPasswordRequest is the input for [Client.ResetPassword]. ResetToken
// is the single-use credential returned by a successful OTP verification.
type ResetPasswordRequest struct {
	ResetToken  string
	NewPassword string
	Identifier  string
}

// OTPVerification is the outcome of [Client.VerifyOTP].
type OTPVerification struct {
	Valid      bool
	ResetToken string
}

// LoginResult is the outcome of [Client.Login].
type LoginResult struct {
	AccessToken string
	User        session.User
}

/*
====================================
WIRE SHAPES
====================================
*/

type identifierDTO struct {
	Identifier string `json:"identifier"`
}

type loginRequestDTO struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
	Password   string `json:"password"`
}

type verifyOTPRequestDTO struct {
	Identifier string `json:"identifier"`
	Token      string `json:"token"`
}

type resetPasswordRequestDTO struct {
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
	Identifier  string `json:"identifier"`
}

type boolEnvelope struct {
	Data bool `json:"data"`
}

type userDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url"`
}

type loginEnvelope struct {
	Data struct {
		AccessToken string  `json:"access_token"`
		User        userDTO `json:"user"`
	} `json:"data"`
}

type forgetPasswordEnvelope struct {
	Data struct {
		IsEmailSent bool `json:"isEmailSent"`
	} `json:"data"`
}

type verifyOTPEnvelope struct {
	Data struct {
		IsValid    bool   `json:"isValid"`
		ResetToken string `json:"resetToken"`
	} `json:"data"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

/*
====================================
MAPPING
====================================
*/

func mapLoginRequestToDTO(req LoginRequest) loginRequestDTO {
	return loginRequestDTO{
		Identifier: req.Identifier,
		Type:       req.Type,
		Password:   req.Password,
	}
}

func mapResetPasswordRequestToDTO(req ResetPasswordRequest) resetPasswordRequestDTO {
	return resetPasswordRequestDTO{
		ResetToken:  req.ResetToken,
		NewPassword: req.NewPassword,
		Identifier:  req.Identifier,
	}
}

func mapUserFromDTO(dto userDTO) session.User {
	return session.User{
		ID:          dto.ID,
		Username:    dto.Username,
		DisplayName: dto.DisplayName,
		Email:       dto.Email,
		AvatarURL:   dto.AvatarURL,
	}
}
