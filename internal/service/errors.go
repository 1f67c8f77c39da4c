package service

import "github.com/sandeepkv93/identity-core/internal/apperror"

// Flow-level rejections. Callers match them with errors.Is; the command
// layer picks the envelope message from them.
var (
	ErrInvalidEmail      = apperror.New(apperror.KindValidation, "invalid email")
	ErrPasswordRequired  = apperror.New(apperror.KindValidation, "password is required")
	ErrUnknownRole       = apperror.New(apperror.KindValidation, "unknown role")
	ErrMissingField      = apperror.New(apperror.KindValidation, "required field missing")
	ErrAccountExists     = apperror.New(apperror.KindConflict, "account already exists")
	ErrAccountLinked     = apperror.New(apperror.KindConflict, "provider account already linked")
	ErrEmailNotFound     = apperror.New(apperror.KindAuthentication, "email not found")
	ErrEmailUnverified   = apperror.New(apperror.KindAuthentication, "email not verified")
	ErrIncorrectPassword = apperror.New(apperror.KindAuthentication, "incorrect password")
	ErrUserNotFound      = apperror.New(apperror.KindNotFound, "user not found")
	ErrAccountNotFound   = apperror.New(apperror.KindNotFound, "account not found")
)
