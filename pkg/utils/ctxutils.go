package utils

import (
	"context"

	"inventario-pzbp/pkg/contextkeys"
	apperrors "inventario-pzbp/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (string, error) {
	rol, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok {
		return "", apperrors.ErrUserNotFoundInContext
	}
	return rol, nil
}

func GetUserNameFromCtx(ctx context.Context) (string, error) {
	nombre, ok := ctx.Value(contextkeys.UserNameKey).(string)
	if !ok {
		return "", apperrors.ErrUserNotFoundInContext
	}
	return nombre, nil
}

func GetTokenFromCtx(ctx context.Context) (string, error) {
	token, ok := ctx.Value(contextkeys.TokenKey).(string)
	if !ok {
		return "", apperrors.ErrUserNotFoundInContext
	}
	return token, nil
}
