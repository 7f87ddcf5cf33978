package apperrors

import (
	"net/http"
)

/*
Предопределенные ошибки домена WhatYaNeed.
Сервисы возвращают их напрямую, хэндлеры только отдают клиенту.
*/

// --- Auth & Session ---

// ErrNotAuthenticated - в сессии нет пользователя
var ErrNotAuthenticated = New(
	CodeUnauthorized,
	"auth",
	"Unauthorized. Please login.",
	http.StatusUnauthorized,
)

// ErrInsufficientPermissions - роль пользователя не входит в разрешенный набор
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Forbidden. Insufficient permissions.",
	http.StatusForbidden,
)

// ErrInvalidCredentials - неверный email или пароль (одинаково для обоих случаев)
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrCurrentPasswordMismatch - текущий пароль не совпал при смене пароля
var ErrCurrentPasswordMismatch = New(
	CodeInvalidCredentials,
	"auth",
	"Current password is incorrect",
	http.StatusUnauthorized,
)

// ErrSessionStore - хранилище сессий недоступно
var ErrSessionStore = New(
	CodeInternalError,
	"session",
	"Session store failure",
	http.StatusInternalServerError,
)

// --- Users ---

// ErrEmailAlreadyExists - email уже используется
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

// ErrInvalidUserRole - роль не из набора, разрешенного при регистрации
var ErrInvalidUserRole = New(
	CodeValidationFailed,
	"auth",
	"Invalid role",
	http.StatusBadRequest,
)

// ErrWeakPassword - пароль короче 6 символов
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"New password must be at least 6 characters",
	http.StatusBadRequest,
)

// ErrUserNotFound - пользователь из сессии больше не существует
var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// ErrAdminRoleSwitch - администратор не может переключать роль
var ErrAdminRoleSwitch = New(
	CodeForbidden,
	"user",
	"Admins cannot switch roles",
	http.StatusForbidden,
)

// ErrRoleSwitchCooldown - роль переключали меньше 24 часов назад.
// Детали ({"hoursRemaining": n}) добавляет сервис через WithDetails.
var ErrRoleSwitchCooldown = New(
	CodeCooldownActive,
	"user",
	"You can only switch roles once every 24 hours",
	http.StatusBadRequest,
)

// --- Uploads ---

// ErrInvalidImageFormat - payload не распознан как изображение
var ErrInvalidImageFormat = New(
	CodeValidationFailed,
	"upload",
	"Invalid image format",
	http.StatusBadRequest,
)

// ErrImageTooLarge - декодированный размер больше 2 MiB
var ErrImageTooLarge = New(
	CodeValidationFailed,
	"upload",
	"Image too large. Maximum size is 2MB",
	http.StatusBadRequest,
)

// --- Requests & Offers ---

// ErrRequestNotOpen - запроса нет или он уже закрыт
var ErrRequestNotOpen = New(
	CodeNotFound,
	"request",
	"Request not found or closed",
	http.StatusNotFound,
)

// ErrAlreadyOffered - волонтер уже откликался на этот запрос
var ErrAlreadyOffered = New(
	CodeConflict,
	"offer",
	"Already offered help",
	http.StatusConflict,
)
