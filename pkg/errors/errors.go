package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	EmailAlreadyRegistered = Definition{Code: "EMAIL_ALREADY_REGISTERED", Message: "Email already registered"}
	InvalidCredentials     = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}
	InvalidRefreshToken    = Definition{Code: "INVALID_REFRESH_TOKEN", Message: "Invalid refresh token"}
	Unauthorized           = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID          = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	UserNotFound           = Definition{Code: "USER_NOT_FOUND", Message: "User not found"}
	TooManyRequests        = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
)

// 用户设置错误。
var (
	InvalidTimezone   = Definition{Code: "INVALID_TIMEZONE", Message: "Unknown timezone"}
	InvalidReminderAt = Definition{Code: "INVALID_REMINDER_AT", Message: "Reminder time must be HH:MM:SS"}
)

// 习惯定义模块错误。
var (
	HabitNotFound      = Definition{Code: "HABIT_NOT_FOUND", Message: "Habit does not exist"}
	HabitNameEmpty     = Definition{Code: "HABIT_NAME_EMPTY", Message: "Habit name must not be empty"}
	HabitAlreadyExists = Definition{Code: "HABIT_ALREADY_EXISTS", Message: "Habit already exists"}
)

// 打卡记录模块错误。
var (
	LogDateInvalid = Definition{Code: "LOG_DATE_INVALID", Message: "Log date invalid"}
	LogDateFuture  = Definition{Code: "LOG_DATE_FUTURE", Message: "Cannot log future dates"}
)

// 年历网格错误。
var (
	GridYearInvalid = Definition{Code: "GRID_YEAR_INVALID", Message: "Grid year invalid"}
)

// 远端存储错误，聚合读路径降级吞掉，写路径原样上抛。
var (
	RemoteFailure = Definition{Code: "REMOTE_FAILURE", Message: "Datastore unavailable"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	EmailAlreadyRegistered.Code: EmailAlreadyRegistered,
	InvalidCredentials.Code:     InvalidCredentials,
	InvalidRefreshToken.Code:    InvalidRefreshToken,
	Unauthorized.Code:           Unauthorized,
	InvalidUserID.Code:          InvalidUserID,
	UserNotFound.Code:           UserNotFound,
	TooManyRequests.Code:        TooManyRequests,
	InvalidTimezone.Code:        InvalidTimezone,
	InvalidReminderAt.Code:      InvalidReminderAt,
	HabitNotFound.Code:          HabitNotFound,
	HabitNameEmpty.Code:         HabitNameEmpty,
	HabitAlreadyExists.Code:     HabitAlreadyExists,
	LogDateInvalid.Code:         LogDateInvalid,
	LogDateFuture.Code:          LogDateFuture,
	GridYearInvalid.Code:        GridYearInvalid,
	RemoteFailure.Code:          RemoteFailure,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
