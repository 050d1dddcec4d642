package services

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrAlreadyVoted    = errors.New("already voted")
	ErrUnauthenticated = errors.New("authentication required")
	ErrPollClosed      = errors.New("poll is closed")

	ErrQuestionTextRequired = errors.New("question text is required")
	ErrQuestionTextTooLong  = errors.New("question text must be at most 200 characters")
	ErrChoiceTextTooLong    = errors.New("choice text must be at most 200 characters")
	ErrNoChoices            = errors.New("at least one choice is required")

	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameInvalid    = errors.New("username may contain only letters, digits and @/./+/-/_ characters")
	ErrUsernameTooLong    = errors.New("username must be at most 150 characters")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
	ErrEmailInvalid       = errors.New("enter a valid email address")
	ErrPasswordMismatch   = errors.New("the two password fields didn't match")
	ErrPasswordTooShort   = errors.New("password must contain at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrAvatarRequired     = errors.New("avatar is required")
	ErrInvalidCredentials = errors.New("please enter a correct username and password")
)

// IsValidationError reports whether err is a user-correctable input error that
// should be shown next to the form that produced it.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrQuestionTextRequired,
		ErrQuestionTextTooLong,
		ErrChoiceTextTooLong,
		ErrNoChoices,
		ErrUsernameRequired,
		ErrUsernameInvalid,
		ErrUsernameTooLong,
		ErrUsernameTaken,
		ErrEmailInvalid,
		ErrPasswordMismatch,
		ErrPasswordTooShort,
		ErrPasswordTooLong,
		ErrAvatarRequired,
		ErrInvalidCredentials,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
